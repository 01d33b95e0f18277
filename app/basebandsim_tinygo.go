//go:build tinygo

package app

import (
	"kite/hal"
	"kite/ipc"
)

// On hardware the companion core publishes into shared memory itself;
// there is nothing to simulate.
func startBasebandSim(hal.HAL, *ipc.SharedMemory) {}
