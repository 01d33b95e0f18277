//go:build !tinygo

package app

import (
	"time"

	"kite/hal"
	"kite/ipc"
)

// startBasebandSim stands in for the companion core on host builds: it
// publishes telemetry into the app queue and raises the core link, the
// same path a real baseband takes. It writes only the producer side of
// the queue, exactly as an interrupt-context producer would.
func startBasebandSim(h hal.HAL, shared *ipc.SharedMemory) {
	raiser, ok := h.CoreLink().(interface{ Raise() })
	if !ok {
		return
	}

	go func() {
		tick := time.NewTicker(500 * time.Millisecond)
		defer tick.Stop()

		var n uint32
		for range tick.C {
			n++
			peak := -int32(2000+n%900) / 10 // wandering peak level
			stats := ipc.New(ipc.IDChannelStats, ipc.ChannelStatsPayload(peak, n%7))
			shared.App.Push(&stats)

			avg := uint8(40 + n%50)
			rssi := ipc.New(ipc.IDRSSIStats, ipc.RSSIStatsPayload(avg-10, avg, avg+15))
			shared.App.Push(&rssi)

			raiser.Raise()
		}
	}()
}
