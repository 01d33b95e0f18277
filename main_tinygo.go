//go:build tinygo

package main

import (
	"kite/app"
	"kite/hal"
)

func main() {
	app.Run(hal.New())
}
