// Package touch converts raw 4-wire resistive panel samples into
// debounced Start/Move/End gestures.
package touch

import (
	"math"

	"kite/hal"
)

// RXPlate is the X-plate resistance of the reference panel, ohms.
const RXPlate = 330

// Metrics is the conditioned view of one frame: normalized position and
// an estimated contact resistance. Small R means firm, clean contact;
// it is a quality gate, never displayed.
type Metrics struct {
	X float32
	Y float32
	R float32
}

var infResistance = float32(math.Inf(1))

// CalculateMetrics conditions one raw frame. For each axis the driven
// plate provides the range and the averaged midpoint of the opposite
// pair provides the sensed position. Degenerate frames (a non-positive
// range, or a non-positive z1 term) cannot express a position or a
// pressure; they condition to R = +Inf so they never qualify as a
// touch, and no NaN escapes.
func CalculateMetrics(f hal.TouchFrame) Metrics {
	xMax := int32(f.X.XP)
	xMin := int32(f.X.XN)
	xRange := xMax - xMin
	xPosition := (int32(f.X.YP) + int32(f.X.YN)) / 2

	yMax := int32(f.Y.YN)
	yMin := int32(f.Y.YP)
	yRange := yMax - yMin
	yPosition := (int32(f.Y.XP) + int32(f.Y.XN)) / 2

	zMax := int32(f.Pressure.YP)
	zMin := int32(f.Pressure.XN)
	zRange := zMax - zMin

	if xRange <= 0 || yRange <= 0 || zRange <= 0 {
		return Metrics{R: infResistance}
	}

	xNorm := float32(xPosition-xMin) / float32(xRange)
	yNorm := float32(yPosition-yMin) / float32(yRange)
	z1Norm := float32(int32(f.Pressure.XP)-zMin) / float32(zRange)
	z2Norm := float32(int32(f.Pressure.YN)-zMin) / float32(zRange)

	if z1Norm <= 0 {
		return Metrics{X: xNorm, Y: yNorm, R: infResistance}
	}

	return Metrics{
		X: xNorm,
		Y: yNorm,
		R: RXPlate * xNorm * (z2Norm/z1Norm - 1),
	}
}
