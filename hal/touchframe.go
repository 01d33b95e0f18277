package hal

// Synthetic frame rails. These mirror a typical 10..12-bit ADC swing on
// real panels and keep all derived readings inside uint16.
const (
	synthRailLow  = 200
	synthRailHigh = 3800
	synthZLow     = 0
	synthZHigh    = 4095
	synthZ1       = 1000

	// SynthRPlate matches the driven-plate constant used by the metric
	// conditioning, so a requested contact resistance survives the
	// round trip through normalization.
	SynthRPlate = 330
)

// SyntheticFrame builds a raw 4-wire frame that conditions back to the
// given normalized position and contact resistance. It is the inverse
// of the metric normalization and is used by the host simulator and by
// board drivers that only report already-converted positions.
func SyntheticFrame(xNorm, yNorm, r float32, contact bool) TouchFrame {
	var f TouchFrame
	f.Touch = contact
	if !contact {
		return f
	}

	xNorm = clamp01(xNorm)
	yNorm = clamp01(yNorm)

	span := float32(synthRailHigh - synthRailLow)

	// X: driven plate on XP/XN, position sensed on the Y lines.
	f.X.XP = synthRailHigh
	f.X.XN = synthRailLow
	xPos := uint16(float32(synthRailLow) + xNorm*span)
	f.X.YP = xPos
	f.X.YN = xPos

	// Y: driven plate on YP/YN (YP is the low rail on this panel),
	// position sensed on the X lines.
	f.Y.YN = synthRailHigh
	f.Y.YP = synthRailLow
	yPos := uint16(float32(synthRailLow) + yNorm*span)
	f.Y.XP = yPos
	f.Y.XN = yPos

	// Pressure: pick z1/z2 so the classic 4-wire formula recovers r.
	f.Pressure.YP = synthZHigh
	f.Pressure.XN = synthZLow
	f.Pressure.XP = synthZ1
	if xNorm <= 0 {
		// r is proportional to xNorm; at the left edge any z2 gives
		// r == 0, which always qualifies as firm contact.
		f.Pressure.YN = synthZ1
		return f
	}
	z2 := float32(synthZ1) * (1 + r/(SynthRPlate*xNorm))
	if z2 > synthZHigh {
		z2 = synthZHigh
	}
	f.Pressure.YN = uint16(z2)
	return f
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
