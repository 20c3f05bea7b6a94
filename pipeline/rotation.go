package pipeline

import "math"

// cosSinQ1000 precomputes cos(deg)*1000 and sin(deg)*1000 as signed
// 32-bit integers. deg == 0 takes the exact shortcut (1000, 0) without
// calling trig, per the fixed-point trig design note; any other angle is
// computed once, not per event.
func cosSinQ1000(deg int32) (cosQ, sinQ int32) {
	if deg == 0 {
		return 1000, 0
	}

	rad := float64(deg) * math.Pi / 180

	return int32(math.Round(math.Cos(rad) * 1000)), int32(math.Round(math.Sin(rad) * 1000))
}

// Rotate implements §4.4: pairing X with the most recently seen Y (and
// vice versa) and applying the 2D rotation. It holds state.LastX/LastY/
// HasX/HasY across calls. When state.Current.RotationDeg == 0 the stage
// is bypassed entirely by the caller (the sequencer), not by Rotate
// itself.
//
// On an X event: records LastX, sets HasX; if HasY, emits the rotated X
// and clears HasY; otherwise emits 0 (the pair completes on the next Y
// event). Symmetric on Y.
func Rotate(state *State, isX bool, value int16) int16 {
	if isX {
		state.LastX = int32(value)
		state.HasX = true

		if !state.HasY {
			return 0
		}

		out := (state.LastX*state.CosQ - state.LastY*state.SinQ) / 1000
		state.HasY = false

		return int16(out)
	}

	state.LastY = int32(value)
	state.HasY = true

	if !state.HasX {
		return 0
	}

	out := (state.LastX*state.SinQ + state.LastY*state.CosQ) / 1000
	state.HasX = false

	return int16(out)
}
