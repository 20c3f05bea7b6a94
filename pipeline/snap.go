package pipeline

import "github.com/cormoran/zmk-module-runtime-input-processor/inputproc"

// decayPeriodMs is the fixed decay tick the axis-snap stage ticks on
// (§4.5's "every 50ms").
const decayPeriodMs = 50

// Snap implements §4.5. now is a monotonic millisecond clock. Events on
// the primary axis always pass through unmodified and never touch the
// accumulator; only cross-axis events decay and update it.
func Snap(state *State, tun Tunables, now int64, isX bool, value int16) int16 {
	mode := tun.AxisSnap.Mode
	if mode == inputproc.AxisSnapNone {
		return value
	}

	primaryIsX := mode == inputproc.AxisSnapX
	if isX == primaryIsX {
		return value
	}

	threshold := int32(tun.AxisSnap.Threshold)
	timeoutMs := int32(tun.AxisSnap.TimeoutMs)

	if timeoutMs > 0 && state.LastDecayTs > 0 {
		elapsed := now - state.LastDecayTs
		periods := elapsed / decayPeriodMs

		if periods > 0 {
			periodsInTimeout := timeoutMs / decayPeriodMs
			if periodsInTimeout < 1 {
				periodsInTimeout = 1
			}

			per50 := threshold / periodsInTimeout
			if per50 < 1 {
				per50 = 1
			}

			state.CrossAxisAccum = decayTowardZero(state.CrossAxisAccum, per50*int32(periods))
		}
	}

	if abs32(state.CrossAxisAccum) >= threshold {
		state.CrossAxisAccum = addMagnitude(state.CrossAxisAccum, abs32(int32(value)))
	} else {
		state.CrossAxisAccum += int32(value)
	}

	state.LastDecayTs = now

	cap := 2 * threshold
	if abs32(state.CrossAxisAccum) > cap {
		state.CrossAxisAccum = sign32(state.CrossAxisAccum) * cap
	}

	if abs32(state.CrossAxisAccum) < threshold {
		return 0
	}

	return value
}

func decayTowardZero(accum, dec int32) int32 {
	mag := abs32(accum) - dec
	if mag < 0 {
		mag = 0
	}

	if accum < 0 {
		return -mag
	}

	return mag
}

func addMagnitude(accum, mag int32) int32 {
	if accum < 0 {
		return accum - mag
	}

	return accum + mag
}
