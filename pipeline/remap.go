package pipeline

import "github.com/cormoran/zmk-module-runtime-input-processor/evcode"

// RemapCode implements §4.1 step 5: xy_to_scroll takes precedence over
// xy_swap (exactly one of the two takes effect per event); with both
// off, the code passes through unchanged.
func RemapCode(cfg Config, tun Tunables, code uint16, isX bool) uint16 {
	if tun.XYToScroll {
		if isX {
			return evcode.RelHWheel
		}

		return evcode.RelWheel
	}

	if tun.XYSwap {
		if isX {
			return firstOr(cfg.YCodes, code)
		}

		return firstOr(cfg.XCodes, code)
	}

	return code
}

func firstOr(codes []uint16, fallback uint16) uint16 {
	if len(codes) == 0 {
		return fallback
	}

	return codes[0]
}
