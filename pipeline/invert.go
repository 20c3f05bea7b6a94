package pipeline

// Invert negates value when the axis's invert flag is set (§4.1 step 8).
// Applying it twice is the identity (the involution property), since
// negation is its own inverse.
func Invert(tun Tunables, isX bool, value int16) int16 {
	invert := tun.XInvert
	if !isX {
		invert = tun.YInvert
	}

	if !invert {
		return value
	}

	return -value
}
