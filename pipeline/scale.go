package pipeline

// Scale implements §4.6: rational multiplication with remainder carry.
// mul == 0 or div == 0 makes the stage a no-op — a zero multiplier
// degrades gracefully rather than dividing by zero. The intermediate
// product is computed in at least 32 bits (the open question about the
// original's int16_t intermediate overflowing): value and mul are both
// widened before multiplying.
func Scale(tun Tunables, remainder *int32, value int16) int16 {
	mul, div := int64(tun.ScaleMul), int64(tun.ScaleDiv)
	if mul == 0 || div == 0 {
		return value
	}

	v := int64(value)*mul + int64(*remainder)
	out := v / div
	*remainder = int32(v - out*div)

	return int16(out)
}
