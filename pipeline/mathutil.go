package pipeline

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}

	return v
}

func sign32(v int32) int32 {
	if v < 0 {
		return -1
	}

	return 1
}
