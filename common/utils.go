package common

// ChunkRanges splits [0, n) into at most parts contiguous half-open ranges of near-equal length,
// in order. Empty ranges are never returned.
//
// Parameters:
//   - n: the number of items
//   - parts: the maximum number of ranges, clamped to at least 1
//
// Returns:
//   - [][2]int: the [lo, hi) ranges covering [0, n)
func ChunkRanges(n, parts int) [][2]int {
	if n <= 0 {
		return nil
	}
	parts = max(parts, 1)
	chunk := (n + parts - 1) / parts
	ranges := make([][2]int, 0, (n+chunk-1)/chunk)
	for lo := 0; lo < n; lo += chunk {
		ranges = append(ranges, [2]int{lo, min(lo+chunk, n)})
	}
	return ranges
}
