package search

// editDistance is the Levenshtein distance between a and b counted in runes.
// It returns early with limit+1 once every cell of a row exceeds limit.
func editDistance(a, b []rune, limit int) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	if len(a)-len(b) > limit {
		return limit + 1
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		best := curr[0]
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
			best = min(best, curr[j])
		}
		if best > limit {
			return limit + 1
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
