package normalizer

import "strings"

func levenshteinDistance(s1, s2 string) int {
	s1 = strings.ToLower(s1)
	s2 = strings.ToLower(s2)

	l1 := len(s1)
	l2 := len(s2)

	if l1 == 0 {
		return l2
	}
	if l2 == 0 {
		return l1
	}

	// Guard against potential allocation overflow (l2+1 sizing below)
	maxInt := int(^uint(0) >> 1)
	if l2 >= maxInt-1 {
		return maxInt
	}

	// O(min(l1,l2)) space dynamic programming
	if l1 < l2 {
		s1, s2 = s2, s1
		l1, l2 = l2, l1
	}

	previous := make([]int, l2+1)
	current := make([]int, l2+1)
	for j := 0; j <= l2; j++ {
		previous[j] = j
	}

	for i := 1; i <= l1; i++ {
		current[0] = i
		for j := 1; j <= l2; j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			current[j] = minInt(previous[j]+1, minInt(current[j-1]+1, previous[j-1]+cost))
		}
		previous, current = current, previous
	}

	return previous[l2]
}

// Similarity returns a normalized edit-distance similarity in [0,1].
// Used by the spam repetition checks to detect near-duplicate comments.
func Similarity(s1, s2 string) float64 {
	distance := levenshteinDistance(s1, s2)
	m := float64(maxInt2(len(s1), len(s2)))
	if m == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/m
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt2(a, b int) int {
	if a > b {
		return a
	}
	return b
}
