package scoring

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Similarity is the edit-distance similarity (maxLen - distance) / maxLen,
// measured in runes. Two empty strings are identical.
func Similarity(s1, s2 string) float64 {
	maxLen := max(utf8.RuneCountInString(s1), utf8.RuneCountInString(s2))
	if maxLen == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(s1, s2)
	return float64(maxLen-dist) / float64(maxLen)
}

// similarAbove reports Similarity(s1, s2) > limit without running the
// quadratic distance when the length gap alone already rules it out.
func similarAbove(s1, s2 string, limit float64) bool {
	l1, l2 := utf8.RuneCountInString(s1), utf8.RuneCountInString(s2)
	maxLen := max(l1, l2)
	if maxLen == 0 {
		return 1 > limit
	}
	gap := l1 - l2
	if gap < 0 {
		gap = -gap
	}
	// distance >= gap, so similarity <= (maxLen-gap)/maxLen
	if float64(maxLen-gap)/float64(maxLen) <= limit {
		return false
	}
	return Similarity(s1, s2) > limit
}
