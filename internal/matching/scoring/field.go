package scoring

import (
	"strings"

	"github.com/collabhub/project-match/internal/matching/tokenizer"
)

// Jaccard is |A∩B| / |A∪B| over the token sets of a and b, or 0 when both
// sets are empty.
func Jaccard(a, b string) float64 {
	return JaccardSets(tokenizer.Tokenize(a), tokenizer.Tokenize(b))
}

// JaccardSets is Jaccard over already tokenized sets.
func JaccardSets(a, b tokenizer.TokenSet) float64 {
	union := a.Union(b)
	if union == 0 {
		return 0
	}
	return float64(a.Intersect(b)) / float64(union)
}

// ExactMatch is 1 when both values are present and equal ignoring case.
func ExactMatch(a, b string) float64 {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" || b == "" {
		return 0
	}
	if strings.EqualFold(a, b) {
		return 1
	}
	return 0
}
