// Package tokenizer normalizes free text into comparable tokens.
package tokenizer

import (
	"regexp"
	"strings"
	"unicode"
)

// MinTokenLen is the shortest token Tokenize keeps; shorter words are noise.
const MinTokenLen = 3

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// TokenSet is a set of normalized tokens. Repeated words collapse.
type TokenSet map[string]struct{}

// Has reports whether tok is in the set.
func (s TokenSet) Has(tok string) bool {
	_, ok := s[tok]
	return ok
}

// Intersect returns |s ∩ o|.
func (s TokenSet) Intersect(o TokenSet) int {
	small, large := s, o
	if len(large) < len(small) {
		small, large = large, small
	}
	n := 0
	for tok := range small {
		if large.Has(tok) {
			n++
		}
	}
	return n
}

// Union returns |s ∪ o|.
func (s TokenSet) Union(o TokenSet) int {
	return len(s) + len(o) - s.Intersect(o)
}

// Tokenize lower-cases text, drops every character outside [a-z0-9] and
// whitespace, splits on whitespace and keeps tokens of MinTokenLen or more.
func Tokenize(text string) TokenSet {
	set := make(TokenSet)
	for _, w := range Words(text, MinTokenLen) {
		set[w] = struct{}{}
	}
	return set
}

// Words returns the normalized words of text in order, keeping duplicates.
// Only words of at least minLen characters are returned.
func Words(text string, minLen int) []string {
	fields := strings.Fields(Normalize(text))
	out := fields[:0]
	for _, f := range fields {
		if len(f) >= minLen {
			out = append(out, f)
		}
	}
	return out
}

// Normalize lower-cases text and strips everything except ASCII letters,
// digits and whitespace.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SplitSentences splits text on sentence punctuation and drops blank pieces.
func SplitSentences(text string) []string {
	parts := sentenceSplit.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
