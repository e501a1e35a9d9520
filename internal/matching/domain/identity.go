package domain

import "strings"

// SameAuthor reports whether a and b were created by the same person.
//
// The first channel populated on both sides decides: user id, then
// username, then creator entity id. When no channel is populated on both
// sides the pair counts as different authors, so projects without any
// creator identity can be matched against their own author's projects.
func SameAuthor(a, b Project) bool {
	if x, y := strings.TrimSpace(a.Creator.UserID), strings.TrimSpace(b.Creator.UserID); x != "" && y != "" {
		return x == y
	}
	if x, y := strings.TrimSpace(a.Creator.Username), strings.TrimSpace(b.Creator.Username); x != "" && y != "" {
		return x == y
	}
	if x, y := strings.TrimSpace(a.Creator.CreatorID), strings.TrimSpace(b.Creator.CreatorID); x != "" && y != "" {
		return x == y
	}
	return false
}
