package domain

import (
	"strings"
	"time"
)

// Creator identifies who created a project. Any of the three channels may be
// empty; see SameAuthor for how they are compared.
type Creator struct {
	UserID    string `json:"user_id,omitempty"`
	Username  string `json:"username,omitempty"`
	CreatorID string `json:"creator_id,omitempty"`
}

// Resolvable reports whether at least one identity channel is populated.
func (c Creator) Resolvable() bool {
	return strings.TrimSpace(c.UserID) != "" ||
		strings.TrimSpace(c.Username) != "" ||
		strings.TrimSpace(c.CreatorID) != ""
}

// DisplayName is the name shown to the other party of a match.
func (c Creator) DisplayName() string {
	if name := strings.TrimSpace(c.Username); name != "" {
		return name
	}
	return "another user"
}

// Project is the read-only record the matching engine scores.
// It is storage-agnostic and shared by the repository and HTTP layers.
type Project struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	TechnologiesUsed string    `json:"technologiesUsed"`
	Domain           string    `json:"domain"`
	Country          string    `json:"country"`
	Language         string    `json:"language"`
	Creator          Creator   `json:"creator"`
	CreatedAt        time.Time `json:"createdAt"`
}

// MatchResult pairs a matched project with the score it was kept for.
type MatchResult struct {
	Project Project
	Score   Score
}
