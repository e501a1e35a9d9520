package domain

import (
	"errors"
	"time"

	matching "github.com/collabhub/project-match/internal/matching/domain"
)

const (
	TypeProjectMatch = "PROJECT_MATCH"
	MatchTitle       = "Project Match Found"
)

var (
	ErrNotFound          = errors.New("notification not found")
	ErrRecipientNotFound = errors.New("notification recipient not found")
)

// Direction tells which owner of a matched pair an intent is addressed to.
type Direction string

const (
	// ToExistingOwner informs the owner of the older project about the new one.
	ToExistingOwner Direction = "to_existing_owner"
	// ToNewOwner informs the author of the new project about the older one.
	ToNewOwner Direction = "to_new_owner"
)

// Intent is a finished notification handed to a Sink. It is never mutated
// after it is built.
type Intent struct {
	Recipient matching.Creator
	Title     string
	Message   string
	Type      string
	Direction Direction

	// Project is the recipient's own project, Match the one it matched.
	Project matching.Project
	Match   matching.Project
	// Similarity is the match score as a fraction in [0,1].
	Similarity float64
}

// Notification is a persisted notification row.
type Notification struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Title            string    `json:"title"`
	Message          string    `json:"message"`
	Type             string    `json:"type"`
	IsRead           bool      `json:"is_read"`
	NewProjectID     *string   `json:"new_project_id,omitempty"`
	MatchedProjectID *string   `json:"matched_project_id,omitempty"`
	SimilarityScore  *float64  `json:"similarity_score,omitempty"`
	MatchDetails     string    `json:"match_details,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
