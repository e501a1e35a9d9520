package domain

import (
	"errors"
	"strings"
	"time"

	matching "github.com/collabhub/project-match/internal/matching/domain"
)

var (
	ErrNotFound     = errors.New("project not found")
	ErrInvalidInput = errors.New("invalid project")
)

// Project is a collaboration project owned by a user.
// It is storage-agnostic and used across repository and HTTP layers.
type Project struct {
	PublicID         string    `json:"public_id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	TechnologiesUsed string    `json:"technologies_used"`
	Domain           string    `json:"domain"`
	Country          string    `json:"country"`
	Language         string    `json:"language"`
	UserID           string    `json:"user_id"`
	CreatorUsername  string    `json:"creator_username,omitempty"`
	CreatorUID       string    `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Match converts the project to the record the matching engine scores.
func (p Project) Match() matching.Project {
	return matching.Project{
		ID:               p.PublicID,
		Name:             p.Name,
		Description:      p.Description,
		TechnologiesUsed: p.TechnologiesUsed,
		Domain:           p.Domain,
		Country:          p.Country,
		Language:         p.Language,
		Creator: matching.Creator{
			UserID:    p.UserID,
			Username:  p.CreatorUsername,
			CreatorID: p.CreatorUID,
		},
		CreatedAt: p.CreatedAt,
	}
}

// CreateInput holds the user-supplied fields of a new project.
type CreateInput struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	TechnologiesUsed string `json:"technologies_used"`
	Domain           string `json:"domain"`
	Country          string `json:"country"`
	Language         string `json:"language"`
}

// Normalize trims every field and checks the name.
func (in CreateInput) Normalize() (CreateInput, error) {
	out := CreateInput{
		Name:             strings.TrimSpace(in.Name),
		Description:      strings.TrimSpace(in.Description),
		TechnologiesUsed: strings.TrimSpace(in.TechnologiesUsed),
		Domain:           strings.TrimSpace(in.Domain),
		Country:          strings.TrimSpace(in.Country),
		Language:         strings.TrimSpace(in.Language),
	}
	if out.Name == "" {
		return out, errors.Join(ErrInvalidInput, errors.New("name required"))
	}
	return out, nil
}
