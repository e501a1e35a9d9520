// Package events carries "project created" notifications from the write path
// to the automatic matcher.
package events

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/collabhub/project-match/internal/matching/domain"
)

var ErrClosed = errors.New("event bus closed")

// ProjectCreated is published once a project row is committed.
type ProjectCreated struct {
	EventID    string         `json:"event_id"`
	Project    domain.Project `json:"project"`
	OccurredAt time.Time      `json:"occurred_at"`
}

func NewProjectCreated(p domain.Project) ProjectCreated {
	return ProjectCreated{
		EventID:    uuid.New().String(),
		Project:    p,
		OccurredAt: time.Now().UTC(),
	}
}

// Handler consumes one event. Returned errors are logged by the transport.
type Handler func(ctx context.Context, ev ProjectCreated) error

type Publisher interface {
	PublishProjectCreated(ctx context.Context, ev ProjectCreated) error
}

type Subscriber interface {
	// SubscribeProjectCreated registers h and returns a function that
	// removes it.
	SubscribeProjectCreated(h Handler) (func(), error)
}

// Bus is both ends of a transport.
type Bus interface {
	Publisher
	Subscriber
	Close()
}
