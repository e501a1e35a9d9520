package http

import (
	"context"

	"github.com/collabhub/project-match/internal/projects/domain"
)

// Service is the project API the handlers call.
type Service interface {
	Create(ctx context.Context, userDBID string, in domain.CreateInput) (*domain.Project, error)
	Get(ctx context.Context, publicID string) (*domain.Project, error)
	List(ctx context.Context, limit int) ([]domain.Project, error)
	ListMine(ctx context.Context, userDBID string) ([]domain.Project, error)
	ListByCreator(ctx context.Context, username string) ([]domain.Project, error)
	Delete(ctx context.Context, userDBID, publicID string) (bool, error)
}

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	svc Service
}

func New(svc Service) *Handler {
	return &Handler{svc: svc}
}
