package service

import (
	"context"
	"time"

	"github.com/collabhub/project-match/internal/events"
	"github.com/collabhub/project-match/internal/logging"
	"github.com/collabhub/project-match/internal/projects/domain"
)

// Repository is the project persistence the service needs.
type Repository interface {
	Create(ctx context.Context, userDBID string, in domain.CreateInput) (*domain.Project, error)
	Get(ctx context.Context, publicID string) (*domain.Project, error)
	List(ctx context.Context, limit int) ([]domain.Project, error)
	ListByUser(ctx context.Context, userDBID string) ([]domain.Project, error)
	ListByCreator(ctx context.Context, username string) ([]domain.Project, error)
	SoftDelete(ctx context.Context, userDBID, publicID string) (bool, error)
}

// ProjectService handles project-related business logic
type ProjectService struct {
	repo      Repository
	publisher events.Publisher
	timeout   time.Duration
}

// NewProjectService creates a new project service. publisher may be nil, in
// which case no automatic matching is triggered.
func NewProjectService(repo Repository, publisher events.Publisher) *ProjectService {
	return &ProjectService{
		repo:      repo,
		publisher: publisher,
		timeout:   2 * time.Second,
	}
}

// Create persists a project and announces it for matching. The result only
// depends on the write: publish failures are logged, never returned.
func (s *ProjectService) Create(ctx context.Context, userDBID string, in domain.CreateInput) (*domain.Project, error) {
	in, err := in.Normalize()
	if err != nil {
		return nil, err
	}

	p, err := s.repo.Create(ctx, userDBID, in)
	if err != nil {
		return nil, err
	}

	logger := logging.NewLogger(ctx)
	logger.LogInfof("CreateProject", "project %s created by user %s", p.PublicID, userDBID)

	if s.publisher != nil {
		pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()
		if err := s.publisher.PublishProjectCreated(pctx, events.NewProjectCreated(p.Match())); err != nil {
			logger.LogWarnf("CreateProject", "matching not triggered for project %s: %v", p.PublicID, err)
		}
	}
	return p, nil
}

func (s *ProjectService) Get(ctx context.Context, publicID string) (*domain.Project, error) {
	return s.repo.Get(ctx, publicID)
}

// List returns the newest projects across all users.
func (s *ProjectService) List(ctx context.Context, limit int) ([]domain.Project, error) {
	return s.repo.List(ctx, limit)
}

// ListMine returns the caller's projects.
func (s *ProjectService) ListMine(ctx context.Context, userDBID string) ([]domain.Project, error) {
	return s.repo.ListByUser(ctx, userDBID)
}

func (s *ProjectService) ListByCreator(ctx context.Context, username string) ([]domain.Project, error) {
	return s.repo.ListByCreator(ctx, username)
}

// Delete soft-deletes a project
func (s *ProjectService) Delete(ctx context.Context, userDBID, publicID string) (bool, error) {
	return s.repo.SoftDelete(ctx, userDBID, publicID)
}
