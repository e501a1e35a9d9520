package service

import (
	"context"
	"fmt"
	"time"

	matching "github.com/collabhub/project-match/internal/matching/domain"
	"github.com/collabhub/project-match/internal/logging"
	"github.com/collabhub/project-match/internal/notifications/domain"
)

// Store is the persistence the service needs.
type Store interface {
	ResolveRecipient(ctx context.Context, c matching.Creator) (string, error)
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID string) ([]domain.Notification, error)
	ListUnread(ctx context.Context, userID string) ([]domain.Notification, error)
	ListByType(ctx context.Context, userID, typ string) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, userID, id string) error
	PurgeReadBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// NotificationService persists notifications and delivers match intents.
type NotificationService struct {
	store Store
	now   func() time.Time
}

func NewNotificationService(store Store) *NotificationService {
	return &NotificationService{store: store, now: time.Now}
}

// Deliver resolves the intent's recipient and stores it as a notification.
func (s *NotificationService) Deliver(ctx context.Context, in domain.Intent) error {
	userID, err := s.store.ResolveRecipient(ctx, in.Recipient)
	if err != nil {
		return err
	}

	matchID, ownID := in.Match.ID, in.Project.ID
	similarity := in.Similarity
	n := &domain.Notification{
		UserID:          userID,
		Title:           in.Title,
		Message:         in.Message,
		Type:            in.Type,
		SimilarityScore: &similarity,
		MatchDetails:    MatchDetails(in),
	}
	if matchID != "" {
		n.NewProjectID = &matchID
	}
	if ownID != "" {
		n.MatchedProjectID = &ownID
	}

	if err := s.store.Create(ctx, n); err != nil {
		return err
	}

	logging.NewLogger(ctx).LogInfof("Deliver", "project match notification %s created for user %s (%q <-> %q, %.0f%%)",
		n.ID, userID, in.Project.Name, in.Match.Name, similarity*100)
	return nil
}

// MatchDetails is the long-form description stored with a match notification.
func MatchDetails(in domain.Intent) string {
	creator := in.Match.Creator.Username
	if creator == "" {
		creator = "Unknown"
	}
	return fmt.Sprintf("Match found between projects:\n"+
		"Your Project: %s (Country: %s, Language: %s)\n"+
		"Matched Project: %s (Country: %s, Language: %s)\n"+
		"Similarity Score: %.1f%%\n"+
		"Creator: %s",
		in.Project.Name, in.Project.Country, in.Project.Language,
		in.Match.Name, in.Match.Country, in.Match.Language,
		in.Similarity*100,
		creator,
	)
}

func (s *NotificationService) List(ctx context.Context, userID string) ([]domain.Notification, error) {
	return s.store.ListByUser(ctx, userID)
}

// ListByType returns the user's notifications of one type, such as
// PROJECT_MATCH.
func (s *NotificationService) ListByType(ctx context.Context, userID, typ string) ([]domain.Notification, error) {
	return s.store.ListByType(ctx, userID, typ)
}

func (s *NotificationService) Unread(ctx context.Context, userID string) ([]domain.Notification, error) {
	return s.store.ListUnread(ctx, userID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.store.CountUnread(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	return s.store.MarkRead(ctx, userID, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.store.MarkAllRead(ctx, userID)
}

func (s *NotificationService) Delete(ctx context.Context, userID, id string) error {
	return s.store.Delete(ctx, userID, id)
}

// Purge removes read notifications older than retention.
func (s *NotificationService) Purge(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := s.now().Add(-retention)
	n, err := s.store.PurgeReadBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	logging.NewLogger(ctx).LogInfof("Purge", "removed %d read notifications older than %s", n, cutoff.Format(time.RFC3339))
	return n, nil
}
