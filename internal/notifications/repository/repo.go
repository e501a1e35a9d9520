package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	matching "github.com/collabhub/project-match/internal/matching/domain"
	"github.com/collabhub/project-match/internal/notifications/domain"
)

// NotificationRepository handles PostgreSQL operations for notifications
type NotificationRepository struct {
	db *sql.DB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

const notificationColumns = `id, user_id, title, message, type, is_read,
	new_project_id, matched_project_id, similarity_score, match_details, created_at`

// ResolveRecipient maps a project creator to a user id. Channels are tried
// in order (user id, username, creator id) and the first hit wins.
func (r *NotificationRepository) ResolveRecipient(ctx context.Context, c matching.Creator) (string, error) {
	lookups := []struct {
		value string
		query string
	}{
		{c.UserID, `SELECT id::text FROM users WHERE id::text = $1`},
		{c.Username, `SELECT id::text FROM users WHERE username = $1`},
		{c.CreatorID, `SELECT id::text FROM users WHERE firebase_uid = $1`},
	}

	for _, l := range lookups {
		v := strings.TrimSpace(l.value)
		if v == "" {
			continue
		}
		var id string
		err := r.db.QueryRowContext(ctx, l.query, v).Scan(&id)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("failed to resolve recipient: %w", err)
		}
	}
	return "", domain.ErrRecipientNotFound
}

// Create inserts a notification, filling in ID and CreatedAt.
func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}

	query := `
		INSERT INTO notifications (
			id, user_id, title, message, type, is_read,
			new_project_id, matched_project_id, similarity_score, match_details
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`

	var similarity sql.NullFloat64
	if n.SimilarityScore != nil {
		similarity = sql.NullFloat64{Float64: *n.SimilarityScore, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query,
		n.ID,
		n.UserID,
		n.Title,
		n.Message,
		n.Type,
		n.IsRead,
		nullString(n.NewProjectID),
		nullString(n.MatchedProjectID),
		similarity,
		sql.NullString{String: n.MatchDetails, Valid: n.MatchDetails != ""},
	).Scan(&n.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return fmt.Errorf("%w: %s", domain.ErrRecipientNotFound, pqErr.Detail)
		}
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// ListByUser returns a user's notifications, newest first.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID string) ([]domain.Notification, error) {
	query := `SELECT ` + notificationColumns + `
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

// ListUnread returns a user's unread notifications, newest first.
func (r *NotificationRepository) ListUnread(ctx context.Context, userID string) ([]domain.Notification, error) {
	query := `SELECT ` + notificationColumns + `
		FROM notifications
		WHERE user_id = $1 AND is_read = false
		ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

// ListByType returns a user's notifications of one type, newest first.
func (r *NotificationRepository) ListByType(ctx context.Context, userID, typ string) ([]domain.Notification, error) {
	query := `SELECT ` + notificationColumns + `
		FROM notifications
		WHERE user_id = $1 AND type = $2
		ORDER BY created_at DESC`
	return r.list(ctx, query, userID, typ)
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = false`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return n, nil
}

// MarkRead marks one of the user's notifications as read.
func (r *NotificationRepository) MarkRead(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return requireOne(res)
}

// MarkAllRead marks every unread notification of the user as read and
// returns how many changed.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = true WHERE user_id = $1 AND is_read = false`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return res.RowsAffected()
}

func (r *NotificationRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM notifications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return requireOne(res)
}

// PurgeReadBefore deletes read notifications created before cutoff.
func (r *NotificationRepository) PurgeReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM notifications WHERE is_read = true AND created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge notifications: %w", err)
	}
	return res.RowsAffected()
}

func (r *NotificationRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.Notification, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Notification, 0, 16)
	for rows.Next() {
		var (
			n                domain.Notification
			newID, matchedID sql.NullString
			similarity       sql.NullFloat64
			details          sql.NullString
		)
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.IsRead,
			&newID, &matchedID, &similarity, &details, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		if newID.Valid {
			n.NewProjectID = &newID.String
		}
		if matchedID.Valid {
			n.MatchedProjectID = &matchedID.String
		}
		if similarity.Valid {
			n.SimilarityScore = &similarity.Float64
		}
		n.MatchDetails = details.String
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func requireOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
