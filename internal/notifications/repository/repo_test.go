package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	matching "github.com/collabhub/project-match/internal/matching/domain"
	"github.com/collabhub/project-match/internal/notifications/domain"
)

func setupRepo(t *testing.T) (*NotificationRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewNotificationRepository(db), mock
}

var rowColumns = []string{"id", "user_id", "title", "message", "type", "is_read",
	"new_project_id", "matched_project_id", "similarity_score", "match_details", "created_at"}

func TestNotificationRepository_ResolveRecipient(t *testing.T) {
	ctx := context.Background()

	t.Run("user id wins", func(t *testing.T) {
		repo, mock := setupRepo(t)
		mock.ExpectQuery(`FROM users WHERE id::text =`).
			WithArgs("u-1").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("u-1"))

		id, err := repo.ResolveRecipient(ctx, matching.Creator{UserID: "u-1", Username: "alice"})
		require.NoError(t, err)
		assert.Equal(t, "u-1", id)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("falls back to username then creator id", func(t *testing.T) {
		repo, mock := setupRepo(t)
		mock.ExpectQuery(`FROM users WHERE id::text =`).
			WithArgs("stale").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery(`FROM users WHERE username =`).
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectQuery(`FROM users WHERE firebase_uid =`).
			WithArgs("fb-7").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("u-7"))

		id, err := repo.ResolveRecipient(ctx, matching.Creator{UserID: "stale", Username: "alice", CreatorID: "fb-7"})
		require.NoError(t, err)
		assert.Equal(t, "u-7", id)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("skips empty channels", func(t *testing.T) {
		repo, mock := setupRepo(t)
		mock.ExpectQuery(`FROM users WHERE username =`).
			WithArgs("bob").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.ResolveRecipient(ctx, matching.Creator{Username: " bob "})
		assert.ErrorIs(t, err, domain.ErrRecipientNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no identity", func(t *testing.T) {
		repo, mock := setupRepo(t)
		_, err := repo.ResolveRecipient(ctx, matching.Creator{})
		assert.ErrorIs(t, err, domain.ErrRecipientNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		repo, mock := setupRepo(t)
		mock.ExpectQuery(`FROM users WHERE username =`).
			WillReturnError(errors.New("connection refused"))

		_, err := repo.ResolveRecipient(ctx, matching.Creator{Username: "bob"})
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrRecipientNotFound)
	})
}

func TestNotificationRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("match notification", func(t *testing.T) {
		repo, mock := setupRepo(t)
		newID, matchedID, score := "proj-2", "proj-1", 0.77
		n := &domain.Notification{
			UserID:           "u-1",
			Title:            domain.MatchTitle,
			Message:          "hello",
			Type:             domain.TypeProjectMatch,
			NewProjectID:     &newID,
			MatchedProjectID: &matchedID,
			SimilarityScore:  &score,
			MatchDetails:     "details",
		}

		mock.ExpectQuery(`INSERT INTO notifications`).
			WithArgs(sqlmock.AnyArg(), "u-1", domain.MatchTitle, "hello", domain.TypeProjectMatch, false,
				"proj-2", "proj-1", 0.77, "details").
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

		require.NoError(t, repo.Create(ctx, n))
		assert.NotEmpty(t, n.ID)
		assert.Equal(t, now, n.CreatedAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("plain notification stores nulls", func(t *testing.T) {
		repo, mock := setupRepo(t)
		n := &domain.Notification{ID: "n-1", UserID: "u-1", Title: "t", Message: "m", Type: "INFO"}

		mock.ExpectQuery(`INSERT INTO notifications`).
			WithArgs("n-1", "u-1", "t", "m", "INFO", false, nil, nil, nil, nil).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

		require.NoError(t, repo.Create(ctx, n))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown user", func(t *testing.T) {
		repo, mock := setupRepo(t)
		mock.ExpectQuery(`INSERT INTO notifications`).
			WillReturnError(&pq.Error{Code: "23503", Detail: "Key (user_id) is not present"})

		err := repo.Create(ctx, &domain.Notification{UserID: "ghost"})
		assert.ErrorIs(t, err, domain.ErrRecipientNotFound)
	})
}

func TestNotificationRepository_List(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	repo, mock := setupRepo(t)

	mock.ExpectQuery(`FROM notifications\s+WHERE user_id = \$1\s+ORDER BY created_at DESC`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(rowColumns).
			AddRow("n-2", "u-1", "Project Match Found", "m2", "PROJECT_MATCH", false, "proj-2", "proj-1", 0.8, "d", now).
			AddRow("n-1", "u-1", "Welcome", "m1", "INFO", true, nil, nil, nil, nil, now.Add(-time.Hour)))

	items, err := repo.ListByUser(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "n-2", items[0].ID)
	require.NotNil(t, items[0].NewProjectID)
	assert.Equal(t, "proj-2", *items[0].NewProjectID)
	require.NotNil(t, items[0].SimilarityScore)
	assert.Equal(t, 0.8, *items[0].SimilarityScore)

	assert.True(t, items[1].IsRead)
	assert.Nil(t, items[1].NewProjectID)
	assert.Nil(t, items[1].MatchedProjectID)
	assert.Nil(t, items[1].SimilarityScore)
	assert.Empty(t, items[1].MatchDetails)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_Unread(t *testing.T) {
	ctx := context.Background()
	repo, mock := setupRepo(t)

	mock.ExpectQuery(`WHERE user_id = \$1 AND is_read = false`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(rowColumns))
	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	items, err := repo.ListUnread(ctx, "u-1")
	require.NoError(t, err)
	assert.Empty(t, items)

	n, err := repo.CountUnread(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_ListByType(t *testing.T) {
	ctx := context.Background()
	repo, mock := setupRepo(t)

	mock.ExpectQuery(`WHERE user_id = \$1 AND type = \$2\s+ORDER BY created_at DESC`).
		WithArgs("u-1", "PROJECT_MATCH").
		WillReturnRows(sqlmock.NewRows(rowColumns).
			AddRow("n-2", "u-1", "Project Match Found", "m2", "PROJECT_MATCH", false, "proj-2", "proj-1", 0.8, "d", time.Now()))

	items, err := repo.ListByType(ctx, "u-1", "PROJECT_MATCH")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "PROJECT_MATCH", items[0].Type)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_Mutations(t *testing.T) {
	ctx := context.Background()

	t.Run("mark read", func(t *testing.T) {
		repo, mock := setupRepo(t)
		mock.ExpectExec(`UPDATE notifications SET is_read = true WHERE id =`).
			WithArgs("n-1", "u-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE notifications SET is_read = true WHERE id =`).
			WithArgs("n-9", "u-1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, repo.MarkRead(ctx, "u-1", "n-1"))
		assert.ErrorIs(t, repo.MarkRead(ctx, "u-1", "n-9"), domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("mark all read", func(t *testing.T) {
		repo, mock := setupRepo(t)
		mock.ExpectExec(`UPDATE notifications SET is_read = true WHERE user_id =`).
			WithArgs("u-1").
			WillReturnResult(sqlmock.NewResult(0, 4))

		n, err := repo.MarkAllRead(ctx, "u-1")
		require.NoError(t, err)
		assert.Equal(t, int64(4), n)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete", func(t *testing.T) {
		repo, mock := setupRepo(t)
		mock.ExpectExec(`DELETE FROM notifications WHERE id =`).
			WithArgs("n-1", "u-2").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, "u-2", "n-1"), domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("purge", func(t *testing.T) {
		repo, mock := setupRepo(t)
		cutoff := time.Now().Add(-90 * 24 * time.Hour)
		mock.ExpectExec(`DELETE FROM notifications WHERE is_read = true AND created_at <`).
			WithArgs(cutoff).
			WillReturnResult(sqlmock.NewResult(0, 12))

		n, err := repo.PurgeReadBefore(ctx, cutoff)
		require.NoError(t, err)
		assert.Equal(t, int64(12), n)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
