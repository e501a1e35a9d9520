package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	matching "github.com/collabhub/project-match/internal/matching/domain"
	"github.com/collabhub/project-match/internal/projects/domain"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const selectProject = `
select p.public_id, p.name, p.description, p.technologies_used, p.domain, p.country, p.language,
       p.user_id::text, coalesce(u.username, ''), u.firebase_uid, p.created_at, p.updated_at
from projects p
join users u on u.id = p.user_id
`

func scanProject(row pgx.Row) (domain.Project, error) {
	var p domain.Project
	err := row.Scan(&p.PublicID, &p.Name, &p.Description, &p.TechnologiesUsed, &p.Domain, &p.Country, &p.Language,
		&p.UserID, &p.CreatorUsername, &p.CreatorUID, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// Create inserts a new project for the given user and returns it with its
// creator identity filled in.
func (r *Repo) Create(ctx context.Context, userDBID string, in domain.CreateInput) (*domain.Project, error) {
	for i := 0; i < 5; i++ {
		publicID, err := domain.NewPublicID(domain.PublicIDPrefix)
		if err != nil {
			return nil, err
		}

		const q = `
with inserted as (
  insert into projects (public_id, user_id, name, description, technologies_used, domain, country, language)
  values ($1, $2::uuid, $3, $4, $5, $6, $7, $8)
  returning *
)
select p.public_id, p.name, p.description, p.technologies_used, p.domain, p.country, p.language,
       p.user_id::text, coalesce(u.username, ''), u.firebase_uid, p.created_at, p.updated_at
from inserted p
join users u on u.id = p.user_id;
`
		p, err := scanProject(r.db.QueryRow(ctx, q, publicID, userDBID,
			in.Name, in.Description, in.TechnologiesUsed, in.Domain, in.Country, in.Language))
		if err == nil {
			return &p, nil
		}

		// unique violation on public_id → retry
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("failed to generate unique project id")
}

func (r *Repo) Get(ctx context.Context, publicID string) (*domain.Project, error) {
	p, err := scanProject(r.db.QueryRow(ctx, selectProject+`where p.public_id = $1 and p.deleted_at is null;`, publicID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List returns all non-deleted projects, newest first.
func (r *Repo) List(ctx context.Context, limit int) ([]domain.Project, error) {
	return r.query(ctx, selectProject+`where p.deleted_at is null order by p.created_at desc limit $1;`, limit)
}

// ListByUser returns the user's non-deleted projects, newest first.
func (r *Repo) ListByUser(ctx context.Context, userDBID string) ([]domain.Project, error) {
	return r.query(ctx, selectProject+`where p.user_id = $1::uuid and p.deleted_at is null order by p.created_at desc;`, userDBID)
}

// ListByCreator returns the projects of the user with the given username.
func (r *Repo) ListByCreator(ctx context.Context, username string) ([]domain.Project, error) {
	return r.query(ctx, selectProject+`where u.username = $1 and p.deleted_at is null order by p.created_at desc;`, username)
}

// Snapshot returns the most recent projects as matching records. It is the
// corpus of one automatic matching pass.
func (r *Repo) Snapshot(ctx context.Context, limit int) ([]matching.Project, error) {
	items, err := r.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]matching.Project, 0, len(items))
	for _, p := range items {
		out = append(out, p.Match())
	}
	return out, nil
}

// SoftDelete marks a project as deleted (soft delete).
func (r *Repo) SoftDelete(ctx context.Context, userDBID, publicID string) (bool, error) {
	const q = `
update projects
set deleted_at = now(), updated_at = now()
where user_id = $1::uuid and public_id = $2 and deleted_at is null;
`
	ct, err := r.db.Exec(ctx, q, userDBID, publicID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

// Ping checks the pool, for health endpoints.
func (r *Repo) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *Repo) query(ctx context.Context, q string, args ...any) ([]domain.Project, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
