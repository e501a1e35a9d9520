package users

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

type UpsertUser struct {
	FirebaseUID string
	Email       string
	DisplayName string
	Username    string
}

// User is the identity attached to a request.
type User struct {
	ID          string
	FirebaseUID string
	Username    string
}

// EnsureUser creates the user on first sight and refreshes profile fields
// afterwards. Empty fields never overwrite stored ones.
func (r *Repo) EnsureUser(ctx context.Context, u UpsertUser) (User, error) {
	if u.FirebaseUID == "" {
		return User{}, fmt.Errorf("firebase_uid required")
	}

	const q = `
insert into users (firebase_uid, email, display_name, username, updated_at)
values ($1, nullif($2,''), nullif($3,''), nullif($4,''), now())
on conflict (firebase_uid) do update
set
  email = coalesce(excluded.email, users.email),
  display_name = coalesce(excluded.display_name, users.display_name),
  username = coalesce(excluded.username, users.username),
  updated_at = now()
returning id::text, firebase_uid, coalesce(username, '');
`
	var out User
	if err := r.db.QueryRow(ctx, q, u.FirebaseUID, u.Email, u.DisplayName, u.Username).
		Scan(&out.ID, &out.FirebaseUID, &out.Username); err != nil {
		return User{}, fmt.Errorf("ensure user: %w", err)
	}
	return out, nil
}
