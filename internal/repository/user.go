package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

// User is a registered account.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserRepo handles user persistence
type UserRepo struct {
	pool DBPool
}

func NewUserRepo(pool DBPool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create inserts a new user. Expects caller to generate ID and hash password.
func (r *UserRepo) Create(ctx context.Context, u *User) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, first_name, last_name)
		 VALUES ($1,$2,$3,$4,$5)`,
		u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName,
	)
	return mapPgError(err)
}

// GetByEmail returns the user with email.
// Returns (nil, nil) if not found.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	row := r.pool.QueryRow(ctx, `
    SELECT id, email, password_hash, first_name, last_name, created_at, updated_at
    FROM users
    WHERE email = $1
    LIMIT 1`, email)
	return scanUser(row)
}

// GetByID returns the user with id.
// Returns (nil, nil) if not found.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*User, error) {
	row := r.pool.QueryRow(ctx, `
    SELECT id, email, password_hash, first_name, last_name, created_at, updated_at
    FROM users
    WHERE id = $1`, id)
	return scanUser(row)
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
