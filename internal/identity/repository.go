package identity

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrEmailTaken occurs when registering an email that already has an account.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUserNotFound occurs when no account exists for an email.
	ErrUserNotFound = errors.New("user not found")
)

// Repository persists user accounts.
type Repository interface {
	Create(ctx context.Context, user User) error
	FindByEmail(ctx context.Context, email string) (User, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed identity repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new user; the conflict target is the email primary key.
func (r *PostgresRepository) Create(ctx context.Context, user User) error {
	tag, err := r.db.Exec(ctx, `INSERT INTO users (email, password_hash, role, created_at)
        VALUES ($1, $2, $3, $4) ON CONFLICT (email) DO NOTHING`,
		user.Email, user.PasswordHash, user.Role, user.CreatedAt.UTC())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEmailTaken
	}
	return nil
}

// FindByEmail fetches a user account.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT email, password_hash, role, created_at FROM users WHERE email = $1`, email)
	var user User
	if err := row.Scan(&user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	user.CreatedAt = user.CreatedAt.UTC()
	return user, nil
}
