package wallet

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists wallet balances. The store offers no multi-statement
// transactions, so every balance mutation must be a single conditional
// statement.
type Repository interface {
	// Ensure guarantees a wallet row exists for email with balance 0.
	// Safe to call repeatedly.
	Ensure(ctx context.Context, email string) error
	// Balance returns the current balance, 0 when no wallet exists yet.
	// Never creates the row.
	Balance(ctx context.Context, email string) (int64, error)
	// Credit adds amount to the balance, creating the wallet if absent,
	// and returns the new balance.
	Credit(ctx context.Context, email string, amount int64) (int64, error)
	// Debit subtracts amount as a single check-and-decrement. It returns
	// *InsufficientFundsError when amount exceeds the balance; two
	// concurrent debits can never both pass the guard.
	Debit(ctx context.Context, email string, amount int64) (int64, error)
	// Set overwrites the balance unconditionally.
	Set(ctx context.Context, email string, balance int64) error
}

// PostgresRepository stores wallets in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Ensure inserts the wallet row if absent.
func (r *PostgresRepository) Ensure(ctx context.Context, email string) error {
	_, err := r.db.Exec(ctx, `INSERT INTO wallets (user_email, balance, created_at)
        VALUES ($1, 0, NOW()) ON CONFLICT (user_email) DO NOTHING`, email)
	return err
}

// Balance reads the stored balance, 0 when the wallet does not exist.
func (r *PostgresRepository) Balance(ctx context.Context, email string) (int64, error) {
	var balance int64
	err := r.db.QueryRow(ctx, `SELECT balance FROM wallets WHERE user_email = $1`, email).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// Credit adds to the balance and returns the new value.
func (r *PostgresRepository) Credit(ctx context.Context, email string, amount int64) (int64, error) {
	if err := r.Ensure(ctx, email); err != nil {
		return 0, err
	}
	var balance int64
	err := r.db.QueryRow(ctx, `UPDATE wallets SET balance = balance + $2
        WHERE user_email = $1 RETURNING balance`, email, amount).Scan(&balance)
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// Debit performs the check and the decrement in one conditional update so
// concurrent debits against the same wallet cannot overdraw it.
func (r *PostgresRepository) Debit(ctx context.Context, email string, amount int64) (int64, error) {
	var balance int64
	err := r.db.QueryRow(ctx, `UPDATE wallets SET balance = balance - $2
        WHERE user_email = $1 AND balance >= $2 RETURNING balance`, email, amount).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		current, balErr := r.Balance(ctx, email)
		if balErr != nil {
			return 0, balErr
		}
		return 0, &InsufficientFundsError{Balance: current}
	}
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// Set overwrites the balance, creating the wallet if absent.
func (r *PostgresRepository) Set(ctx context.Context, email string, balance int64) error {
	_, err := r.db.Exec(ctx, `INSERT INTO wallets (user_email, balance, created_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (user_email) DO UPDATE SET balance = EXCLUDED.balance`, email, balance)
	return err
}
