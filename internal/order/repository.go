package order

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists orders and their items. The store exposes no
// multi-statement transactions; writes rely on two primitives only: single
// conditional statements checked by affected-row count, and an
// all-or-nothing batch for the order header plus its items.
type Repository interface {
	// Create persists the header and all items as one atomic batch.
	Create(ctx context.Context, o Order, items []Item) error
	Get(ctx context.Context, id string) (Order, error)
	// ListByEmail returns the account's orders, newest first.
	ListByEmail(ctx context.Context, email string) ([]Order, error)
	// ListRecent returns the most recent orders across all accounts.
	ListRecent(ctx context.Context, limit int) ([]Order, error)
	Items(ctx context.Context, orderID string) ([]Item, error)
	// UpdateStatus moves the order from one status to another as a single
	// conditional update. It reports false when no row was in the expected
	// status, which is how callers detect both illegal moves and lost races.
	UpdateStatus(ctx context.Context, id, from, to string) (bool, error)
	// SetItemPIN overwrites the redemption code of one item and reports
	// whether the item existed.
	SetItemPIN(ctx context.Context, orderID, itemID, pin string) (bool, error)
}

// PostgresRepository stores orders in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create queues the header insert and every item insert into one pgx batch;
// the batch executes as a unit, so a half-written order cannot exist.
func (r *PostgresRepository) Create(ctx context.Context, o Order, items []Item) error {
	batch := &pgx.Batch{}
	batch.Queue(`INSERT INTO orders (id, user_email, total, payment_method, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		o.ID, o.Email, o.Total, o.Method, o.Status, o.CreatedAt.UTC())
	for _, it := range items {
		batch.Queue(`INSERT INTO order_items (id, order_id, line_no, game_name, package_label, quantity, unit_price, uid, pin)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			it.ID, it.OrderID, it.Line, it.Game, it.Package, it.Quantity, it.UnitPrice, it.UID, it.PIN)
	}

	br := r.db.SendBatch(ctx, batch)
	var execErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && execErr == nil {
			execErr = err
		}
	}
	if err := br.Close(); err != nil && execErr == nil {
		execErr = err
	}
	return execErr
}

// Get fetches one order by id.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Order, error) {
	row := r.db.QueryRow(ctx, `SELECT id, user_email, total, payment_method, status, created_at
        FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	return o, err
}

// ListByEmail returns the account's orders, newest first.
func (r *PostgresRepository) ListByEmail(ctx context.Context, email string) ([]Order, error) {
	rows, err := r.db.Query(ctx, `SELECT id, user_email, total, payment_method, status, created_at
        FROM orders WHERE user_email = $1 ORDER BY created_at DESC`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

// ListRecent returns up to limit orders across all accounts, newest first.
func (r *PostgresRepository) ListRecent(ctx context.Context, limit int) ([]Order, error) {
	rows, err := r.db.Query(ctx, `SELECT id, user_email, total, payment_method, status, created_at
        FROM orders ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

// Items returns the order's items in line order.
func (r *PostgresRepository) Items(ctx context.Context, orderID string) ([]Item, error) {
	rows, err := r.db.Query(ctx, `SELECT id, order_id, line_no, game_name, package_label, quantity, unit_price, uid, pin
        FROM order_items WHERE order_id = $1 ORDER BY line_no`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.Line, &it.Game, &it.Package, &it.Quantity, &it.UnitPrice, &it.UID, &it.PIN); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// UpdateStatus performs the status move as one conditional update.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id, from, to string) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE orders SET status = $3 WHERE id = $1 AND status = $2`, id, from, to)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// SetItemPIN overwrites the item's redemption code.
func (r *PostgresRepository) SetItemPIN(ctx context.Context, orderID, itemID, pin string) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE order_items SET pin = $3 WHERE order_id = $1 AND id = $2`, orderID, itemID, pin)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func scanOrder(row pgx.Row) (Order, error) {
	var o Order
	if err := row.Scan(&o.ID, &o.Email, &o.Total, &o.Method, &o.Status, &o.CreatedAt); err != nil {
		return Order{}, err
	}
	o.CreatedAt = o.CreatedAt.UTC()
	return o, nil
}

func scanOrders(rows pgx.Rows) ([]Order, error) {
	var orders []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
