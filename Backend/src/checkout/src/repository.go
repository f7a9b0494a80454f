package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // driver 100% Go
)

var ErrNotFound = errors.New("order not found")

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Repository{db: db}, nil
}

func migrate(db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  session_id TEXT NOT NULL,
  status TEXT NOT NULL,
  total_cents INTEGER NOT NULL,
  ship_name TEXT NOT NULL,
  ship_email TEXT NOT NULL,
  ship_address TEXT NOT NULL,
  ship_city TEXT NOT NULL,
  ship_zip TEXT NOT NULL,
  card_last4 TEXT NOT NULL,
  provider_ref TEXT NOT NULL DEFAULT '',
  created_unix INTEGER NOT NULL,
  updated_unix INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS order_items(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  order_id TEXT NOT NULL,
  book_id TEXT NOT NULL,
  title TEXT NOT NULL,
  qty INTEGER NOT NULL,
  unit_cents INTEGER NOT NULL,
  line_cents INTEGER NOT NULL,
  FOREIGN KEY(order_id) REFERENCES orders(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_orders_session ON orders(session_id);
CREATE INDEX IF NOT EXISTS idx_items_order ON order_items(order_id);
`
	_, err := db.Exec(schema)
	return err
}

func (r *Repository) Close() error { return r.db.Close() }

func (r *Repository) CreateOrder(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
  INSERT INTO orders(id, session_id, status, total_cents, ship_name, ship_email, ship_address,
    ship_city, ship_zip, card_last4, provider_ref, created_unix, updated_unix)
  VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		o.ID, o.SessionID, string(o.Status), o.TotalCents, o.Shipping.Name, o.Shipping.Email,
		o.Shipping.Address, o.Shipping.City, o.Shipping.ZipCode, o.CardLast4, o.ProviderRef,
		o.CreatedUnix, o.UpdatedUnix)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
  INSERT INTO order_items(order_id, book_id, title, qty, unit_cents, line_cents)
  VALUES(?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, it := range o.Items {
		if _, err := stmt.ExecContext(ctx, o.ID, it.BookID, it.Title, it.Qty, it.UnitCents, it.LineCents); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *Repository) UpdateStatus(ctx context.Context, orderID string, status OrderStatus, providerRef string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status=?, provider_ref=?, updated_unix=? WHERE id=?`,
		string(status), providerRef, nowUnix(), orderID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	row := r.db.QueryRowContext(ctx, `
    SELECT id, session_id, status, total_cents, ship_name, ship_email, ship_address, ship_city,
      ship_zip, card_last4, provider_ref, created_unix, updated_unix
    FROM orders WHERE id=?`, orderID)
	var o Order
	var status string
	if err := row.Scan(&o.ID, &o.SessionID, &status, &o.TotalCents, &o.Shipping.Name,
		&o.Shipping.Email, &o.Shipping.Address, &o.Shipping.City, &o.Shipping.ZipCode,
		&o.CardLast4, &o.ProviderRef, &o.CreatedUnix, &o.UpdatedUnix); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	o.Status = OrderStatus(status)
	items, err := r.listItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *Repository) listItems(ctx context.Context, orderID string) ([]OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
    SELECT book_id, title, qty, unit_cents, line_cents
    FROM order_items WHERE order_id=? ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []OrderItem
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.BookID, &it.Title, &it.Qty, &it.UnitCents, &it.LineCents); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
