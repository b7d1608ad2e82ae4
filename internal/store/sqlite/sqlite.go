// Package sqlite persists order records in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"range-trading-bot/internal/interfaces"
	"range-trading-bot/internal/types"
)

type Store struct {
	db *sql.DB
}

var _ interfaces.OrderStore = (*Store)(nil)

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Trackers write concurrently; WAL avoids writer starvation and a single
	// connection sidesteps SQLITE_BUSY under modernc's driver.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmts := []string{
		`PRAGMA journal_mode=WAL;`,
		`
CREATE TABLE IF NOT EXISTS orders (
  order_id TEXT PRIMARY KEY,
  figi TEXT NOT NULL,
  direction TEXT NOT NULL,
  price REAL NOT NULL,
  quantity INTEGER NOT NULL,
  status TEXT NOT NULL,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);`,
		`CREATE INDEX IF NOT EXISTS idx_orders_figi ON orders(figi);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// CreateOrderRecord inserts the record, silently keeping the existing row
// when the order was already recorded.
func (s *Store) CreateOrderRecord(ctx context.Context, rec types.OrderRecord) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx, `
INSERT OR IGNORE INTO orders (order_id,figi,direction,price,quantity,status,created_at,updated_at)
VALUES (?,?,?,?,?,?,?,?)
`, rec.OrderID, rec.Figi, string(rec.Direction), rec.Price, rec.Quantity, string(rec.Status), now, now)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// UpdateOrderStatus moves the record to status. Repeating the same terminal
// status is a no-op beyond the timestamp.
func (s *Store) UpdateOrderStatus(ctx context.Context, orderID string, status types.OrderStatus) error {
	_, err := s.db.ExecContext(ctx, `
UPDATE orders SET status=?, updated_at=? WHERE order_id=?
`, string(status), time.Now().UTC().Format(time.RFC3339Nano), orderID)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

// GetOrderRecord reads one record back, mainly for tooling and tests.
func (s *Store) GetOrderRecord(ctx context.Context, orderID string) (*types.OrderRecord, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT order_id,figi,direction,price,quantity,status FROM orders WHERE order_id=?
`, orderID)
	var rec types.OrderRecord
	var direction, status string
	if err := row.Scan(&rec.OrderID, &rec.Figi, &direction, &rec.Price, &rec.Quantity, &status); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	rec.Direction = types.Direction(direction)
	rec.Status = types.OrderStatus(status)
	return &rec, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
