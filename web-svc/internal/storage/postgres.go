package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PostgresCartStorage keeps cart slots in the cart_slots table, one row per
// slot key.
type PostgresCartStorage struct {
	DB *sql.DB
}

func NewPostgresCartStorage(db *sql.DB) *PostgresCartStorage {
	return &PostgresCartStorage{DB: db}
}

func (s *PostgresCartStorage) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var lines []byte
	err := s.DB.QueryRowContext(ctx, "SELECT lines FROM cart_slots WHERE slot_key = $1", key).Scan(&lines)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return lines, true, nil
}

func (s *PostgresCartStorage) Save(ctx context.Context, key string, value []byte) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO cart_slots (slot_key, lines, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (slot_key) DO UPDATE SET lines = EXCLUDED.lines, updated_at = NOW()`,
		key, value)
	return err
}

func (s *PostgresCartStorage) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS cart_slots (
			slot_key   TEXT PRIMARY KEY,
			lines      JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	return nil
}
