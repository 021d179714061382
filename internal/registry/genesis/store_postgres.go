package genesis

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cidreg/pkg/platform/sentinel"
)

// PostgresStore persists the activation marker in PostgreSQL. The table holds
// at most one row, enforced by a fixed primary key.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Load(ctx context.Context) (time.Time, error) {
	var start time.Time
	err := s.db.QueryRowContext(ctx, `SELECT activated_at FROM genesis WHERE id = TRUE`).Scan(&start)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, sentinel.ErrNotFound
		}
		return time.Time{}, fmt.Errorf("load genesis marker: %w", err)
	}
	return start, nil
}

func (s *PostgresStore) Record(ctx context.Context, at time.Time) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO genesis (id, activated_at)
		VALUES (TRUE, $1)
		ON CONFLICT (id) DO NOTHING
	`, at)
	if err != nil {
		return fmt.Errorf("record genesis marker: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("record genesis marker: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrAlreadyActivated
	}
	return nil
}
