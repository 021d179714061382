package record

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cidreg/internal/registry/models"
	"cidreg/pkg/domain"
	"cidreg/pkg/platform/sentinel"
	txcontext "cidreg/pkg/platform/tx"
)

// PostgresStore persists records in PostgreSQL.
//
// Schema:
//
//	CREATE TABLE records (
//	    cid        INTEGER PRIMARY KEY CHECK (cid BETWEEN 1000 AND 9999),
//	    version    BIGINT NOT NULL,
//	    expires_at TIMESTAMPTZ NOT NULL,
//	    target     TEXT
//	);
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// execer returns the transaction from context when one is present, so record
// writes can share a transaction with event appends.
func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) Find(ctx context.Context, cid domain.CID) (*models.Record, error) {
	rec := models.Record{CID: cid}
	var target sql.NullString
	err := s.execer(ctx).QueryRowContext(ctx,
		`SELECT version, expires_at, target FROM records WHERE cid = $1`, int(cid),
	).Scan(&rec.Version, &rec.ExpiresAt, &target)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find record: %w", err)
	}
	if target.Valid {
		addr := domain.Address(target.String)
		rec.Target = &addr
	}
	return &rec, nil
}

func (s *PostgresStore) Upsert(ctx context.Context, rec *models.Record) error {
	var target sql.NullString
	if rec.Target != nil {
		target = sql.NullString{String: rec.Target.String(), Valid: true}
	}
	_, err := s.execer(ctx).ExecContext(ctx, `
		INSERT INTO records (cid, version, expires_at, target)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (cid) DO UPDATE SET
			version = EXCLUDED.version,
			expires_at = EXCLUDED.expires_at,
			target = EXCLUDED.target
	`, int(rec.CID), rec.Version, rec.ExpiresAt, target)
	if err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}
	return nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.execer(ctx).QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return count, nil
}
