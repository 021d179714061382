package event

import (
	"context"
	"database/sql"
	"fmt"

	"cidreg/internal/registry/models"
	"cidreg/pkg/domain"
	txcontext "cidreg/pkg/platform/tx"
)

// PostgresStore persists lifecycle events in PostgreSQL. Events are insert
// only; nothing updates or deletes rows.
//
// Schema:
//
//	CREATE TABLE registration_events (
//	    seq        BIGSERIAL PRIMARY KEY,
//	    cid        INTEGER NOT NULL,
//	    fee        BIGINT NOT NULL,
//	    version    BIGINT NOT NULL,
//	    expires_at TIMESTAMPTZ NOT NULL,
//	    at         TIMESTAMPTZ NOT NULL
//	);
//	CREATE TABLE address_change_events (
//	    seq        BIGSERIAL PRIMARY KEY,
//	    cid        INTEGER NOT NULL,
//	    version    BIGINT NOT NULL,
//	    expires_at TIMESTAMPTZ NOT NULL,
//	    target     TEXT,
//	    at         TIMESTAMPTZ NOT NULL
//	);
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// execer returns the transaction from context when one is present, so event
// appends can share a transaction with record upserts.
func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) AppendRegistration(ctx context.Context, ev models.RegistrationEvent) (models.RegistrationEvent, error) {
	err := s.execer(ctx).QueryRowContext(ctx, `
		INSERT INTO registration_events (cid, fee, version, expires_at, at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING seq
	`, int(ev.CID), ev.Fee, ev.Version, ev.ExpiresAt, ev.At).Scan(&ev.Seq)
	if err != nil {
		return models.RegistrationEvent{}, fmt.Errorf("append registration event: %w", err)
	}
	return ev, nil
}

func (s *PostgresStore) AppendAddressChange(ctx context.Context, ev models.AddressChangeEvent) (models.AddressChangeEvent, error) {
	var target sql.NullString
	if ev.Target != nil {
		target = sql.NullString{String: ev.Target.String(), Valid: true}
	}
	err := s.execer(ctx).QueryRowContext(ctx, `
		INSERT INTO address_change_events (cid, version, expires_at, target, at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING seq
	`, int(ev.CID), ev.Version, ev.ExpiresAt, target, ev.At).Scan(&ev.Seq)
	if err != nil {
		return models.AddressChangeEvent{}, fmt.Errorf("append address change event: %w", err)
	}
	return ev, nil
}

func (s *PostgresStore) RegistrationCount(ctx context.Context) (uint64, error) {
	var count uint64
	if err := s.execer(ctx).QueryRowContext(ctx, `SELECT COUNT(*) FROM registration_events`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count registration events: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) AddressChangeCount(ctx context.Context) (uint64, error) {
	var count uint64
	if err := s.execer(ctx).QueryRowContext(ctx, `SELECT COUNT(*) FROM address_change_events`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count address change events: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) RegistrationsByCID(ctx context.Context, cid domain.CID) ([]models.RegistrationEvent, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, `
		SELECT seq, cid, fee, version, expires_at, at
		FROM registration_events
		WHERE cid = $1
		ORDER BY seq
	`, int(cid))
	if err != nil {
		return nil, fmt.Errorf("list registration events: %w", err)
	}
	defer rows.Close()

	var out []models.RegistrationEvent
	for rows.Next() {
		var ev models.RegistrationEvent
		var rawCID int
		if err := rows.Scan(&ev.Seq, &rawCID, &ev.Fee, &ev.Version, &ev.ExpiresAt, &ev.At); err != nil {
			return nil, fmt.Errorf("scan registration event: %w", err)
		}
		ev.CID = domain.CID(rawCID)
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list registration events: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) AddressChangesByCID(ctx context.Context, cid domain.CID) ([]models.AddressChangeEvent, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, `
		SELECT seq, cid, version, expires_at, target, at
		FROM address_change_events
		WHERE cid = $1
		ORDER BY seq
	`, int(cid))
	if err != nil {
		return nil, fmt.Errorf("list address change events: %w", err)
	}
	defer rows.Close()

	var out []models.AddressChangeEvent
	for rows.Next() {
		var ev models.AddressChangeEvent
		var rawCID int
		var target sql.NullString
		if err := rows.Scan(&ev.Seq, &rawCID, &ev.Version, &ev.ExpiresAt, &target, &ev.At); err != nil {
			return nil, fmt.Errorf("scan address change event: %w", err)
		}
		ev.CID = domain.CID(rawCID)
		if target.Valid {
			addr := domain.Address(target.String)
			ev.Target = &addr
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list address change events: %w", err)
	}
	return out, nil
}
