//go:build integration

package record_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cidreg/internal/registry/models"
	"cidreg/internal/registry/store/record"
	"cidreg/pkg/domain"
	"cidreg/pkg/platform/sentinel"
	"cidreg/pkg/platform/tx"
	"cidreg/pkg/testutil/containers"
)

const recordsSchema = `
CREATE TABLE IF NOT EXISTS records (
    cid        INTEGER PRIMARY KEY CHECK (cid BETWEEN 1000 AND 9999),
    version    BIGINT NOT NULL,
    expires_at TIMESTAMPTZ NOT NULL,
    target     TEXT
);`

func TestPostgresRecordStore(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	t.Cleanup(func() {
		_ = pg.DB.Close()
		_ = pg.Container.Terminate(context.Background())
	})
	pg.MustExec(t, recordsSchema)

	store := record.NewPostgresStore(pg.DB)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("find missing returns not found", func(t *testing.T) {
		_, err := store.Find(ctx, domain.CID(1234))
		require.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("upsert and find", func(t *testing.T) {
		rec := models.NewRecord(domain.CID(1234), 3, now)
		target := domain.Address("alice")
		rec.ApplyTarget(4, &target)
		require.NoError(t, store.Upsert(ctx, rec))

		got, err := store.Find(ctx, domain.CID(1234))
		require.NoError(t, err)
		require.Equal(t, domain.CID(1234), got.CID)
		require.Equal(t, uint64(4), got.Version)
		require.True(t, got.ExpiresAt.Equal(rec.ExpiresAt))
		require.NotNil(t, got.Target)
		require.Equal(t, target, *got.Target)
	})

	t.Run("upsert fully overwrites", func(t *testing.T) {
		rec := models.NewRecord(domain.CID(1234), 7, now.Add(time.Hour))
		require.NoError(t, store.Upsert(ctx, rec))

		got, err := store.Find(ctx, domain.CID(1234))
		require.NoError(t, err)
		require.Equal(t, uint64(7), got.Version)
		require.Nil(t, got.Target, "overwrite clears a previously bound target")
	})

	t.Run("count", func(t *testing.T) {
		require.NoError(t, store.Upsert(ctx, models.NewRecord(domain.CID(5678), 1, now)))
		count, err := store.Count(ctx)
		require.NoError(t, err)
		require.Equal(t, 2, count)
	})

	t.Run("upsert joins a context transaction", func(t *testing.T) {
		dbTx, err := pg.DB.BeginTx(ctx, nil)
		require.NoError(t, err)
		txCtx := tx.WithTx(ctx, dbTx)

		require.NoError(t, store.Upsert(txCtx, models.NewRecord(domain.CID(4444), 1, now)))
		require.NoError(t, dbTx.Rollback())

		_, err = store.Find(ctx, domain.CID(4444))
		require.ErrorIs(t, err, sentinel.ErrNotFound, "rolled back write must not be visible")
	})

	t.Run("runner commits the unit of work", func(t *testing.T) {
		runner := tx.NewRunner(pg.DB)
		err := runner.RunInTx(ctx, func(ctx context.Context) error {
			return store.Upsert(ctx, models.NewRecord(domain.CID(8888), 1, now))
		})
		require.NoError(t, err)

		_, err = store.Find(ctx, domain.CID(8888))
		require.NoError(t, err)
	})

	t.Run("runner rolls back the unit of work on error", func(t *testing.T) {
		runner := tx.NewRunner(pg.DB)
		wantErr := errors.New("abort")
		err := runner.RunInTx(ctx, func(ctx context.Context) error {
			if err := store.Upsert(ctx, models.NewRecord(domain.CID(7777), 1, now)); err != nil {
				return err
			}
			return wantErr
		})
		require.ErrorIs(t, err, wantErr)

		_, err = store.Find(ctx, domain.CID(7777))
		require.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}
