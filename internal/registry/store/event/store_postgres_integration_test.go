//go:build integration

package event_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cidreg/internal/registry/models"
	"cidreg/internal/registry/store/event"
	"cidreg/pkg/domain"
	"cidreg/pkg/testutil/containers"
)

const eventsSchema = `
CREATE TABLE IF NOT EXISTS registration_events (
    seq        BIGSERIAL PRIMARY KEY,
    cid        INTEGER NOT NULL,
    fee        BIGINT NOT NULL,
    version    BIGINT NOT NULL,
    expires_at TIMESTAMPTZ NOT NULL,
    at         TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS address_change_events (
    seq        BIGSERIAL PRIMARY KEY,
    cid        INTEGER NOT NULL,
    version    BIGINT NOT NULL,
    expires_at TIMESTAMPTZ NOT NULL,
    target     TEXT,
    at         TIMESTAMPTZ NOT NULL
);`

func TestPostgresEventStore(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	t.Cleanup(func() {
		_ = pg.DB.Close()
		_ = pg.Container.Terminate(context.Background())
	})
	pg.MustExec(t, eventsSchema)

	store := event.NewPostgresStore(pg.DB)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("sequences are per kind and start at 1", func(t *testing.T) {
		reg, err := store.AppendRegistration(ctx, models.RegistrationEvent{
			CID: domain.CID(1234), Fee: 10, Version: 2, ExpiresAt: now, At: now,
		})
		require.NoError(t, err)
		require.Equal(t, uint64(1), reg.Seq)

		target := domain.Address("alice")
		change, err := store.AppendAddressChange(ctx, models.AddressChangeEvent{
			CID: domain.CID(1234), Version: 3, ExpiresAt: now, Target: &target, At: now,
		})
		require.NoError(t, err)
		require.Equal(t, uint64(1), change.Seq, "address changes sequence independently")
	})

	t.Run("counts", func(t *testing.T) {
		regCount, err := store.RegistrationCount(ctx)
		require.NoError(t, err)
		require.Equal(t, uint64(1), regCount)

		changeCount, err := store.AddressChangeCount(ctx)
		require.NoError(t, err)
		require.Equal(t, uint64(1), changeCount)
	})

	t.Run("list by cid in sequence order", func(t *testing.T) {
		_, err := store.AppendRegistration(ctx, models.RegistrationEvent{
			CID: domain.CID(1234), Fee: 36, Version: 5, ExpiresAt: now.Add(time.Hour), At: now.Add(time.Hour),
		})
		require.NoError(t, err)
		_, err = store.AppendRegistration(ctx, models.RegistrationEvent{
			CID: domain.CID(5678), Fee: 36, Version: 2, ExpiresAt: now, At: now,
		})
		require.NoError(t, err)

		events, err := store.RegistrationsByCID(ctx, domain.CID(1234))
		require.NoError(t, err)
		require.Len(t, events, 2)
		require.Less(t, events[0].Seq, events[1].Seq)
		require.Equal(t, uint64(10), events[0].Fee)
		require.Equal(t, uint64(36), events[1].Fee)
	})

	t.Run("nil target round trips", func(t *testing.T) {
		change, err := store.AppendAddressChange(ctx, models.AddressChangeEvent{
			CID: domain.CID(5678), Version: 4, ExpiresAt: now, At: now,
		})
		require.NoError(t, err)

		events, err := store.AddressChangesByCID(ctx, domain.CID(5678))
		require.NoError(t, err)
		require.Len(t, events, 1)
		require.Equal(t, change.Seq, events[0].Seq)
		require.Nil(t, events[0].Target)
	})
}
