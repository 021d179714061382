//go:build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cidreg/internal/registry/cache"
	"cidreg/pkg/domain"
	"cidreg/pkg/testutil/containers"
)

func TestRedisResolveCache(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	t.Cleanup(func() {
		_ = rc.Client.Close()
		_ = rc.Container.Terminate(context.Background())
	})

	c := cache.NewRedisResolveCache(rc.Client, cache.WithTTL(time.Minute))
	ctx := context.Background()

	t.Run("miss", func(t *testing.T) {
		_, hit, err := c.Get(ctx, domain.CID(1234))
		require.NoError(t, err)
		require.False(t, hit)
	})

	t.Run("set and get", func(t *testing.T) {
		target := domain.Address("alice")
		require.NoError(t, c.Set(ctx, domain.CID(1234), &target))

		got, hit, err := c.Get(ctx, domain.CID(1234))
		require.NoError(t, err)
		require.True(t, hit)
		require.NotNil(t, got)
		require.Equal(t, target, *got)
	})

	t.Run("unbound entry is a hit with nil target", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, domain.CID(5678), nil))

		got, hit, err := c.Get(ctx, domain.CID(5678))
		require.NoError(t, err)
		require.True(t, hit)
		require.Nil(t, got)
	})

	t.Run("set overwrites an existing entry", func(t *testing.T) {
		next := domain.Address("bob")
		require.NoError(t, c.Set(ctx, domain.CID(1234), &next))

		got, hit, err := c.Get(ctx, domain.CID(1234))
		require.NoError(t, err)
		require.True(t, hit)
		require.NotNil(t, got)
		require.Equal(t, next, *got)
	})
}
