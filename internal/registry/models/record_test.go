package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cidreg/internal/registry/pricing"
	"cidreg/pkg/domain"
)

func TestRecord_LifecycleWindows(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	rec := NewRecord(domain.CID(1234), 1, now)

	require.True(t, rec.ExpiresAt.Equal(now.Add(pricing.ValidityDuration())))
	assert.Nil(t, rec.Target)

	t.Run("active until expiration", func(t *testing.T) {
		assert.True(t, rec.IsActive(now))
		assert.False(t, rec.IsExpired(now))
		assert.True(t, rec.IsActive(rec.ExpiresAt.Add(-time.Second)))
	})

	t.Run("expired exactly at expiration", func(t *testing.T) {
		assert.True(t, rec.IsExpired(rec.ExpiresAt))
		assert.False(t, rec.IsActive(rec.ExpiresAt))
	})

	t.Run("renewable from six months before expiry", func(t *testing.T) {
		windowStart := rec.ExpiresAt.Add(-pricing.RenewalWindow())
		assert.False(t, rec.IsRenewable(windowStart.Add(-time.Second)))
		assert.True(t, rec.IsRenewable(windowStart))
	})

	t.Run("renewable has no upper bound", func(t *testing.T) {
		assert.True(t, rec.IsRenewable(rec.ExpiresAt.Add(365*24*time.Hour)))
	})
}

func TestRecord_ApplyRenewal(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	rec := NewRecord(domain.CID(1234), 1, now)
	prevExpiry := rec.ExpiresAt

	rec.ApplyRenewal(2)

	// Extension is additive from the previous expiration, not now + validity.
	assert.True(t, rec.ExpiresAt.Equal(prevExpiry.Add(pricing.ValidityDuration())))
	assert.Equal(t, uint64(2), rec.Version)
}

func TestRecord_ApplyTarget(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	rec := NewRecord(domain.CID(1234), 1, now)

	target := domain.Address("0xalice")
	rec.ApplyTarget(2, &target)
	require.NotNil(t, rec.Target)
	assert.Equal(t, target, *rec.Target)
	assert.Equal(t, uint64(2), rec.Version)

	rec.ApplyTarget(3, nil)
	assert.Nil(t, rec.Target)
	assert.Equal(t, uint64(3), rec.Version)
}

func TestRecord_Clone(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	rec := NewRecord(domain.CID(1234), 1, now)
	target := domain.Address("0xalice")
	rec.ApplyTarget(2, &target)

	clone := rec.Clone()
	*clone.Target = "0xmallory"
	clone.Version = 99

	assert.Equal(t, domain.Address("0xalice"), *rec.Target)
	assert.Equal(t, uint64(2), rec.Version)
}
