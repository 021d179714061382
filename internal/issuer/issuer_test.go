package issuer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cidreg/internal/registry/ports"
	"cidreg/pkg/domain"
	"cidreg/pkg/platform/sentinel"
)

const vault = domain.Address("issuer-vault")

func newLedger(t *testing.T) (*Ledger, ports.MintAuthority) {
	t.Helper()
	authority := ports.GrantMintAuthority()
	ledger, err := NewLedger(authority, vault)
	require.NoError(t, err)
	return ledger, authority
}

func TestNewLedger_RequiresAuthority(t *testing.T) {
	_, err := NewLedger(ports.MintAuthority{}, vault)
	require.Error(t, err)

	_, err = NewLedger(ports.GrantMintAuthority(), "")
	require.Error(t, err)
}

func TestLedger_MintAuthority(t *testing.T) {
	ctx := context.Background()
	ledger, authority := newLedger(t)

	id, err := ledger.EnsureCertificate(ctx, "1234.cid")
	require.NoError(t, err)

	t.Run("foreign authority is rejected", func(t *testing.T) {
		_, err := ledger.Mint(ctx, ports.GrantMintAuthority(), id)
		require.Error(t, err)
	})

	t.Run("zero authority is rejected", func(t *testing.T) {
		_, err := ledger.Mint(ctx, ports.MintAuthority{}, id)
		require.Error(t, err)
	})

	t.Run("granted authority mints to the vault", func(t *testing.T) {
		cert, err := ledger.Mint(ctx, authority, id)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), cert.Version)

		bal, err := ledger.BalanceOf(ctx, vault, cert)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), bal)
	})
}

func TestLedger_ReissueDisplacesStaleHolder(t *testing.T) {
	ctx := context.Background()
	ledger, authority := newLedger(t)
	alice := domain.Address("0xalice")
	bob := domain.Address("0xbob")

	id, err := ledger.EnsureCertificate(ctx, "1234.cid")
	require.NoError(t, err)

	// Alice registers: mint, re-issue with metadata, transfer to her.
	cert, err := ledger.Mint(ctx, authority, id)
	require.NoError(t, err)
	cert, err = ledger.SetMetadata(ctx, vault, cert, map[string]string{ports.MetaKeyKind: "cid"})
	require.NoError(t, err)
	require.NoError(t, ledger.Transfer(ctx, cert, vault, alice, 1))

	cur, err := ledger.HighestVersion(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), cur.Version)
	assert.Equal(t, "cid", cur.Metadata[ports.MetaKeyKind])

	aliceBal, err := ledger.BalanceOf(ctx, alice, cur)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), aliceBal)

	// Bob re-registers after expiry: the same flow bumps the version again.
	cert, err = ledger.Mint(ctx, authority, id)
	require.NoError(t, err)
	cert, err = ledger.SetMetadata(ctx, vault, cert, map[string]string{ports.MetaKeyExpiresAt: "later"})
	require.NoError(t, err)
	require.NoError(t, ledger.Transfer(ctx, cert, vault, bob, 1))

	cur, err = ledger.HighestVersion(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), cur.Version)

	// Alice still holds her v2 unit, but it is no longer the current
	// instance, so her balance of the highest version is zero.
	bobBal, err := ledger.BalanceOf(ctx, bob, cur)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), bobBal)

	aliceBal, err = ledger.BalanceOf(ctx, alice, cur)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), aliceBal)
}

func TestLedger_SetMetadata(t *testing.T) {
	ctx := context.Background()
	ledger, authority := newLedger(t)
	alice := domain.Address("0xalice")

	id, err := ledger.EnsureCertificate(ctx, "2000.cid")
	require.NoError(t, err)
	cert, err := ledger.Mint(ctx, authority, id)
	require.NoError(t, err)
	require.NoError(t, ledger.Transfer(ctx, cert, vault, alice, 1))

	t.Run("merges with existing metadata", func(t *testing.T) {
		cert2, err := ledger.SetMetadata(ctx, alice, cert, map[string]string{"a": "1"})
		require.NoError(t, err)
		cert3, err := ledger.SetMetadata(ctx, alice, cert2, map[string]string{"b": "2"})
		require.NoError(t, err)
		assert.Equal(t, "1", cert3.Metadata["a"])
		assert.Equal(t, "2", cert3.Metadata["b"])
		assert.Equal(t, uint64(3), cert3.Version)
	})

	t.Run("stale instance cannot be re-issued", func(t *testing.T) {
		_, err := ledger.SetMetadata(ctx, alice, cert, map[string]string{"c": "3"})
		require.ErrorIs(t, err, sentinel.ErrConflict)
	})

	t.Run("non-holder cannot re-issue", func(t *testing.T) {
		cur, err := ledger.HighestVersion(ctx, id)
		require.NoError(t, err)
		_, err = ledger.SetMetadata(ctx, domain.Address("0xmallory"), cur, map[string]string{"d": "4"})
		require.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}

func TestLedger_Transfer(t *testing.T) {
	ctx := context.Background()
	ledger, authority := newLedger(t)
	alice := domain.Address("0xalice")

	id, err := ledger.EnsureCertificate(ctx, "3000.cid")
	require.NoError(t, err)
	cert, err := ledger.Mint(ctx, authority, id)
	require.NoError(t, err)

	err = ledger.Transfer(ctx, cert, alice, vault, 1)
	require.ErrorIs(t, err, sentinel.ErrInsufficientFunds)

	require.NoError(t, ledger.Transfer(ctx, cert, vault, alice, 1))
	bal, err := ledger.BalanceOf(ctx, alice, cert)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), bal)
}
