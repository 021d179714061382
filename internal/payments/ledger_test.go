package payments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cidreg/pkg/domain"
	"cidreg/pkg/platform/sentinel"
)

func TestLedger_Transfer(t *testing.T) {
	ctx := context.Background()
	alice := domain.Address("0xalice")
	treasury := domain.Address("0xtreasury")

	ledger := NewLedger()
	ledger.Deposit(ctx, alice, 100)

	t.Run("insufficient funds", func(t *testing.T) {
		err := ledger.Transfer(ctx, alice, treasury, 101)
		require.ErrorIs(t, err, sentinel.ErrInsufficientFunds)
		assert.Equal(t, uint64(100), ledger.Balance(ctx, alice))
		assert.Equal(t, uint64(0), ledger.Balance(ctx, treasury))
	})

	t.Run("successful transfer", func(t *testing.T) {
		require.NoError(t, ledger.Transfer(ctx, alice, treasury, 60))
		assert.Equal(t, uint64(40), ledger.Balance(ctx, alice))
		assert.Equal(t, uint64(60), ledger.Balance(ctx, treasury))
	})

	t.Run("zero amount is a no-op", func(t *testing.T) {
		require.NoError(t, ledger.Transfer(ctx, domain.Address("0xempty"), treasury, 0))
	})
}
