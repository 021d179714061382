// Package payments implements the in-process payment collaborator: a simple
// account ledger in the system's smallest currency denomination.
package payments

import (
	"context"
	"fmt"
	"sync"

	"cidreg/pkg/domain"
	"cidreg/pkg/platform/sentinel"
)

// Ledger tracks account balances. It satisfies ports.Payments.
type Ledger struct {
	mu       sync.Mutex
	balances map[domain.Address]uint64
}

func NewLedger() *Ledger {
	return &Ledger{balances: make(map[domain.Address]uint64)}
}

// Deposit credits an account. Used by account bootstrapping and tests.
func (l *Ledger) Deposit(_ context.Context, addr domain.Address, amount uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[addr] += amount
}

// Balance returns the current balance of an account.
func (l *Ledger) Balance(_ context.Context, addr domain.Address) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[addr]
}

// Transfer moves amount from payer to payee atomically. Zero-amount transfers
// succeed without touching the ledger.
func (l *Ledger) Transfer(_ context.Context, payer, payee domain.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.balances[payer] < amount {
		return fmt.Errorf("transfer %d from %q: %w", amount, payer, sentinel.ErrInsufficientFunds)
	}
	l.balances[payer] -= amount
	l.balances[payee] += amount
	return nil
}
