// Package adminconfig holds the admin-controlled registry parameters: the
// enabled flag, the base price, the treasury address, and the CID type label.
// The registry reads these through ports.ConfigStore; mutation happens only
// through the admin surface.
package adminconfig

import (
	"context"
	"sync"

	"cidreg/pkg/domain"
	dErrors "cidreg/pkg/domain-errors"
)

// Params seeds the store at construction.
type Params struct {
	Enabled      bool
	BasePrice    uint64
	Treasury     domain.Address
	CIDTypeLabel string
}

// Store is an in-memory parameter store. It satisfies ports.ConfigStore.
type Store struct {
	mu        sync.RWMutex
	enabled   bool
	basePrice uint64
	treasury  domain.Address
	label     string
}

func NewStore(params Params) (*Store, error) {
	if params.Treasury.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "treasury address is required")
	}
	if params.CIDTypeLabel == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "cid type label is required")
	}
	return &Store{
		enabled:   params.Enabled,
		basePrice: params.BasePrice,
		treasury:  params.Treasury,
		label:     params.CIDTypeLabel,
	}, nil
}

func (s *Store) Enabled(_ context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enabled, nil
}

func (s *Store) BasePrice(_ context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.basePrice, nil
}

func (s *Store) TreasuryAddress(_ context.Context) (domain.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.treasury, nil
}

func (s *Store) CIDTypeLabel(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.label, nil
}

// SetEnabled pauses or resumes registration and renewal. Address binding is
// unaffected by the flag.
func (s *Store) SetEnabled(_ context.Context, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = enabled
	return nil
}

// SetBasePrice updates the curve's base price.
func (s *Store) SetBasePrice(_ context.Context, basePrice uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.basePrice = basePrice
	return nil
}
