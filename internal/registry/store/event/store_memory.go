// Package event provides EventStore implementations for the append-only
// lifecycle event log.
package event

import (
	"context"
	"sync"

	"cidreg/internal/registry/models"
	"cidreg/pkg/domain"
)

// InMemoryStore keeps the event log in process memory. Sequence numbers are
// per event kind and start at 1.
type InMemoryStore struct {
	mu            sync.RWMutex
	registrations []models.RegistrationEvent
	addressChange []models.AddressChangeEvent
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) AppendRegistration(_ context.Context, ev models.RegistrationEvent) (models.RegistrationEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev.Seq = uint64(len(s.registrations)) + 1
	s.registrations = append(s.registrations, ev)
	return ev, nil
}

func (s *InMemoryStore) AppendAddressChange(_ context.Context, ev models.AddressChangeEvent) (models.AddressChangeEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev.Seq = uint64(len(s.addressChange)) + 1
	s.addressChange = append(s.addressChange, ev)
	return ev, nil
}

func (s *InMemoryStore) RegistrationCount(_ context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return uint64(len(s.registrations)), nil
}

func (s *InMemoryStore) AddressChangeCount(_ context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return uint64(len(s.addressChange)), nil
}

func (s *InMemoryStore) RegistrationsByCID(_ context.Context, cid domain.CID) ([]models.RegistrationEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.RegistrationEvent
	for _, ev := range s.registrations {
		if ev.CID == cid {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (s *InMemoryStore) AddressChangesByCID(_ context.Context, cid domain.CID) ([]models.AddressChangeEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.AddressChangeEvent
	for _, ev := range s.addressChange {
		if ev.CID == cid {
			out = append(out, ev)
		}
	}
	return out, nil
}
