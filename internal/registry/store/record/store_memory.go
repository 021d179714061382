// Package record provides RecordStore implementations.
package record

import (
	"context"
	"sync"

	"cidreg/internal/registry/models"
	"cidreg/pkg/domain"
	"cidreg/pkg/platform/sentinel"
)

// InMemoryStore keeps records in a process-local map. It is the default store
// and the one unit tests run against.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[domain.CID]*models.Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		records: make(map[domain.CID]*models.Record),
	}
}

func (s *InMemoryStore) Find(_ context.Context, cid domain.CID) (*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, exists := s.records[cid]
	if !exists {
		return nil, sentinel.ErrNotFound
	}
	return rec.Clone(), nil
}

func (s *InMemoryStore) Upsert(_ context.Context, rec *models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[rec.CID] = rec.Clone()
	return nil
}

func (s *InMemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}
