package genesis

import (
	"context"
	"sync"
	"time"

	"cidreg/pkg/platform/sentinel"
)

// InMemoryStore holds the activation marker in process memory.
type InMemoryStore struct {
	mu    sync.Mutex
	start time.Time
	set   bool
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Load(_ context.Context) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return time.Time{}, sentinel.ErrNotFound
	}
	return s.start, nil
}

func (s *InMemoryStore) Record(_ context.Context, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.set {
		return sentinel.ErrAlreadyActivated
	}
	s.start = at
	s.set = true
	return nil
}
