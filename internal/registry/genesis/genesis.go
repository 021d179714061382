// Package genesis manages the registry's one-time activation timestamp, the
// origin for all elapsed-time pricing.
package genesis

import (
	"context"
	"errors"
	"sync"
	"time"

	dErrors "cidreg/pkg/domain-errors"
	"cidreg/pkg/platform/sentinel"
)

// Store persists the activation marker. Exactly one marker ever exists.
type Store interface {
	// Load returns the recorded activation time, or sentinel.ErrNotFound if
	// the registry has not been activated.
	Load(ctx context.Context) (time.Time, error)

	// Record persists the activation time. Returns
	// sentinel.ErrAlreadyActivated if a marker already exists.
	Record(ctx context.Context, at time.Time) error
}

// Clock exposes the activation time and elapsed time since activation.
// The marker is immutable once set, so the Clock caches it after the first
// successful read.
type Clock struct {
	store Store

	mu    sync.RWMutex
	start time.Time
	set   bool
}

func NewClock(store Store) *Clock {
	return &Clock{store: store}
}

// Activate records the activation timestamp. It can succeed at most once for
// the lifetime of the backing store; later calls fail with CodeConflict.
func (c *Clock) Activate(ctx context.Context, at time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.set {
		return dErrors.New(dErrors.CodeConflict, "registry already activated")
	}
	if err := c.store.Record(ctx, at); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyActivated) {
			// Another process won the race; adopt its marker.
			if start, loadErr := c.store.Load(ctx); loadErr == nil {
				c.start = start
				c.set = true
			}
			return dErrors.New(dErrors.CodeConflict, "registry already activated")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record activation")
	}
	c.start = at
	c.set = true
	return nil
}

// StartTime returns the activation timestamp.
func (c *Clock) StartTime(ctx context.Context) (time.Time, error) {
	c.mu.RLock()
	if c.set {
		start := c.start
		c.mu.RUnlock()
		return start, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.set {
		return c.start, nil
	}
	start, err := c.store.Load(ctx)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return time.Time{}, dErrors.New(dErrors.CodeNotFound, "registry not activated")
		}
		return time.Time{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load activation marker")
	}
	c.start = start
	c.set = true
	return start, nil
}

// Elapsed returns how much time has passed between activation and now.
func (c *Clock) Elapsed(ctx context.Context, now time.Time) (time.Duration, error) {
	start, err := c.StartTime(ctx)
	if err != nil {
		return 0, err
	}
	return now.Sub(start), nil
}
