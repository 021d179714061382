package service

import (
	"sync"

	"cidreg/pkg/domain"
)

// cidLocks provides per-CID mutual exclusion around read-modify-write
// sequences. The original runtime serialized all calls; this service is
// invoked concurrently, so each mutating operation holds its CID's lock from
// first read to last write. The universe is 9,000 CIDs, so the lock map is
// never evicted.
type cidLocks struct {
	mu    sync.Mutex
	locks map[domain.CID]*sync.Mutex
}

func newCIDLocks() *cidLocks {
	return &cidLocks{locks: make(map[domain.CID]*sync.Mutex)}
}

// acquire locks the mutex for cid and returns the unlock function.
func (c *cidLocks) acquire(cid domain.CID) func() {
	c.mu.Lock()
	lock, exists := c.locks[cid]
	if !exists {
		lock = &sync.Mutex{}
		c.locks[cid] = lock
	}
	c.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
