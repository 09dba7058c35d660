package sequence

import (
	"math"
	"sync"
)

// Tracker hands out monotonic request numbers per target and reports whether a
// resolved request is still the newest one to have been committed for it.
// Responses that resolve after a newer request was already applied are stale.
type Tracker struct {
	mu        sync.Mutex
	issued    map[string]uint64
	committed map[string]uint64
}

func NewTracker() *Tracker {
	return &Tracker{issued: map[string]uint64{}, committed: map[string]uint64{}}
}

// Next reserves the next request number for target.
func (t *Tracker) Next(target string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.issued[target]++
	return t.issued[target]
}

// Commit records n as applied for target. It returns false, leaving state
// untouched, when a request newer than n has already been committed.
func (t *Tracker) Commit(target string, n uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n <= t.committed[target] {
		return false
	}
	t.committed[target] = n
	return true
}

// Retire closes target for good: every request issued for it, before or
// after this call, is stale from now on.
func (t *Tracker) Retire(target string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.committed[target] = math.MaxUint64
}
