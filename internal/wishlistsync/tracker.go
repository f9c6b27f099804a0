package wishlistsync

import (
	"sort"
	"sync"
)

// Tracker is the set of item ids with a remove request in flight.
// It is the only guard against duplicate concurrent removals of one item;
// distinct ids are never throttled.
type Tracker struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{ids: make(map[string]struct{})}
}

// Admit adds id and returns true, or returns false if it is already pending.
func (t *Tracker) Admit(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.ids[id]; ok {
		return false
	}
	t.ids[id] = struct{}{}
	return true
}

// Release removes id. Releasing an unknown id is a no-op.
func (t *Tracker) Release(id string) {
	t.mu.Lock()
	delete(t.ids, id)
	t.mu.Unlock()
}

// Acquire admits id and returns the matching release. The release func may
// be called any number of times; only the first call has an effect.
func (t *Tracker) Acquire(id string) (release func(), ok bool) {
	if !t.Admit(id) {
		return func() {}, false
	}
	var once sync.Once
	return func() {
		once.Do(func() { t.Release(id) })
	}, true
}

// Has reports whether a removal of id is in flight.
func (t *Tracker) Has(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.ids[id]
	return ok
}

// IDs returns the pending ids in sorted order.
func (t *Tracker) IDs() []string {
	t.mu.Lock()
	ids := make([]string, 0, len(t.ids))
	for id := range t.ids {
		ids = append(ids, id)
	}
	t.mu.Unlock()

	sort.Strings(ids)
	return ids
}
