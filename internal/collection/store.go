package collection

import (
	"sync"
	"time"

	"github.com/five82/repolist/internal/api"
)

// Snapshot is one published state of the collection. Version increases by
// one with every published transition, so renderers can detect a new
// collection reference by comparing versions.
type Snapshot struct {
	Items     Collection
	Version   uint64
	Loaded    bool // true once a load-all response has been applied
	UpdatedAt time.Time
}

// Store holds the current snapshot and fans new ones out to subscribers.
// Transitions are serialized; the snapshots themselves are never mutated.
// The zero value is an empty, ready-to-use store.
type Store struct {
	mu       sync.Mutex
	snapshot Snapshot
	subs     map[int]chan Snapshot
	nextSub  int
	now      func() time.Time
}

// Snapshot returns the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// Initialize replaces the collection with records and publishes it.
func (s *Store) Initialize(records []api.Repository) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Loaded = true
	return s.publishLocked(Initialize(records))
}

// Append adds record at the end and publishes the result. A duplicate id
// leaves the store untouched and publishes nothing.
func (s *Store) Append(record api.Repository) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := Append(s.snapshot.Items, record)
	if err != nil {
		return s.snapshot, err
	}
	return s.publishLocked(next), nil
}

// MergeUpdate replaces the record with record.ID and publishes the result.
// When no record matches, nothing is published and ok is false.
func (s *Store) MergeUpdate(record api.Repository) (snap Snapshot, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := MergeUpdate(s.snapshot.Items, record)
	if !ok {
		return s.snapshot, false
	}
	return s.publishLocked(next), true
}

// Subscribe registers for snapshot changes. The channel holds at most one
// pending snapshot: a slow reader skips intermediate versions and always
// receives the latest one. Call cancel to unsubscribe; it closes the channel.
func (s *Store) Subscribe() (changes <-chan Snapshot, cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subs == nil {
		s.subs = make(map[int]chan Snapshot)
	}
	id := s.nextSub
	s.nextSub++
	ch := make(chan Snapshot, 1)
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}

func (s *Store) publishLocked(items Collection) Snapshot {
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	s.snapshot.Items = items
	s.snapshot.Version++
	s.snapshot.UpdatedAt = now()

	snap := s.snapshot
	for _, ch := range s.subs {
		// Only publishers send, and they hold mu, so after the drain the
		// buffered send cannot block.
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
	return snap
}
