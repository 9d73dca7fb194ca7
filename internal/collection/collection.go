package collection

import (
	"errors"
	"fmt"

	"github.com/five82/repolist/internal/api"
)

// ErrDuplicateID is returned by Append when the record's id is already
// present. The service is expected to issue fresh ids, so this is a caller
// contract violation rather than a recoverable condition.
var ErrDuplicateID = errors.New("duplicate repository id")

// Collection is an immutable, ordered set of repositories keyed by id.
// Every transition returns a new Collection; the receiver is never modified.
// The zero value is an empty collection.
type Collection struct {
	items []api.Repository
}

// Initialize builds a collection from a full load-all response, preserving
// the given order. The records are assumed to be deduplicated already.
func Initialize(records []api.Repository) Collection {
	return Collection{items: cloneRecords(records)}
}

// Append returns a new collection with record added at the end.
func Append(current Collection, record api.Repository) (Collection, error) {
	if current.Index(record.ID) >= 0 {
		return current, fmt.Errorf("append %q: %w", record.ID, ErrDuplicateID)
	}
	items := make([]api.Repository, len(current.items), len(current.items)+1)
	copy(items, current.items)
	items = append(items, record.Clone())
	return Collection{items: items}, nil
}

// MergeUpdate returns a new collection in which the element whose id matches
// record.ID is replaced by record. Order and all other elements are kept.
// When nothing matches, current is returned unchanged and ok is false.
func MergeUpdate(current Collection, record api.Repository) (next Collection, ok bool) {
	idx := current.Index(record.ID)
	if idx < 0 {
		return current, false
	}
	items := make([]api.Repository, len(current.items))
	copy(items, current.items)
	items[idx] = record.Clone()
	return Collection{items: items}, true
}

// Len returns the number of records.
func (c Collection) Len() int {
	return len(c.items)
}

// At returns a copy of the record at position i.
func (c Collection) At(i int) api.Repository {
	return c.items[i].Clone()
}

// Index returns the position of id, or -1.
func (c Collection) Index(id api.ID) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Get returns the record with the given id.
func (c Collection) Get(id api.ID) (api.Repository, bool) {
	idx := c.Index(id)
	if idx < 0 {
		return api.Repository{}, false
	}
	return c.items[idx].Clone(), true
}

// Items returns a copy of the records in order.
func (c Collection) Items() []api.Repository {
	return cloneRecords(c.items)
}

// TotalLikes sums the likes of every record.
func (c Collection) TotalLikes() int {
	total := 0
	for _, r := range c.items {
		total += r.Likes
	}
	return total
}

// Equal reports whether both collections hold equal records in the same order.
func (c Collection) Equal(other Collection) bool {
	if len(c.items) != len(other.items) {
		return false
	}
	for i := range c.items {
		if !c.items[i].Equal(other.items[i]) {
			return false
		}
	}
	return true
}

func cloneRecords(records []api.Repository) []api.Repository {
	if len(records) == 0 {
		return nil
	}
	dup := make([]api.Repository, len(records))
	for i, r := range records {
		dup[i] = r.Clone()
	}
	return dup
}
