// Package collection holds the client-side view of the repositories list.
//
// # Transitions
//
// Three pure functions derive a new Collection from the previous one plus a
// server response:
//
//	Initialize(records)          replace everything, keep server order
//	Append(current, record)      add one created record at the end
//	MergeUpdate(current, record) replace the record with the same id in place
//
// None of them mutate their input. A Collection never contains two records
// with the same id: Append refuses duplicates with ErrDuplicateID and
// MergeUpdate replaces rather than inserts. A MergeUpdate whose id is not
// present returns the input unchanged with ok=false.
//
// # Store
//
// Store wraps the current Snapshot and applies the transitions one at a
// time. Each successful transition publishes a new Snapshot with a higher
// Version to every subscriber:
//
//	changes, cancel := store.Subscribe()
//	defer cancel()
//	for snap := range changes {
//		render(snap.Items)
//	}
//
// Subscriber channels are coalescing (capacity one, newest wins), so a
// renderer that falls behind only ever sees the latest collection.
//
// Concurrent completions of remote calls are safe: transitions are
// serialized by the store, and two responses for the same id resolve as
// last-applied-wins.
package collection
