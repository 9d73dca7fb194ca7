// Package reposync sequences the three user actions against the
// repositories API and applies each response to the collection store.
//
//	LoadAll        GET  /repositories           -> store.Initialize
//	AddRepository  POST /repositories           -> store.Append
//	LikeRepository POST /repositories/{id}/like -> store.MergeUpdate
//
// Every entry point performs exactly one request; there is no retry,
// batching or debouncing, and entry points may be invoked while others are
// in flight. A failed request returns an error and leaves the collection
// untouched. A response that arrives is always applied, even if the caller
// has lost interest in it; guarding a discarded view is the renderer's job.
//
// Two likes racing on the same id resolve as last-response-wins: whichever
// response reaches the store last sets the displayed count.
package reposync
