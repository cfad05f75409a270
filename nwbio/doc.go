// Package nwbio persists an nwb container graph into a hierarchical
// storage backend.
//
// The pipeline renders the graph into a backend-independent builder
// tree (one type-dispatched render procedure set per container type,
// composed along the type's ancestor chain), resolves canonical storage
// paths for cross-references, computes epoch sample-range membership in
// a deferred pass, and commits the tree structure-first so that links,
// including forward references, can bind to live objects.
//
// A write is all-or-nothing from the caller's perspective: any failure
// aborts the operation and output already created by the backend must
// be treated as corrupt.
package nwbio
