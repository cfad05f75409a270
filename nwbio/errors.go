package nwbio

import (
	"errors"

	"github.com/robert-malhotra/go-nwb/internal/builder"
	"github.com/robert-malhotra/go-nwb/internal/interval"
	"github.com/robert-malhotra/go-nwb/internal/spec"
)

// Common errors
var (
	ErrUnknownPlacement = errors.New("no placement rule for parent/child type pair")
	ErrOrphanContainer  = errors.New("container does not resolve to a file root")
	ErrMissingField     = errors.New("container is missing a declared field")
	ErrNoProcedure      = errors.New("no render procedure registered")
	ErrLinkTarget       = errors.New("hard link target was never created")
)

// Builder and spec failures surface through the write pipeline; the
// sentinels are re-exported so callers can test for them without
// importing internal packages.
var (
	ErrDuplicateName     = builder.ErrDuplicateName
	ErrMergeConflict     = builder.ErrMergeConflict
	ErrSpecNotFound      = spec.ErrSpecNotFound
	ErrSpecParentMissing = spec.ErrSpecParentMissing
	ErrNonpositiveRate   = interval.ErrNonpositiveRate
)
