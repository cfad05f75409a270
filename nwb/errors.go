package nwb

import "errors"

// Common errors
var (
	ErrDuplicateName   = errors.New("duplicate name")
	ErrAlreadyOwned    = errors.New("container already has a parent")
	ErrNotFound        = errors.New("not found")
	ErrInvalidInterval = errors.New("stop time precedes start time")
	ErrUnknownType     = errors.New("unknown container type")
)
