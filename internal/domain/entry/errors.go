package entry

import "errors"

var (
	// ErrNotFound indicates no entry or draft matches the given id.
	ErrNotFound = errors.New("entry not found")
	// ErrInvalidType indicates an unknown entry type tag.
	ErrInvalidType = errors.New("invalid entry type")
)
