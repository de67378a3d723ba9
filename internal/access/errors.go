package access

import "errors"

var (
	// ErrNotFound indicates that a user or department identifier does not resolve.
	ErrNotFound = errors.New("access: not found")
	// ErrInvalidArgument indicates a missing identifier or an unknown right.
	ErrInvalidArgument = errors.New("access: invalid argument")
)
