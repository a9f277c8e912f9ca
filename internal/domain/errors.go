package domain

import "errors"

var (
	// ErrInvalidArgument marks malformed caller input such as a non-positive page size
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDataAccess marks a failed query or connection; the driver error stays in the chain
	ErrDataAccess = errors.New("data access failure")
)
