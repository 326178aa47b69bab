package library

import "errors"

var (
	// ErrNotFound indicates the requested entity doesn't exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate indicates a unique constraint violation.
	ErrDuplicate = errors.New("duplicate entry")

	// ErrBlacklisted indicates the GUID was deleted by a user and must not
	// be recreated from the feed.
	ErrBlacklisted = errors.New("guid is blacklisted")

	// ErrInvalidTransition indicates a disallowed lifecycle state change.
	ErrInvalidTransition = errors.New("invalid status transition")
)
