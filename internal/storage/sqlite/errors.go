package sqlite

import "errors"

var (
	// ErrInvalidSubmissionID indicates an empty submission ID.
	ErrInvalidSubmissionID = errors.New("invalid submission ID")
	// ErrEmptyPath indicates a missing database path.
	ErrEmptyPath = errors.New("db path cannot be empty")
)
