package controller

import "errors"

var (
	// ErrLoadFailure wraps the cause of a failed initial fetch.
	ErrLoadFailure = errors.New("failed to load liked submissions")
	// ErrSaveFailure wraps the cause of a failed like.
	ErrSaveFailure = errors.New("failed to save")
	// ErrDeleteFailure wraps the cause of a failed delete.
	ErrDeleteFailure = errors.New("failed to delete")
	// ErrNotLiked is returned when deleting an ID absent from the liked list.
	ErrNotLiked = errors.New("submission is not liked")
	// ErrNotPending is returned when liking an ID absent from the pending queue.
	ErrNotPending = errors.New("submission is not pending")
	// ErrInvalidSubmission is returned for submissions without an ID.
	ErrInvalidSubmission = errors.New("submission has no ID")
	// ErrAlreadyInitialized is returned by a second Initialize call.
	ErrAlreadyInitialized = errors.New("controller already initialized")
	// ErrAlreadyAttached is returned by a second Attach call.
	ErrAlreadyAttached = errors.New("controller already attached to a source")
)
