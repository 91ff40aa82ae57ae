// Package storage provides the persistence store for liked submissions.
package storage

import (
	"context"
	"errors"

	"github.com/cristianoliveira/form-intray/internal/submission"
)

// ErrInvalidSubmissionID indicates an empty submission ID.
var ErrInvalidSubmissionID = errors.New("invalid submission ID")

// Store is the durable liked-submission collection.
//
// There is no targeted delete: callers remove an entry by reading the whole
// collection with FetchAll and writing the remainder back with ReplaceAll.
type Store interface {
	// FetchAll returns the full collection in insertion order.
	FetchAll(ctx context.Context) ([]submission.Submission, error)
	// Save persists one submission, replacing a stored entry with the same ID.
	Save(ctx context.Context, s submission.Submission) error
	// ReplaceAll overwrites the full collection.
	ReplaceAll(ctx context.Context, items []submission.Submission) error
}

// Closer is implemented by stores holding resources.
type Closer interface {
	Close() error
}

// Close closes s when it holds resources.
func Close(s Store) error {
	if c, ok := s.(Closer); ok {
		return c.Close()
	}
	return nil
}

// Merge returns items with s stored: replaced in place when its ID exists, appended otherwise.
func Merge(items []submission.Submission, s submission.Submission) []submission.Submission {
	out := submission.CloneAll(items)
	if i := submission.IndexOf(out, s.ID); i >= 0 {
		out[i] = s.Clone()
		return out
	}
	return append(out, s.Clone())
}

// ValidateID rejects empty submission IDs.
func ValidateID(id string) error {
	if id == "" {
		return ErrInvalidSubmissionID
	}
	return nil
}
