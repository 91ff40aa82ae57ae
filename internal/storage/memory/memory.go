// Package memory provides an in-process liked-submission store backed by go-cache.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/cristianoliveira/form-intray/internal/submission"
	"github.com/patrickmn/go-cache"
)

// ErrInvalidSubmissionID indicates an empty submission ID.
var ErrInvalidSubmissionID = errors.New("invalid submission ID")

type entry struct {
	seq int64
	sub submission.Submission
}

// Store keeps liked submissions for the lifetime of the process.
type Store struct {
	mu    sync.Mutex
	cache *cache.Cache
	seq   int64
}

// New creates an empty store. Entries never expire.
func New() *Store {
	return &Store{cache: cache.New(cache.NoExpiration, 0)}
}

// FetchAll returns the stored submissions in insertion order.
func (s *Store) FetchAll(ctx context.Context) ([]submission.Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]entry, 0, s.cache.ItemCount())
	for _, item := range s.cache.Items() {
		if e, ok := item.Object.(entry); ok {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	items := make([]submission.Submission, len(entries))
	for i, e := range entries {
		items[i] = e.sub.Clone()
	}
	return items, nil
}

// Save stores sub, keeping the original position when the ID already exists.
func (s *Store) Save(ctx context.Context, sub submission.Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if sub.ID == "" {
		return ErrInvalidSubmissionID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	seq := s.nextSeq()
	if existing, ok := s.cache.Get(sub.ID); ok {
		if e, ok := existing.(entry); ok {
			seq = e.seq
		}
	}
	s.cache.Set(sub.ID, entry{seq: seq, sub: sub.Clone()}, cache.NoExpiration)
	return nil
}

// ReplaceAll drops every entry and stores items in order.
func (s *Store) ReplaceAll(ctx context.Context, items []submission.Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, sub := range items {
		if sub.ID == "" {
			return ErrInvalidSubmissionID
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Flush()
	for _, sub := range items {
		s.cache.Set(sub.ID, entry{seq: s.nextSeq(), sub: sub.Clone()}, cache.NoExpiration)
	}
	return nil
}

func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}
