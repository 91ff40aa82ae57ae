// Package controller decides, for every arriving submission, whether it is pending,
// liked or dismissed, and keeps the liked list in step with the persistence store.
package controller

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cristianoliveira/form-intray/internal/errors"
	"github.com/cristianoliveira/form-intray/internal/logging"
	"github.com/cristianoliveira/form-intray/internal/source"
	"github.com/cristianoliveira/form-intray/internal/storage"
	"github.com/cristianoliveira/form-intray/internal/submission"
)

// Controller is the sole owner of the pending queue, the dismissed set and the
// liked list.
//
// mu guards the in-memory state and is never held across store calls. writeMu
// serializes every store interaction that can change the collection, because
// DeleteLiked rewrites the whole collection.
type Controller struct {
	store                storage.Store
	logger               logging.Logger
	reporter             errors.ErrorHandler
	likedBlocksAdmission bool

	writeMu sync.Mutex

	mu          sync.Mutex
	pending     []submission.Submission
	dismissed   map[string]struct{}
	liked       []submission.Submission
	loading     bool
	ready       bool
	loadErr     error
	initialized bool
	attached    bool

	changes chan struct{}
}

// New creates a controller over store.
func New(store storage.Store, opts ...Option) *Controller {
	if store == nil {
		panic("controller.New: store dependency cannot be nil")
	}
	c := &Controller{
		store:                store,
		logger:               logging.Noop(),
		reporter:             errors.Discard{},
		likedBlocksAdmission: true,
		dismissed:            make(map[string]struct{}),
		liked:                []submission.Submission{},
		loading:              true,
		changes:              make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "controller")
	return c
}

// Initialize loads the liked collection. It runs once per controller; later calls
// return ErrAlreadyInitialized. A failure is kept as LoadErr, reported once and
// not retried.
func (c *Controller) Initialize(ctx context.Context) error {
	c.mu.Lock()
	if c.initialized {
		c.mu.Unlock()
		return ErrAlreadyInitialized
	}
	c.initialized = true
	c.mu.Unlock()

	c.writeMu.Lock()
	items, err := c.store.FetchAll(ctx)
	c.writeMu.Unlock()

	c.mu.Lock()
	c.loading = false
	if err != nil {
		c.loadErr = fmt.Errorf("%w: %w", ErrLoadFailure, err)
		c.mu.Unlock()
		c.notify()
		c.logger.Error("load liked submissions failed", "error", err)
		c.reporter.Error(fmt.Sprintf("Error loading liked submissions: %v", err))
		return c.loadErr
	}
	c.liked = submission.CloneAll(items)
	if c.liked == nil {
		c.liked = []submission.Submission{}
	}
	c.ready = true
	if c.likedBlocksAdmission {
		c.pending = c.withoutLiked(c.pending)
	}
	count := len(c.liked)
	c.mu.Unlock()

	c.notify()
	c.logger.Info("liked submissions loaded", "count", count)
	return nil
}

// Attach subscribes the controller to src. Only the first call subscribes; the
// handler reads the live dismissed set on every event.
func (c *Controller) Attach(src source.Source) error {
	c.mu.Lock()
	if c.attached {
		c.mu.Unlock()
		return ErrAlreadyAttached
	}
	c.attached = true
	c.mu.Unlock()

	src.Subscribe(func(s submission.Submission) {
		c.OnSubmissionArrived(s)
	})
	c.logger.Debug("attached to submission source")
	return nil
}

// OnSubmissionArrived applies the admission filter and queues s when it passes.
// Redelivery of a still-pending ID queues a second entry.
func (c *Controller) OnSubmissionArrived(s submission.Submission) Admission {
	if s.ID == "" {
		c.logger.Warn("submission without id ignored")
		return RejectedInvalid
	}

	c.mu.Lock()
	admission := c.admit(s.ID)
	if admission == Admitted {
		c.pending = append(c.pending, s.Clone())
	}
	c.mu.Unlock()

	c.logger.Debug("submission arrived", "submission_id", s.ID, "admission", admission.String())
	if admission == Admitted {
		c.notify()
	}
	return admission
}

// admit must be called with mu held.
func (c *Controller) admit(id string) Admission {
	if _, ok := c.dismissed[id]; ok {
		return RejectedDismissed
	}
	if c.likedBlocksAdmission && submission.IndexOf(c.liked, id) >= 0 {
		return RejectedLiked
	}
	return Admitted
}

// Like likes the pending submission with id.
func (c *Controller) Like(ctx context.Context, id string) error {
	c.mu.Lock()
	i := submission.IndexOf(c.pending, id)
	var s submission.Submission
	if i >= 0 {
		s = c.pending[i].Clone()
	}
	c.mu.Unlock()
	if i < 0 {
		return fmt.Errorf("like %s: %w", id, ErrNotPending)
	}
	return c.LikeSubmission(ctx, s)
}

// LikeSubmission persists s as liked. Only after the store accepts it is s appended
// to the liked list and removed from the pending queue. On failure nothing changes
// and the error wraps ErrSaveFailure.
func (c *Controller) LikeSubmission(ctx context.Context, s submission.Submission) error {
	if s.ID == "" {
		return ErrInvalidSubmission
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.mu.Lock()
	alreadyLiked := submission.IndexOf(c.liked, s.ID) >= 0
	if alreadyLiked {
		c.pending = submission.Without(c.pending, s.ID)
	}
	c.mu.Unlock()
	if alreadyLiked {
		c.logger.Debug("submission already liked", "submission_id", s.ID)
		c.notify()
		return nil
	}

	record := s.AsLiked()
	if err := c.store.Save(ctx, record); err != nil {
		c.logger.Error("save liked submission failed", "submission_id", s.ID, "error", err)
		c.reporter.Error(fmt.Sprintf("Failed to save: %v", err))
		return fmt.Errorf("%w: %w", ErrSaveFailure, err)
	}

	c.mu.Lock()
	c.liked = append(c.liked, record)
	c.pending = submission.Without(c.pending, s.ID)
	c.mu.Unlock()

	c.notify()
	c.logger.Info("submission liked", "submission_id", s.ID)
	return nil
}

// DismissToast drops every pending entry with id and remembers id as dismissed.
// It never fails and does no I/O.
func (c *Controller) DismissToast(id string) {
	c.mu.Lock()
	c.pending = submission.Without(c.pending, id)
	c.dismissed[id] = struct{}{}
	c.mu.Unlock()

	c.notify()
	c.logger.Debug("submission dismissed", "submission_id", id)
}

// DeleteLiked removes id from the liked list. The store has no targeted delete, so
// the full collection is fetched, filtered and written back. The liked list only
// changes after the rewrite succeeds.
func (c *Controller) DeleteLiked(ctx context.Context, id string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.mu.Lock()
	known := submission.IndexOf(c.liked, id) >= 0
	c.mu.Unlock()
	if !known {
		return fmt.Errorf("delete %s: %w", id, ErrNotLiked)
	}

	if err := c.rewriteWithout(ctx, id); err != nil {
		c.logger.Error("delete liked submission failed", "submission_id", id, "error", err)
		c.reporter.Error(fmt.Sprintf("Failed to delete: %v", err))
		return fmt.Errorf("%w: %w", ErrDeleteFailure, err)
	}

	c.mu.Lock()
	if i := submission.IndexOf(c.liked, id); i >= 0 {
		c.liked = append(c.liked[:i:i], c.liked[i+1:]...)
	}
	c.mu.Unlock()

	c.notify()
	c.logger.Info("liked submission deleted", "submission_id", id)
	return nil
}

func (c *Controller) rewriteWithout(ctx context.Context, id string) error {
	items, err := c.store.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	if err := c.store.ReplaceAll(ctx, submission.Without(items, id)); err != nil {
		return fmt.Errorf("rewrite: %w", err)
	}
	return nil
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	dismissed := make([]string, 0, len(c.dismissed))
	for id := range c.dismissed {
		dismissed = append(dismissed, id)
	}
	sort.Strings(dismissed)

	return State{
		Pending:   submission.CloneAll(c.pending),
		Liked:     submission.CloneAll(c.liked),
		Dismissed: dismissed,
		Loading:   c.loading,
		Ready:     c.ready,
		LoadErr:   c.loadErr,
	}
}

// IsDismissed reports whether id was dismissed.
func (c *Controller) IsDismissed(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.dismissed[id]
	return ok
}

// Changes signals state changes. Signals coalesce: a receiver woken once should
// read a fresh Snapshot.
func (c *Controller) Changes() <-chan struct{} {
	return c.changes
}

func (c *Controller) notify() {
	select {
	case c.changes <- struct{}{}:
	default:
	}
}

// withoutLiked must be called with mu held.
func (c *Controller) withoutLiked(items []submission.Submission) []submission.Submission {
	out := items[:0:0]
	for _, s := range items {
		if submission.IndexOf(c.liked, s.ID) < 0 {
			out = append(out, s)
		}
	}
	return out
}
