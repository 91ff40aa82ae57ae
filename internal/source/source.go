// Package source delivers newly arriving form submissions.
package source

import (
	"sync"

	"github.com/cristianoliveira/form-intray/internal/submission"
)

// Handler receives one arriving submission.
type Handler func(submission.Submission)

// Source is a push feed of arriving submissions. There is no unsubscribe, so
// consumers register once for their lifetime.
type Source interface {
	Subscribe(handler Handler)
}

// Feed is an in-process Source. Publish delivers to every handler synchronously,
// in subscription order, so events are observed in publish order.
type Feed struct {
	mu       sync.Mutex
	handlers []Handler
}

var _ Source = (*Feed)(nil)

// NewFeed creates a feed without subscribers.
func NewFeed() *Feed {
	return &Feed{}
}

// Subscribe registers handler. Nil handlers are ignored.
func (f *Feed) Subscribe(handler Handler) {
	if handler == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers = append(f.handlers, handler)
}

// Publish delivers s to every subscriber. Concurrent publishes are serialized.
func (f *Feed) Publish(s submission.Submission) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, h := range f.handlers {
		h(s.Clone())
	}
}

// Subscribers returns the number of registered handlers.
func (f *Feed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.handlers)
}
