package storage

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/cristianoliveira/form-intray/internal/submission"
)

// ErrSimulatedFailure is returned by Flaky when a call is chosen to fail.
var ErrSimulatedFailure = errors.New("simulated store failure")

// FlakyOptions configures simulated latency and failures.
type FlakyOptions struct {
	// FailureRate is the percentage (0-100) of calls that fail.
	FailureRate int
	// Latency delays every call.
	Latency time.Duration
	// Roll returns a number in [0, 100). Defaults to math/rand.
	Roll func() int
}

// Flaky wraps a Store with artificial latency and random failures, mimicking a
// remote backend.
type Flaky struct {
	next Store
	opts FlakyOptions
}

var _ Store = (*Flaky)(nil)

// NewFlaky wraps next.
func NewFlaky(next Store, opts FlakyOptions) *Flaky {
	if opts.Roll == nil {
		opts.Roll = func() int { return rand.IntN(100) }
	}
	return &Flaky{next: next, opts: opts}
}

// Unwrap returns the wrapped store.
func (f *Flaky) Unwrap() Store { return f.next }

func (f *Flaky) FetchAll(ctx context.Context) ([]submission.Submission, error) {
	if err := f.simulate(ctx, "fetch"); err != nil {
		return nil, err
	}
	return f.next.FetchAll(ctx)
}

func (f *Flaky) Save(ctx context.Context, s submission.Submission) error {
	if err := f.simulate(ctx, "save"); err != nil {
		return err
	}
	return f.next.Save(ctx, s)
}

func (f *Flaky) ReplaceAll(ctx context.Context, items []submission.Submission) error {
	if err := f.simulate(ctx, "replace"); err != nil {
		return err
	}
	return f.next.ReplaceAll(ctx, items)
}

// Close closes the wrapped store.
func (f *Flaky) Close() error {
	return Close(f.next)
}

func (f *Flaky) simulate(ctx context.Context, op string) error {
	if f.opts.Latency > 0 {
		timer := time.NewTimer(f.opts.Latency)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	if f.opts.FailureRate > 0 && f.opts.Roll() < f.opts.FailureRate {
		return fmt.Errorf("%s: %w", op, ErrSimulatedFailure)
	}
	return nil
}
