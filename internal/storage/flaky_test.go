package storage

import (
	"context"
	"testing"
	"time"

	"github.com/cristianoliveira/form-intray/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlakyFailsWhenRollBelowRate(t *testing.T) {
	ctx := context.Background()
	inner := memory.New()
	roll := 10
	f := NewFlaky(inner, FlakyOptions{FailureRate: 20, Roll: func() int { return roll }})

	err := f.Save(ctx, liked("1", "Ada"))
	assert.ErrorIs(t, err, ErrSimulatedFailure)

	items, err := inner.FetchAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	roll = 20
	require.NoError(t, f.Save(ctx, liked("1", "Ada")))
	items, err = f.FetchAll(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestFlakyLatencyHonorsContext(t *testing.T) {
	f := NewFlaky(memory.New(), FlakyOptions{Latency: time.Minute})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := f.FetchAll(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFlakyUnwrap(t *testing.T) {
	inner := memory.New()
	assert.Same(t, inner, NewFlaky(inner, FlakyOptions{}).Unwrap())
}
