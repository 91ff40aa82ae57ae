package controller

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/cristianoliveira/form-intray/internal/logging"
	"github.com/cristianoliveira/form-intray/internal/source"
	"github.com/cristianoliveira/form-intray/internal/submission"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(items []submission.Submission) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		out = append(out, s.ID)
	}
	return out
}

func newReady(t *testing.T, store *fakeStore, opts ...Option) (*Controller, *recordingReporter) {
	t.Helper()
	reporter := &recordingReporter{}
	c := New(store, append([]Option{WithReporter(reporter)}, opts...)...)
	require.NoError(t, c.Initialize(context.Background()))
	return c, reporter
}

func TestNewPanicsWithoutStore(t *testing.T) {
	assert.Panics(t, func() { New(nil) })
}

func TestScenarioLikePendingSubmission(t *testing.T) {
	store := newFakeStore()
	c, _ := newReady(t, store)
	feed := source.NewFeed()
	require.NoError(t, c.Attach(feed))

	feed.Publish(submission.New("1", submission.Data{"firstName": "A"}))
	require.Equal(t, []string{"1"}, ids(c.Snapshot().Pending))

	pending := c.Snapshot().Pending[0]
	require.NoError(t, c.LikeSubmission(context.Background(), pending))

	state := c.Snapshot()
	assert.Empty(t, state.Pending)
	require.Len(t, state.Liked, 1)
	assert.Equal(t, "1", state.Liked[0].ID)
	assert.True(t, state.Liked[0].Liked)
	assert.Equal(t, "A", state.Liked[0].Data.FirstName())

	persisted := store.stored()
	require.Len(t, persisted, 1)
	assert.True(t, persisted[0].Liked)
}

func TestScenarioDismissedNeverReadmitted(t *testing.T) {
	c, _ := newReady(t, newFakeStore())
	feed := source.NewFeed()
	require.NoError(t, c.Attach(feed))

	feed.Publish(submission.New("2", submission.Data{"firstName": "B"}))
	c.DismissToast("2")

	state := c.Snapshot()
	assert.Equal(t, []string{"2"}, state.Dismissed)
	assert.Empty(t, state.Pending)

	feed.Publish(submission.New("2", submission.Data{"firstName": "B"}))
	assert.Empty(t, c.Snapshot().Pending)
	assert.Equal(t, RejectedDismissed, c.OnSubmissionArrived(submission.New("2", nil)))
}

func TestScenarioFailedLikeLeavesStateUnchanged(t *testing.T) {
	store := newFakeStore(submission.New("9", nil).AsLiked())
	c, reporter := newReady(t, store)
	s := submission.New("3", submission.Data{"firstName": "C"})
	require.Equal(t, Admitted, c.OnSubmissionArrived(s))
	before := c.Snapshot()

	store.saveErr = errBoom
	err := c.LikeSubmission(context.Background(), s)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSaveFailure)
	assert.ErrorIs(t, err, errBoom)
	after := c.Snapshot()
	assert.Equal(t, before.Pending, after.Pending)
	assert.Equal(t, before.Liked, after.Liked)
	assert.Equal(t, 1, reporter.errorCount())
	assert.Contains(t, reporter.errors[0], "Failed to save")

	store.saveErr = nil
	require.NoError(t, c.LikeSubmission(context.Background(), s), "retry after failure")
	assert.Empty(t, c.Snapshot().Pending)
}

func TestScenarioDeleteRewritesCollection(t *testing.T) {
	store := newFakeStore(
		submission.New("9", submission.Data{"firstName": "Nine"}).AsLiked(),
		submission.New("10", nil).AsLiked(),
	)
	c, _ := newReady(t, store)
	require.Equal(t, []string{"9", "10"}, ids(c.Snapshot().Liked))

	require.NoError(t, c.DeleteLiked(context.Background(), "9"))

	assert.Equal(t, []string{"10"}, ids(c.Snapshot().Liked))
	assert.Equal(t, []string{"10"}, ids(store.stored()))
	assert.Equal(t, 1, store.replaceCalls)
}

func TestInitialize(t *testing.T) {
	t.Run("success raises ready", func(t *testing.T) {
		c := New(newFakeStore(submission.New("1", nil).AsLiked()))
		require.True(t, c.Snapshot().Loading)

		require.NoError(t, c.Initialize(context.Background()))

		state := c.Snapshot()
		assert.False(t, state.Loading)
		assert.True(t, state.Ready)
		assert.NoError(t, state.LoadErr)
		assert.Equal(t, []string{"1"}, ids(state.Liked))
	})

	t.Run("failure is recorded and reported once", func(t *testing.T) {
		store := newFakeStore()
		store.fetchErr = errBoom
		reporter := &recordingReporter{}
		c := New(store, WithReporter(reporter))

		err := c.Initialize(context.Background())

		require.ErrorIs(t, err, ErrLoadFailure)
		state := c.Snapshot()
		assert.False(t, state.Loading)
		assert.False(t, state.Ready)
		assert.ErrorIs(t, state.LoadErr, errBoom)
		assert.Empty(t, state.Liked)
		assert.Equal(t, 1, reporter.errorCount())
		assert.Contains(t, reporter.errors[0], "Error loading liked submissions")

		assert.ErrorIs(t, c.Initialize(context.Background()), ErrAlreadyInitialized)
		assert.Equal(t, 1, store.fetchCalls, "no automatic retry")
		assert.Equal(t, 1, reporter.errorCount())
	})

	t.Run("runs once", func(t *testing.T) {
		store := newFakeStore()
		c := New(store)
		require.NoError(t, c.Initialize(context.Background()))
		assert.ErrorIs(t, c.Initialize(context.Background()), ErrAlreadyInitialized)
		assert.Equal(t, 1, store.fetchCalls)
	})

	t.Run("drops pending entries already liked", func(t *testing.T) {
		c := New(newFakeStore(submission.New("1", nil).AsLiked()))
		c.OnSubmissionArrived(submission.New("1", nil))
		c.OnSubmissionArrived(submission.New("2", nil))

		require.NoError(t, c.Initialize(context.Background()))

		assert.Equal(t, []string{"2"}, ids(c.Snapshot().Pending))
	})
}

func TestAttachSubscribesOnce(t *testing.T) {
	c := New(newFakeStore())
	feed := source.NewFeed()

	require.NoError(t, c.Attach(feed))
	assert.ErrorIs(t, c.Attach(feed), ErrAlreadyAttached)
	assert.Equal(t, 1, feed.Subscribers())

	feed.Publish(submission.New("1", nil))
	assert.Equal(t, []string{"1"}, ids(c.Snapshot().Pending))
}

func TestAttachedHandlerSeesLaterDismissals(t *testing.T) {
	c := New(newFakeStore())
	feed := source.NewFeed()
	require.NoError(t, c.Attach(feed))

	c.DismissToast("7")
	feed.Publish(submission.New("7", nil))
	feed.Publish(submission.New("8", nil))

	assert.Equal(t, []string{"8"}, ids(c.Snapshot().Pending))
}

func TestOnSubmissionArrived(t *testing.T) {
	tests := []struct {
		name     string
		opts     []Option
		setup    func(c *Controller)
		arrival  submission.Submission
		want     Admission
		wantPend []string
	}{
		{
			name:     "new id is admitted",
			arrival:  submission.New("1", nil),
			want:     Admitted,
			wantPend: []string{"1"},
		},
		{
			name:     "redelivery before resolution duplicates",
			setup:    func(c *Controller) { c.OnSubmissionArrived(submission.New("1", nil)) },
			arrival:  submission.New("1", nil),
			want:     Admitted,
			wantPend: []string{"1", "1"},
		},
		{
			name:     "dismissed id is ignored",
			setup:    func(c *Controller) { c.DismissToast("1") },
			arrival:  submission.New("1", nil),
			want:     RejectedDismissed,
			wantPend: []string{},
		},
		{
			name: "liked id is ignored",
			setup: func(c *Controller) {
				_ = c.LikeSubmission(context.Background(), submission.New("1", nil))
			},
			arrival:  submission.New("1", nil),
			want:     RejectedLiked,
			wantPend: []string{},
		},
		{
			name: "liked id is admitted when blocking is off",
			opts: []Option{WithLikedBlocksAdmission(false)},
			setup: func(c *Controller) {
				_ = c.LikeSubmission(context.Background(), submission.New("1", nil))
			},
			arrival:  submission.New("1", nil),
			want:     Admitted,
			wantPend: []string{"1"},
		},
		{
			name:     "empty id is rejected",
			arrival:  submission.New("", nil),
			want:     RejectedInvalid,
			wantPend: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newReady(t, newFakeStore(), tt.opts...)
			if tt.setup != nil {
				tt.setup(c)
			}

			got := c.OnSubmissionArrived(tt.arrival)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantPend, ids(c.Snapshot().Pending))
		})
	}
}

func TestLikeRemovesEveryPendingDuplicate(t *testing.T) {
	c, _ := newReady(t, newFakeStore())
	c.OnSubmissionArrived(submission.New("1", nil))
	c.OnSubmissionArrived(submission.New("2", nil))
	c.OnSubmissionArrived(submission.New("1", nil))

	require.NoError(t, c.Like(context.Background(), "1"))

	state := c.Snapshot()
	assert.Equal(t, []string{"2"}, ids(state.Pending))
	assert.Equal(t, []string{"1"}, ids(state.Liked))
}

func TestLikeByID(t *testing.T) {
	c, _ := newReady(t, newFakeStore())

	err := c.Like(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrNotPending)
}

func TestLikeSubmissionValidation(t *testing.T) {
	store := newFakeStore()
	c, _ := newReady(t, store)

	err := c.LikeSubmission(context.Background(), submission.New("", nil))

	assert.ErrorIs(t, err, ErrInvalidSubmission)
	assert.Zero(t, store.saveCalls)
}

func TestLikeAlreadyLikedDoesNotSaveAgain(t *testing.T) {
	store := newFakeStore(submission.New("1", nil).AsLiked())
	c, _ := newReady(t, store, WithLikedBlocksAdmission(false))
	c.OnSubmissionArrived(submission.New("1", nil))

	require.NoError(t, c.LikeSubmission(context.Background(), submission.New("1", nil)))

	state := c.Snapshot()
	assert.Empty(t, state.Pending)
	assert.Equal(t, []string{"1"}, ids(state.Liked))
	assert.Zero(t, store.saveCalls)
}

func TestDismissIsIdempotent(t *testing.T) {
	once, _ := newReady(t, newFakeStore())
	twice, _ := newReady(t, newFakeStore())
	for _, c := range []*Controller{once, twice} {
		c.OnSubmissionArrived(submission.New("1", nil))
		c.OnSubmissionArrived(submission.New("2", nil))
	}

	once.DismissToast("1")
	twice.DismissToast("1")
	twice.DismissToast("1")

	assert.Equal(t, once.Snapshot(), twice.Snapshot())
	assert.True(t, twice.IsDismissed("1"))
	assert.False(t, twice.IsDismissed("2"))
}

func TestDismissUnknownID(t *testing.T) {
	c, _ := newReady(t, newFakeStore())
	c.OnSubmissionArrived(submission.New("1", nil))

	c.DismissToast("absent")

	state := c.Snapshot()
	assert.Equal(t, []string{"1"}, ids(state.Pending))
	assert.Equal(t, []string{"absent"}, state.Dismissed)
}

func TestDeleteLiked(t *testing.T) {
	t.Run("unknown id does no io", func(t *testing.T) {
		store := newFakeStore(submission.New("1", nil).AsLiked())
		c, _ := newReady(t, store)

		err := c.DeleteLiked(context.Background(), "2")

		assert.ErrorIs(t, err, ErrNotLiked)
		assert.Equal(t, 1, store.fetchCalls)
		assert.Zero(t, store.replaceCalls)
	})

	t.Run("fetch failure leaves state unchanged", func(t *testing.T) {
		store := newFakeStore(submission.New("1", nil).AsLiked())
		c, reporter := newReady(t, store)
		store.fetchErr = errBoom

		err := c.DeleteLiked(context.Background(), "1")

		assert.ErrorIs(t, err, ErrDeleteFailure)
		assert.ErrorIs(t, err, errBoom)
		assert.Equal(t, []string{"1"}, ids(c.Snapshot().Liked))
		assert.Zero(t, store.replaceCalls)
		assert.Equal(t, 1, reporter.errorCount())
	})

	t.Run("rewrite failure leaves state unchanged", func(t *testing.T) {
		store := newFakeStore(submission.New("1", nil).AsLiked())
		c, _ := newReady(t, store)
		store.replaceErr = errBoom

		err := c.DeleteLiked(context.Background(), "1")

		assert.ErrorIs(t, err, ErrDeleteFailure)
		assert.Equal(t, []string{"1"}, ids(c.Snapshot().Liked))
		assert.Equal(t, []string{"1"}, ids(store.stored()))
	})

	t.Run("keeps entries written by others", func(t *testing.T) {
		store := newFakeStore(submission.New("1", nil).AsLiked())
		c, _ := newReady(t, store)
		require.NoError(t, store.Save(context.Background(), submission.New("ext", nil).AsLiked()))

		require.NoError(t, c.DeleteLiked(context.Background(), "1"))

		assert.Equal(t, []string{"ext"}, ids(store.stored()))
		assert.Empty(t, c.Snapshot().Liked)
	})
}

func TestConcurrentLikeAndDeleteDoNotLoseWrites(t *testing.T) {
	store := newFakeStore(submission.New("old", nil).AsLiked())
	c, _ := newReady(t, store)

	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once
	store.onSave = func() {
		once.Do(func() { close(started) })
		<-release
	}

	var wg sync.WaitGroup
	wg.Add(2)
	var likeErr, deleteErr error
	go func() {
		defer wg.Done()
		likeErr = c.LikeSubmission(context.Background(), submission.New("new", nil))
	}()
	<-started
	go func() {
		defer wg.Done()
		deleteErr = c.DeleteLiked(context.Background(), "old")
	}()
	close(release)
	wg.Wait()

	require.NoError(t, likeErr)
	require.NoError(t, deleteErr)
	assert.Equal(t, []string{"new"}, ids(store.stored()))
	assert.Equal(t, []string{"new"}, ids(c.Snapshot().Liked))
}

func TestDismissDoesNotWaitOnStore(t *testing.T) {
	store := newFakeStore()
	c, _ := newReady(t, store)
	c.OnSubmissionArrived(submission.New("slow", nil))
	c.OnSubmissionArrived(submission.New("2", nil))

	release := make(chan struct{})
	started := make(chan struct{})
	store.onSave = func() {
		close(started)
		<-release
	}
	done := make(chan error, 1)
	go func() { done <- c.Like(context.Background(), "slow") }()
	<-started

	c.DismissToast("2")
	assert.Equal(t, []string{"slow"}, ids(c.Snapshot().Pending))

	close(release)
	require.NoError(t, <-done)
	assert.Empty(t, c.Snapshot().Pending)
}

func TestChangesCoalesce(t *testing.T) {
	c := New(newFakeStore())

	c.OnSubmissionArrived(submission.New("1", nil))
	c.OnSubmissionArrived(submission.New("2", nil))
	c.DismissToast("1")

	select {
	case <-c.Changes():
	default:
		t.Fatal("expected a change signal")
	}
	select {
	case <-c.Changes():
		t.Fatal("signals should coalesce")
	default:
	}
}

func TestRejectedArrivalDoesNotSignal(t *testing.T) {
	c := New(newFakeStore())
	c.DismissToast("1")
	<-c.Changes()

	c.OnSubmissionArrived(submission.New("1", nil))

	select {
	case <-c.Changes():
		t.Fatal("rejected arrival should not signal")
	default:
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	c, _ := newReady(t, newFakeStore())
	c.OnSubmissionArrived(submission.New("1", submission.Data{"firstName": "Ada"}))

	snap := c.Snapshot()
	snap.Pending[0].Data["firstName"] = "mutated"
	snap.Pending = append(snap.Pending, submission.New("x", nil))

	fresh := c.Snapshot()
	assert.Equal(t, []string{"1"}, ids(fresh.Pending))
	assert.Equal(t, "Ada", fresh.Pending[0].Data.FirstName())
}

func TestLogsTransitions(t *testing.T) {
	var buf bytes.Buffer
	c := New(newFakeStore(), WithLogger(logging.NewWriter(&buf, "debug")))
	require.NoError(t, c.Initialize(context.Background()))

	c.OnSubmissionArrived(submission.New("1", nil))
	require.NoError(t, c.Like(context.Background(), "1"))

	out := buf.String()
	assert.Contains(t, out, `"component":"controller"`)
	assert.Contains(t, out, "submission liked")
	assert.Contains(t, out, `"admission":"admitted"`)
}

func TestAdmissionString(t *testing.T) {
	assert.Equal(t, "admitted", Admitted.String())
	assert.Equal(t, "rejected_dismissed", RejectedDismissed.String())
	assert.Equal(t, "rejected_liked", RejectedLiked.String())
	assert.Equal(t, "rejected_invalid", RejectedInvalid.String())
	assert.Equal(t, "unknown", Admission(99).String())
}
