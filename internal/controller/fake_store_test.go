package controller

import (
	"context"
	"errors"
	"sync"

	"github.com/cristianoliveira/form-intray/internal/storage"
	"github.com/cristianoliveira/form-intray/internal/submission"
)

var errBoom = errors.New("boom")

type fakeStore struct {
	mu         sync.Mutex
	items      []submission.Submission
	fetchErr   error
	saveErr    error
	replaceErr error

	fetchCalls   int
	saveCalls    int
	replaceCalls int

	// onSave, when set, runs before Save mutates items.
	onSave func()
}

var _ storage.Store = (*fakeStore)(nil)

func newFakeStore(items ...submission.Submission) *fakeStore {
	return &fakeStore{items: items}
}

func (f *fakeStore) FetchAll(_ context.Context) ([]submission.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCalls++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return submission.CloneAll(f.items), nil
}

func (f *fakeStore) Save(_ context.Context, s submission.Submission) error {
	f.mu.Lock()
	hook := f.onSave
	f.mu.Unlock()
	if hook != nil {
		hook()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.saveCalls++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.items = storage.Merge(f.items, s)
	return nil
}

func (f *fakeStore) ReplaceAll(_ context.Context, items []submission.Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replaceCalls++
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.items = submission.CloneAll(items)
	return nil
}

func (f *fakeStore) stored() []submission.Submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return submission.CloneAll(f.items)
}

type recordingReporter struct {
	mu     sync.Mutex
	errors []string
}

func (r *recordingReporter) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, msg)
}

func (r *recordingReporter) Warning(string) {}
func (r *recordingReporter) Info(string)    {}
func (r *recordingReporter) Success(string) {}

func (r *recordingReporter) errorCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.errors)
}
