package state

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/form-intray/internal/controller"
	intrayerrors "github.com/cristianoliveira/form-intray/internal/errors"
	"github.com/cristianoliveira/form-intray/internal/submission"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeController struct {
	mu        sync.Mutex
	state     controller.State
	changes   chan struct{}
	initErr   error
	likeErr   error
	deleteErr error

	liked     []string
	dismissed []string
	deleted   []string
}

func newFakeController(state controller.State) *fakeController {
	return &fakeController{state: state, changes: make(chan struct{}, 1)}
}

func (f *fakeController) Initialize(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Loading = false
	if f.initErr != nil {
		f.state.LoadErr = f.initErr
		return f.initErr
	}
	f.state.Ready = true
	return nil
}

func (f *fakeController) Snapshot() controller.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return controller.State{
		Pending:   submission.CloneAll(f.state.Pending),
		Liked:     submission.CloneAll(f.state.Liked),
		Dismissed: append([]string(nil), f.state.Dismissed...),
		Loading:   f.state.Loading,
		Ready:     f.state.Ready,
		LoadErr:   f.state.LoadErr,
	}
}

func (f *fakeController) Changes() <-chan struct{} { return f.changes }

func (f *fakeController) Like(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.liked = append(f.liked, id)
	if f.likeErr != nil {
		return f.likeErr
	}
	i := submission.IndexOf(f.state.Pending, id)
	if i < 0 {
		return controller.ErrNotPending
	}
	f.state.Liked = append(f.state.Liked, f.state.Pending[i].AsLiked())
	f.state.Pending = submission.Without(f.state.Pending, id)
	return nil
}

func (f *fakeController) DismissToast(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dismissed = append(f.dismissed, id)
	f.state.Pending = submission.Without(f.state.Pending, id)
	f.state.Dismissed = append(f.state.Dismissed, id)
}

func (f *fakeController) DeleteLiked(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.state.Liked = submission.Without(f.state.Liked, id)
	return nil
}

func person(id, first, last string) submission.Submission {
	return submission.New(id, submission.Data{
		submission.FieldFirstName: first,
		submission.FieldLastName:  last,
		submission.FieldEmail:     fmt.Sprintf("%s@example.com", first),
	})
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, state controller.State) (*Model, *fakeController, *intrayerrors.TUIHandler) {
	t.Helper()
	ctrl := newFakeController(state)
	handler := intrayerrors.NewTUIHandler(nil)
	return NewModel(context.Background(), ctrl, handler), ctrl, handler
}

func TestNewModelPanicsWithoutController(t *testing.T) {
	assert.Panics(t, func() { NewModel(context.Background(), nil, nil) })
}

func TestLoadingShowsSpinnerText(t *testing.T) {
	m, _, _ := newTestModel(t, controller.State{Loading: true})

	assert.Contains(t, m.View(), "Loading liked submissions...")
}

func TestInitializeFailureShowsBanner(t *testing.T) {
	m, ctrl, _ := newTestModel(t, controller.State{Loading: true})
	ctrl.initErr = errors.New("store offline")

	msg := initializeCmd(context.Background(), ctrl)()
	_, cmd := m.Update(msg)

	assert.NotNil(t, cmd)
	view := m.View()
	assert.Contains(t, view, "Error loading liked submissions: store offline")
	assert.NotContains(t, view, "Loading liked submissions...")
}

func TestEmptyLikedList(t *testing.T) {
	m, _, _ := newTestModel(t, controller.State{Ready: true})

	view := m.View()

	assert.Contains(t, view, "No liked submissions yet.")
	assert.Contains(t, view, "No new submissions.")
}

func TestViewRendersToastsAndLiked(t *testing.T) {
	m, _, _ := newTestModel(t, controller.State{
		Ready:   true,
		Pending: []submission.Submission{person("1", "Ada", "Lovelace")},
		Liked:   []submission.Submission{person("2", "Grace", "Hopper").AsLiked()},
	})

	view := m.View()

	assert.Contains(t, view, "New Submission: Ada Lovelace")
	assert.Contains(t, view, "Grace Hopper - Grace@example.com")
	assert.Contains(t, view, "1 new  1 liked")
}

func TestLikeKeyRunsIntent(t *testing.T) {
	m, ctrl, _ := newTestModel(t, controller.State{
		Ready:   true,
		Pending: []submission.Submission{person("1", "Ada", "Lovelace"), person("2", "Alan", "Turing")},
	})

	_, cmd := m.Update(keyRunes("j"))
	require.Nil(t, cmd)
	_, cmd = m.Update(keyRunes("l"))
	require.NotNil(t, cmd)

	msg := cmd()
	done, ok := msg.(intentDoneMsg)
	require.True(t, ok)
	assert.Equal(t, intentLike, done.intent)
	assert.Equal(t, "2", done.id)
	assert.NoError(t, done.err)
	assert.Equal(t, []string{"2"}, ctrl.liked)

	_, cmd = m.Update(msg)
	assert.Nil(t, cmd)
	assert.Len(t, m.snapshot.Pending, 1)
	assert.Len(t, m.snapshot.Liked, 1)
	assert.Equal(t, 0, m.pendingCursor)
}

func TestFailedLikeKeepsToastAndSchedulesClear(t *testing.T) {
	m, ctrl, _ := newTestModel(t, controller.State{
		Ready:   true,
		Pending: []submission.Submission{person("1", "Ada", "Lovelace")},
	})
	ctrl.likeErr = fmt.Errorf("%w: boom", controller.ErrSaveFailure)

	_, cmd := m.Update(keyRunes("l"))
	require.NotNil(t, cmd)
	_, cmd = m.Update(cmd())

	assert.NotNil(t, cmd)
	assert.Len(t, m.snapshot.Pending, 1)
	assert.Empty(t, m.snapshot.Liked)
}

func TestStaleSelectionIsReported(t *testing.T) {
	m, _, handler := newTestModel(t, controller.State{Ready: true})

	_, cmd := m.Update(intentDoneMsg{intent: intentLike, id: "9", err: controller.ErrNotPending})

	assert.NotNil(t, cmd)
	latest, ok := handler.GetLatest()
	require.True(t, ok)
	assert.Equal(t, intrayerrors.MessageTypeWarning, latest.Type)
	assert.Contains(t, m.View(), "Cannot like 9: no longer listed")
}

func TestStatusLineShowsReportedError(t *testing.T) {
	m, _, handler := newTestModel(t, controller.State{Ready: true})

	handler.Error("Failed to save: boom")

	assert.Contains(t, m.View(), "error: Failed to save: boom")
}

func TestDismissKeyIsInline(t *testing.T) {
	m, ctrl, _ := newTestModel(t, controller.State{
		Ready:   true,
		Pending: []submission.Submission{person("1", "Ada", "Lovelace")},
	})

	_, cmd := m.Update(keyRunes("d"))

	assert.Nil(t, cmd)
	assert.Equal(t, []string{"1"}, ctrl.dismissed)
	assert.Empty(t, m.snapshot.Pending)
	assert.NotContains(t, m.View(), "Ada Lovelace")
}

func TestDeleteRequiresLikedFocus(t *testing.T) {
	m, ctrl, _ := newTestModel(t, controller.State{
		Ready:   true,
		Pending: []submission.Submission{person("1", "Ada", "Lovelace")},
		Liked:   []submission.Submission{person("2", "Grace", "Hopper").AsLiked()},
	})

	_, cmd := m.Update(keyRunes("x"))
	assert.Nil(t, cmd, "delete is disabled while toasts are focused")

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	_, cmd = m.Update(keyRunes("l"))
	assert.Nil(t, cmd, "like is disabled while liked list is focused")
	_, cmd = m.Update(keyRunes("d"))
	assert.Nil(t, cmd)
	assert.Empty(t, ctrl.dismissed)

	_, cmd = m.Update(keyRunes("x"))
	require.NotNil(t, cmd)
	_, _ = m.Update(cmd())

	assert.Equal(t, []string{"2"}, ctrl.deleted)
	assert.Empty(t, m.snapshot.Liked)
	assert.Contains(t, m.View(), "No liked submissions yet.")
}

func TestIntentsOnEmptyListsAreNoops(t *testing.T) {
	m, ctrl, _ := newTestModel(t, controller.State{Ready: true})

	for _, k := range []string{"l", "d"} {
		_, cmd := m.Update(keyRunes(k))
		assert.Nil(t, cmd)
	}
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	_, cmd := m.Update(keyRunes("x"))

	assert.Nil(t, cmd)
	assert.Empty(t, ctrl.liked)
	assert.Empty(t, ctrl.dismissed)
	assert.Empty(t, ctrl.deleted)
}

func TestChangedMsgRefreshesAndRelistens(t *testing.T) {
	m, ctrl, _ := newTestModel(t, controller.State{Ready: true})

	ctrl.mu.Lock()
	ctrl.state.Pending = []submission.Submission{person("7", "Edsger", "Dijkstra")}
	ctrl.mu.Unlock()
	_, cmd := m.Update(changedMsg{})

	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "New Submission: Edsger Dijkstra")

	ctrl.changes <- struct{}{}
	assert.Equal(t, changedMsg{}, cmd())
}

func TestCursorClampsWhenListShrinks(t *testing.T) {
	m, ctrl, _ := newTestModel(t, controller.State{
		Ready:   true,
		Pending: []submission.Submission{person("1", "A", "A"), person("2", "B", "B"), person("3", "C", "C")},
	})
	_, _ = m.Update(keyRunes("j"))
	_, _ = m.Update(keyRunes("j"))
	_, _ = m.Update(keyRunes("j"))
	require.Equal(t, 2, m.pendingCursor)

	ctrl.DismissToast("3")
	_, _ = m.Update(changedMsg{})

	assert.Equal(t, 1, m.pendingCursor)
}

func TestQuitAndHelpKeys(t *testing.T) {
	m, _, _ := newTestModel(t, controller.State{Ready: true})

	_, cmd := m.Update(keyRunes("?"))
	assert.Nil(t, cmd)
	assert.True(t, m.help.ShowAll)

	_, cmd = m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestWindowSizeResizesViewport(t *testing.T) {
	m, _, _ := newTestModel(t, controller.State{Ready: true})

	_, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	assert.Equal(t, 100, m.viewport.Width)
	assert.Equal(t, 40-chromeLines, m.viewport.Height)
}
