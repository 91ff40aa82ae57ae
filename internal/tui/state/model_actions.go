package state

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/form-intray/internal/controller"
)

const (
	intentLike   = "like"
	intentDelete = "delete"
)

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Switch):
		m.toggleFocus()
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Like):
		return m.likeSelected()
	case key.Matches(msg, m.keys.Dismiss):
		m.dismissSelected()
	case key.Matches(msg, m.keys.Delete):
		return m.deleteSelected()
	}
	return nil
}

func (m *Model) toggleFocus() {
	if m.focus == focusPending {
		m.focus = focusLiked
	} else {
		m.focus = focusPending
	}
	m.keys.forFocus(m.focus)
	m.updateViewport()
}

func (m *Model) moveCursor(delta int) {
	if m.focus == focusPending {
		m.pendingCursor = clamp(m.pendingCursor+delta, len(m.snapshot.Pending))
		return
	}
	m.likedCursor = clamp(m.likedCursor+delta, len(m.snapshot.Liked))
	m.updateViewport()
	if m.likedCursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.likedCursor)
	} else if m.likedCursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.likedCursor - m.viewport.Height + 1)
	}
}

func (m *Model) selectedPendingID() (string, bool) {
	if len(m.snapshot.Pending) == 0 {
		return "", false
	}
	return m.snapshot.Pending[m.pendingCursor].ID, true
}

func (m *Model) selectedLikedID() (string, bool) {
	if len(m.snapshot.Liked) == 0 {
		return "", false
	}
	return m.snapshot.Liked[m.likedCursor].ID, true
}

// likeSelected persists the selected toast off the UI goroutine.
func (m *Model) likeSelected() tea.Cmd {
	id, ok := m.selectedPendingID()
	if !ok {
		return nil
	}
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return intentDoneMsg{intent: intentLike, id: id, err: ctrl.Like(ctx, id)}
	}
}

// dismissSelected has no I/O, so it runs inline.
func (m *Model) dismissSelected() {
	id, ok := m.selectedPendingID()
	if !ok {
		return
	}
	m.ctrl.DismissToast(id)
	m.refresh()
}

func (m *Model) deleteSelected() tea.Cmd {
	id, ok := m.selectedLikedID()
	if !ok {
		return nil
	}
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return intentDoneMsg{intent: intentDelete, id: id, err: ctrl.DeleteLiked(ctx, id)}
	}
}

// handleIntentDone refreshes after an intent. Store failures were already reported
// by the controller; stale selections are reported here.
func (m *Model) handleIntentDone(msg intentDoneMsg) tea.Cmd {
	m.refresh()
	if msg.err == nil {
		return nil
	}
	if errors.Is(msg.err, controller.ErrNotPending) || errors.Is(msg.err, controller.ErrNotLiked) {
		m.errorHandler.Warning(fmt.Sprintf("Cannot %s %s: no longer listed", msg.intent, msg.id))
	}
	return statusExpiryAfter(statusClearDuration)
}
