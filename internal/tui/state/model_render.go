package state

import (
	"strings"

	"github.com/cristianoliveira/form-intray/internal/tui/render"
)

// View renders the TUI.
func (m *Model) View() string {
	var s strings.Builder

	s.WriteString(render.Header(render.HeaderState{
		Pending: len(m.snapshot.Pending),
		Liked:   len(m.snapshot.Liked),
		Width:   m.width,
	}))
	s.WriteString("\n\n")

	s.WriteString(render.SectionTitle("New submissions", m.focus == focusPending))
	s.WriteString("\n")
	s.WriteString(render.Toasts(m.snapshot.Pending, m.pendingCursor, m.focus == focusPending, m.width))
	s.WriteString("\n\n")

	s.WriteString(render.SectionTitle("Liked submissions", m.focus == focusLiked))
	s.WriteString("\n")
	switch {
	case m.snapshot.Loading:
		s.WriteString(m.spinner.View() + " " + render.Muted("Loading liked submissions..."))
	case m.snapshot.LoadErr != nil:
		s.WriteString(render.LoadError(m.snapshot.LoadErr))
	default:
		s.WriteString(m.viewport.View())
	}
	s.WriteString("\n\n")

	if msg, ok := m.errorHandler.Active(statusClearDuration); ok {
		s.WriteString(render.Status(msg))
		s.WriteString("\n")
	}
	s.WriteString(m.help.View(m.keys))

	return s.String()
}

// updateViewport sizes the liked-list viewport to the space left by the toasts and
// refreshes its content.
func (m *Model) updateViewport() {
	height := m.height - chromeLines - len(m.snapshot.Pending)
	if height < minLikedHeight {
		height = minLikedHeight
	}
	m.viewport.Width = m.width
	m.viewport.Height = height
	m.viewport.SetContent(render.Liked(m.snapshot.Liked, m.likedCursor, m.focus == focusLiked, m.width))
}
