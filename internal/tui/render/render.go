// Package render turns controller state into styled terminal strings.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/form-intray/internal/colors"
	"github.com/cristianoliveira/form-intray/internal/errors"
	"github.com/cristianoliveira/form-intray/internal/submission"
)

const (
	toastPrefix      = "New Submission: "
	emptyLiked       = "No liked submissions yet."
	emptyPending     = "No new submissions."
	loadErrorPrefix  = "Error loading liked submissions: "
	selectedMarker   = "> "
	unselectedMarker = "  "
	dimColor         = "241"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ansiColorNumber(colors.Blue)))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(dimColor))
	toastStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(ansiColorNumber(colors.Cyan)))
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color(ansiColorNumber(colors.Blue))).Foreground(lipgloss.Color("0"))
	bannerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ansiColorNumber(colors.Red)))
)

// HeaderState defines the inputs needed to render the header.
type HeaderState struct {
	Pending int
	Liked   int
	Width   int
}

// Header renders the title line with counters.
func Header(state HeaderState) string {
	title := "form-intray"
	counts := fmt.Sprintf("%d new  %d liked", state.Pending, state.Liked)
	gap := state.Width - len(title) - len(counts)
	if gap < 2 {
		gap = 2
	}
	return titleStyle.Render(title) + strings.Repeat(" ", gap) + mutedStyle.Render(counts)
}

// SectionTitle renders a section heading; the focused section is highlighted.
func SectionTitle(title string, focused bool) string {
	if focused {
		return titleStyle.Render(title)
	}
	return mutedStyle.Render(title)
}

// ToastText returns the toast label for s.
func ToastText(s submission.Submission) string {
	name := s.Data.FullName()
	if name == "" {
		name = s.ID
	}
	return toastPrefix + name
}

// LikedText returns the liked-list label for s.
func LikedText(s submission.Submission) string {
	name := s.Data.FullName()
	if name == "" {
		name = s.ID
	}
	if email := s.Data.Email(); email != "" {
		return name + " - " + email
	}
	return name
}

// Toasts renders the pending queue.
func Toasts(pending []submission.Submission, cursor int, focused bool, width int) string {
	if len(pending) == 0 {
		return mutedStyle.Render(emptyPending)
	}
	lines := make([]string, 0, len(pending))
	for i, s := range pending {
		lines = append(lines, row(ToastText(s), focused && i == cursor, width, toastStyle))
	}
	return strings.Join(lines, "\n")
}

// Liked renders the liked list.
func Liked(liked []submission.Submission, cursor int, focused bool, width int) string {
	if len(liked) == 0 {
		return mutedStyle.Render(emptyLiked)
	}
	lines := make([]string, 0, len(liked))
	for i, s := range liked {
		lines = append(lines, row(LikedText(s), focused && i == cursor, width, lipgloss.NewStyle()))
	}
	return strings.Join(lines, "\n")
}

// LoadError renders the persistent load failure banner.
func LoadError(err error) string {
	return bannerStyle.Render(loadErrorPrefix + err.Error())
}

// Status renders a transient notice.
func Status(msg errors.Message) string {
	color := colors.Blue
	switch msg.Type {
	case errors.MessageTypeError:
		color = colors.Red
	case errors.MessageTypeWarning:
		color = colors.Yellow
	case errors.MessageTypeSuccess:
		color = colors.Green
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(ansiColorNumber(color)))
	return style.Render(msg.Type.String() + ": " + msg.Text)
}

// Muted renders text in the dim color.
func Muted(text string) string {
	return mutedStyle.Render(text)
}

func row(text string, selected bool, width int, base lipgloss.Style) string {
	marker := unselectedMarker
	if selected {
		marker = selectedMarker
	}
	text = Truncate(marker+text, width)
	if selected {
		return selectedStyle.Render(text)
	}
	return base.Render(text)
}

// Truncate shortens s to width runes, ending with "..." when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// ansiColorNumber extracts the color number from an ANSI escape sequence.
// Example: "\033[0;34m" -> "34"
func ansiColorNumber(ansi string) string {
	if len(ansi) < 2 {
		return ""
	}
	lastSemicolon := strings.LastIndex(ansi, ";")
	if lastSemicolon == -1 {
		return ""
	}
	return ansi[lastSemicolon+1 : len(ansi)-1]
}
