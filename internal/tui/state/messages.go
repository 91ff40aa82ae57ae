// Package state provides the BubbleTea model of the form-intray TUI.
package state

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// initializedMsg is sent when the initial liked-list load finishes.
type initializedMsg struct {
	err error
}

// changedMsg is sent when the controller signals a state change.
type changedMsg struct{}

// intentDoneMsg is sent when a like or delete intent completes.
type intentDoneMsg struct {
	intent string
	id     string
	err    error
}

// statusExpiredMsg is sent when a transient notice should disappear.
type statusExpiredMsg struct{}

func statusExpiryAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return statusExpiredMsg{}
	})
}

func initializeCmd(ctx context.Context, ctrl Controller) tea.Cmd {
	return func() tea.Msg {
		return initializedMsg{err: ctrl.Initialize(ctx)}
	}
}

// waitForChange blocks until the next change signal. It is re-issued after every
// changedMsg so exactly one waiter is outstanding.
func waitForChange(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return changedMsg{}
	}
}
