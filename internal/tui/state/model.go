package state

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/form-intray/internal/controller"
	"github.com/cristianoliveira/form-intray/internal/errors"
)

const (
	defaultViewportWidth  = 80
	defaultViewportHeight = 22
	minLikedHeight        = 3
	chromeLines           = 8
	statusClearDuration   = 5 * time.Second
)

// Controller is the part of the notification controller the view drives.
// The view never mutates state itself; it reads snapshots and issues intents.
type Controller interface {
	Initialize(ctx context.Context) error
	Snapshot() controller.State
	Changes() <-chan struct{}
	Like(ctx context.Context, id string) error
	DismissToast(id string)
	DeleteLiked(ctx context.Context, id string) error
}

type focus int

const (
	focusPending focus = iota
	focusLiked
)

// Model represents the TUI model for bubbletea.
type Model struct {
	ctx          context.Context
	ctrl         Controller
	errorHandler *errors.TUIHandler

	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	viewport viewport.Model

	snapshot      controller.State
	focus         focus
	pendingCursor int
	likedCursor   int
	width         int
	height        int
}

// NewModel creates the TUI model. handler should also be the controller's reporter
// so store failures surface in the status line; nil creates a private one.
func NewModel(ctx context.Context, ctrl Controller, handler *errors.TUIHandler) *Model {
	if ctrl == nil {
		panic("NewModel: controller dependency cannot be nil")
	}
	if handler == nil {
		handler = errors.NewTUIHandler(nil)
	}
	s := spinner.New()
	s.Spinner = spinner.Dot

	m := &Model{
		ctx:          ctx,
		ctrl:         ctrl,
		errorHandler: handler,
		keys:         newKeyMap(),
		help:         help.New(),
		spinner:      s,
		viewport:     viewport.New(defaultViewportWidth, defaultViewportHeight),
		width:        defaultViewportWidth,
		height:       defaultViewportHeight,
	}
	m.keys.forFocus(m.focus)
	m.refresh()
	return m
}

// Init starts the liked-list load, the spinner and the change listener.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		initializeCmd(m.ctx, m.ctrl),
		waitForChange(m.ctrl.Changes()),
	)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateViewport()
		return m, nil
	case spinner.TickMsg:
		if !m.snapshot.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case initializedMsg:
		m.refresh()
		if msg.err != nil {
			return m, statusExpiryAfter(statusClearDuration)
		}
		return m, nil
	case changedMsg:
		m.refresh()
		return m, waitForChange(m.ctrl.Changes())
	case intentDoneMsg:
		return m, m.handleIntentDone(msg)
	case statusExpiredMsg:
		return m, nil
	}
	return m, nil
}

// refresh re-reads the controller snapshot and keeps cursors in range.
func (m *Model) refresh() {
	m.snapshot = m.ctrl.Snapshot()
	m.pendingCursor = clamp(m.pendingCursor, len(m.snapshot.Pending))
	m.likedCursor = clamp(m.likedCursor, len(m.snapshot.Liked))
	m.updateViewport()
}

func clamp(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}
