// Package errors provides the sinks that surface user-visible messages.
package errors

import (
	"sync"
)

// ErrorHandler receives user-visible messages.
// Different implementations render them differently based on context.
type ErrorHandler interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
	Success(msg string)
}

// ColorOutput is the console printer used by CLIHandler.
type ColorOutput interface {
	Error(msgs ...string)
	Warning(msgs ...string)
	Info(msgs ...string)
	Success(msgs ...string)
}

// CLIHandler prints messages to stdout/stderr.
type CLIHandler struct {
	colors ColorOutput
	mu     sync.Mutex
}

var _ ErrorHandler = (*CLIHandler)(nil)

// NewCLIHandler creates a CLIHandler printing through colors.
func NewCLIHandler(colors ColorOutput) *CLIHandler {
	return &CLIHandler{colors: colors}
}

func (h *CLIHandler) Error(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.colors.Error(msg)
}

func (h *CLIHandler) Warning(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.colors.Warning(msg)
}

func (h *CLIHandler) Info(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.colors.Info(msg)
}

func (h *CLIHandler) Success(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.colors.Success(msg)
}

// Discard drops every message.
type Discard struct{}

func (Discard) Error(string)   {}
func (Discard) Warning(string) {}
func (Discard) Info(string)    {}
func (Discard) Success(string) {}
