package controller

import (
	"github.com/cristianoliveira/form-intray/internal/errors"
	"github.com/cristianoliveira/form-intray/internal/logging"
)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the structured logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithReporter sets the sink for user-visible failure messages.
func WithReporter(r errors.ErrorHandler) Option {
	return func(c *Controller) {
		if r != nil {
			c.reporter = r
		}
	}
}

// WithLikedBlocksAdmission controls whether arrivals whose ID is already liked are
// ignored like dismissed ones. Enabled by default.
func WithLikedBlocksAdmission(enabled bool) Option {
	return func(c *Controller) {
		c.likedBlocksAdmission = enabled
	}
}
