/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/form-intray/internal/config"
	"github.com/cristianoliveira/form-intray/internal/errors"
	"github.com/cristianoliveira/form-intray/internal/logging"
	"github.com/cristianoliveira/form-intray/internal/source"
	"github.com/cristianoliveira/form-intray/internal/storage"
	"github.com/cristianoliveira/form-intray/internal/tui/state"
	"github.com/spf13/cobra"
)

// programRunner runs the bubbletea program. Tests replace it.
var programRunner = func(ctx context.Context, model tea.Model) error {
	_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

type tuiOptions struct {
	interval time.Duration
	noFeed   bool
}

// NewTUICmd creates the tui command.
func NewTUICmd() *cobra.Command {
	var opts tuiOptions

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Interactive inbox for new and liked submissions",
		Long: `Interactive inbox for new and liked submissions.

New submissions appear as toasts. Liking one stores it; dismissing one hides it
for the rest of the session, even if it is delivered again.

KEY BINDINGS:
    j/k         Move up/down in the focused list
    tab         Switch between new and liked submissions
    l, enter    Like the selected submission
    d, esc      Dismiss the selected submission
    x           Delete the selected liked submission
    ?           Toggle full help
    q           Quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}
	tuiCmd.Flags().DurationVar(&opts.interval, "interval", 0, "Time between generated submissions (default from feed_interval_ms)")
	tuiCmd.Flags().BoolVar(&opts.noFeed, "no-feed", false, "Do not generate submissions")

	return tuiCmd
}

func runTUI(parent context.Context, opts tuiOptions) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	store, err := storeFactory(ctx)
	if err != nil {
		return err
	}
	defer storage.Close(store)

	handler := errors.NewTUIHandler(nil)
	ctrl := newController(store, handler)
	feed := source.NewFeed()
	if err := ctrl.Attach(feed); err != nil {
		return err
	}

	if !opts.noFeed {
		interval := opts.interval
		if interval <= 0 {
			interval = time.Duration(config.GetInt("feed_interval_ms", 4000)) * time.Millisecond
		}
		gen := source.NewGenerator(feed, source.GeneratorOptions{Interval: interval})
		go func() {
			_ = gen.Run(ctx)
			logging.GetGlobal().Debug("submission feed stopped")
		}()
	}

	return programRunner(ctx, state.NewModel(ctx, ctrl, handler))
}

func init() {
	RootCmd.AddCommand(NewTUICmd())
}
