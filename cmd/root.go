/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/cristianoliveira/form-intray/internal/colors"
	"github.com/cristianoliveira/form-intray/internal/config"
	"github.com/cristianoliveira/form-intray/internal/errors"
	"github.com/cristianoliveira/form-intray/internal/logging"
	"github.com/cristianoliveira/form-intray/internal/version"
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:           "form-intray",
	Short:         "Get notified of new form submissions and keep the ones you like.",
	Long:          `Get notified of new form submissions and keep the ones you like.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		colors.SetDebug(config.GetBool("debug", false))
		if err := logging.InitGlobal(); err != nil {
			colors.Warning(fmt.Sprintf("logging disabled: %v", err))
		}
		logging.GetGlobal().Debug("command started", "command", cmd.Name())
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		logging.GetGlobal().Debug("command completed", "command", cmd.Name())
		return logging.ShutdownGlobal()
	},
}

// outputWriter overrides help output in tests.
var outputWriter io.Writer

// Execute runs the root command and reports a returned error once.
// This is called by main.main().
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := RootCmd.ExecuteContext(ctx)
	if err != nil {
		logging.GetGlobal().Error("command failed", "error", err)
		errors.NewDefaultCLIHandler().Error(err.Error())
		_ = logging.ShutdownGlobal()
	}
	return err
}

func init() {
	RootCmd.Version = version.String()
	RootCmd.CompletionOptions.HiddenDefaultCmd = true
	defaultHelp := RootCmd.HelpFunc()
	RootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd.HasParent() {
			defaultHelp(cmd, args)
			return
		}
		PrintHelp(cmd)
	})
}

// PrintHelp prints the command overview in a fixed order.
func PrintHelp(root *cobra.Command) {
	commandOrder := []string{"tui", "liked", "like", "delete", "version"}

	var cmdLines []string
	for _, name := range commandOrder {
		var found *cobra.Command
		for _, c := range root.Commands() {
			if c.Name() == name {
				found = c
				break
			}
		}
		if found == nil {
			continue
		}
		cmdLines = append(cmdLines, fmt.Sprintf("    %-16s %s", found.Use, found.Short))
	}

	helpText := fmt.Sprintf(`form-intray v%s

%s

USAGE:
    form-intray [COMMAND] [OPTIONS]

COMMANDS:
%s

OPTIONS:
    -h, --help      Show help message
`, root.Version, root.Short, strings.Join(cmdLines, "\n"))

	w := outputWriter
	if w == nil {
		w = os.Stdout
	}
	_, _ = fmt.Fprint(w, helpText)
}
