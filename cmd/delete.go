/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/cristianoliveira/form-intray/internal/app"
	"github.com/cristianoliveira/form-intray/internal/controller"
	"github.com/cristianoliveira/form-intray/internal/errors"
	"github.com/spf13/cobra"
)

// NewDeleteCmd creates the delete command.
func NewDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID...",
		Short: "Delete liked submissions",
		Long: `Delete liked submissions by ID.

The stored collection is read, filtered and written back as a whole.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withController(cmd.Context(), errors.Discard{}, func(ctrl *controller.Controller) error {
				return app.NewDeleteUseCase(ctrl).Execute(cmd.Context(), app.DeleteInput{Args: args})
			})
		},
	}
}

func init() {
	RootCmd.AddCommand(NewDeleteCmd())
}
