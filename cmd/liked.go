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

// NewLikedCmd creates the liked command.
func NewLikedCmd() *cobra.Command {
	var format string

	likedCmd := &cobra.Command{
		Use:   "liked",
		Short: "List liked submissions",
		Long: `List liked submissions in the order they were liked.

USAGE:
    form-intray liked [--format=simple|json]`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ValidateLikedFormat(format); err != nil {
				return err
			}
			return withController(cmd.Context(), errors.Discard{}, func(ctrl *controller.Controller) error {
				return app.NewLikedUseCase(ctrl).Execute(cmd.Context(), app.LikedInput{Format: format}, cmd.OutOrStdout())
			})
		},
	}
	likedCmd.Flags().StringVar(&format, "format", app.FormatSimple, "Output format: simple or json")

	return likedCmd
}

func init() {
	RootCmd.AddCommand(NewLikedCmd())
}
