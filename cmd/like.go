/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"io"
	"strings"

	"github.com/cristianoliveira/form-intray/internal/app"
	"github.com/cristianoliveira/form-intray/internal/controller"
	"github.com/cristianoliveira/form-intray/internal/errors"
	"github.com/spf13/cobra"
)

// NewLikeCmd creates the like command.
func NewLikeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "like [JSON]",
		Short: "Like a submission given as JSON",
		Long: `Persist a submission as liked.

The submission is read from the argument, or from stdin when omitted. It is either
{"id":"...","data":{...}} or a bare data object, in which case an ID is generated.

EXAMPLES:
    form-intray like '{"id":"42","data":{"firstName":"Ada","lastName":"Lovelace"}}'
    echo '{"firstName":"Ada","email":"ada@example.com"}' | form-intray like`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var payload io.Reader = cmd.InOrStdin()
			if len(args) == 1 {
				payload = strings.NewReader(args[0])
			}
			return withController(cmd.Context(), errors.Discard{}, func(ctrl *controller.Controller) error {
				return app.NewLikeUseCase(ctrl).Execute(cmd.Context(), app.LikeInput{Payload: payload})
			})
		},
	}
}

func init() {
	RootCmd.AddCommand(NewLikeCmd())
}
