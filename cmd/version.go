/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/cristianoliveira/form-intray/internal/version"
	"github.com/spf13/cobra"
)

type versionClient interface {
	Version() string
}

type buildVersion struct{}

func (buildVersion) Version() string { return version.String() }

// NewVersionCmd creates the version command with explicit dependencies.
func NewVersionCmd(client versionClient) *cobra.Command {
	if client == nil {
		panic("NewVersionCmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show the current version of form-intray.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "form-intray version %s\n", client.Version())
			return err
		},
	}
}

func init() {
	RootCmd.AddCommand(NewVersionCmd(buildVersion{}))
}
