package main

import (
	"fmt"

	"github.com/spf13/cobra"

	v "github.com/keshon/suggestions/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(c.OutOrStdout(), v.String())
			return err
		},
	}
}
