package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// BinaryVersion is set at build time with
// -ldflags "-X main.BinaryVersion=v1.2.3".
var BinaryVersion = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the permnorm version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "permnorm %s\n", BinaryVersion)
			return nil
		},
	}
}
