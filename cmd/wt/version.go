package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/walkthrough/pkg/version"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the wt version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "wt %s\n", version.Version)
		},
	}
}
