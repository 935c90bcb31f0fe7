package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/mahar/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "mahar %s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
