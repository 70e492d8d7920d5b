package main

import (
	"fmt"

	"github.com/spf13/cobra"

	portfolio "github.com/aretw0/portfolio-mcp"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of portfolio-mcp",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "portfolio-mcp version %s\n", portfolio.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
