package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"arithma_tech/internal/app"
)

func guideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guide",
		Short: "Print the user guide",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), app.UserGuide)
		},
	}
}
