package main

import (
	"os"

	"github.com/spf13/cobra"

	"arithma_tech/internal/app"
	"arithma_tech/internal/tui"
)

const tuiLogFile = "arithma.log"

func tuiCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive terminal interface (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}
}

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	ctx := cmd.Context()

	logFile, err := os.OpenFile(tuiLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer logFile.Close()

	a, err := openApp(ctx, opts, "arithma-tui", logFile)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	return tui.Run(ctx, a.Controller, a.History, app.UserGuide)
}
