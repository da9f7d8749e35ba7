package main

import (
	"os"

	"github.com/spf13/cobra"

	"arithma_tech/internal/server"
)

func serveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the operation and history HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := openApp(ctx, opts, "arithma-server", os.Stdout)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			return server.NewServer(a).Run(ctx)
		},
	}
}
