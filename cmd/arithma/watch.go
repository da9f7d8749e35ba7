package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"arithma_tech/entity"
	"arithma_tech/internal/watch"
	"arithma_tech/internal/worker"
)

func watchCmd(opts *rootOptions) *cobra.Command {
	var (
		dir        string
		decompress bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Process every image dropped into a directory",
		Long:  `Watch a drop directory and compress (or decompress) each supported image created in it, one at a time.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			a, err := openApp(ctx, opts, "arithma-worker", os.Stdout)
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			if dir == "" {
				dir = a.Config.Watch.Dir
			}
			w, err := watch.New(dir, a.Logger)
			if err != nil {
				return err
			}

			kind := entity.Compress
			if decompress {
				kind = entity.Decompress
			}

			errCh := make(chan error, 1)
			go func() { errCh <- w.Run(ctx) }()

			runErr := worker.New(a.Controller, kind, a.Logger).Run(ctx, w.Drops())
			cancel()
			if err := <-errCh; err != nil {
				return err
			}
			return runErr
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "drop directory (defaults to watch.dir from the config)")
	cmd.Flags().BoolVar(&decompress, "decompress", false, "decompress instead of compress")
	return cmd
}
