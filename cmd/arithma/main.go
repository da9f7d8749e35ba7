package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"arithma_tech/config"
	"arithma_tech/internal/app"
	"arithma_tech/pkg/logger"
)

var version = "dev"

type rootOptions struct {
	configPath string
	logLevel   string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "arithma",
		Short:   "Arithmetic coding compression utility",
		Long:    `Arithma compresses and decompresses text and images and keeps a history of every operation.`,
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath, "path to the config file")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override the configured log level")

	rootCmd.AddCommand(tuiCmd(opts))
	rootCmd.AddCommand(serveCmd(opts))
	rootCmd.AddCommand(watchCmd(opts))
	rootCmd.AddCommand(operationCmd(opts, "compress"))
	rootCmd.AddCommand(operationCmd(opts, "decompress"))
	rootCmd.AddCommand(historyCmd(opts))
	rootCmd.AddCommand(guideCmd())

	return rootCmd
}

// openApp loads the configuration and wires the application, logging to w.
func openApp(ctx context.Context, opts *rootOptions, name string, w io.Writer) (*app.App, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	level := cfg.Log.Level
	if opts.logLevel != "" {
		level = opts.logLevel
	}

	return app.New(ctx, name, cfg, logger.NewWithWriter(level, w))
}
