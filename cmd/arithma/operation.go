package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"arithma_tech/entity"
	"arithma_tech/internal/compression"
)

func operationCmd(opts *rootOptions, name string) *cobra.Command {
	var (
		text string
		file string
	)

	kind, _ := entity.ParseOperationKind(name)

	cmd := &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("%s text or an image once and log it to the history", kind),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (text == "") == (file == "") {
				return errors.New("exactly one of --text or --file is required")
			}

			ctx := cmd.Context()
			a, err := openApp(ctx, opts, "arithma-cli", os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			c := a.Controller
			if text != "" {
				if err := c.SwitchMode(entity.ModeText); err != nil {
					return err
				}
				if err := c.SetText(text); err != nil {
					return err
				}
			} else if err := c.SelectFile(file); err != nil {
				return describe(err)
			}

			accepted, err := c.Request(ctx, kind)
			if !accepted {
				return describe(err)
			}
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.Status())

			if err := compression.NewRunner(c, a.Logger).Run(ctx); err != nil {
				return err
			}

			st := c.Status()
			fmt.Fprintln(cmd.OutOrStdout(), st)
			fmt.Fprintln(cmd.OutOrStdout(), st.Confirmation())
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "text to process")
	cmd.Flags().StringVar(&file, "file", "", "image to process")
	return cmd
}

func describe(err error) error {
	if ve := entity.AsValidationError(err); ve != nil {
		return fmt.Errorf("%s: %s", ve.Title(), ve.Hint())
	}
	if err == nil {
		return entity.ErrOperationInProgress
	}
	return err
}
