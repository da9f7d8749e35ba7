package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"arithma_tech/entity"
)

const listTimeLayout = "2006-01-02 15:04:05"

func historyCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect and manage the operation history",
	}

	cmd.AddCommand(historyListCmd(opts))
	cmd.AddCommand(historyDeleteCmd(opts))
	cmd.AddCommand(historyExportCmd(opts))
	return cmd
}

func historyListCmd(opts *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List logged operations, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx, opts, "arithma-cli", os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			records, err := a.History.ListAll(ctx)
			if err != nil {
				return err
			}
			return writeRecords(cmd.OutOrStdout(), output, records)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table, json or yaml")
	return cmd
}

func writeRecords(w io.Writer, output string, records []entity.OperationRecord) error {
	if records == nil {
		records = []entity.OperationRecord{}
	}

	switch output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case "yaml":
		return yaml.NewEncoder(w).Encode(records)
	case "table", "":
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("ID", "TIMESTAMP", "OPERATION", "TYPE", "NAME")
		for _, r := range records {
			t.Row(strconv.FormatUint(uint64(r.ID), 10), r.Timestamp.Local().Format(listTimeLayout),
				string(r.Operation), string(r.DataType), r.Name)
		}
		_, err := fmt.Fprintln(w, t.Render())
		return err
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}

func historyDeleteCmd(opts *rootOptions) *cobra.Command {
	var (
		timestamp string
		id        uint
	)

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete entries by timestamp or by id",
		Long: `Delete every entry logged at --timestamp (RFC3339, or "2006-01-02 15:04:05" in local time
as shown by "history list"), or the single entry with --id.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (timestamp == "") == (id == 0) {
				return errors.New("no selection: pass --timestamp or --id")
			}

			var ts time.Time
			if timestamp != "" {
				var err error
				if ts, err = parseTimestamp(timestamp); err != nil {
					return err
				}
			}

			ctx := cmd.Context()
			a, err := openApp(ctx, opts, "arithma-cli", os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			var n int64
			if id != 0 {
				n, err = a.History.DeleteByID(ctx, id)
			} else {
				n, err = a.History.DeleteByTimestamp(ctx, ts)
			}
			if err != nil {
				return fmt.Errorf("delete failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d entries\n", n)
			return nil
		},
	}

	cmd.Flags().StringVar(&timestamp, "timestamp", "", "timestamp of the entries to delete")
	cmd.Flags().UintVar(&id, "id", 0, "id of the entry to delete")
	return cmd
}

func parseTimestamp(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	ts, err := time.ParseInLocation(listTimeLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
	}
	return ts, nil
}

func historyExportCmd(opts *rootOptions) *cobra.Command {
	var (
		out      string
		format   string
		toS3     bool
		s3Bucket string
		s3Key    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Archive the history as records.json and records.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx, opts, "arithma-cli", os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			exp, err := a.Exporter(format)
			if err != nil {
				return err
			}

			if toS3 {
				storage, bucket, err := a.Storage(ctx, s3Bucket)
				if err != nil {
					return err
				}
				key := s3Key
				if key == "" {
					key = exp.DefaultKey(time.Now())
				}
				n, err := exp.ExportToStorage(ctx, storage, bucket, key)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "exported %d entries to s3://%s/%s\n", n, bucket, key)
				return nil
			}

			if out == "" {
				out = exp.DefaultKey(time.Now())
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			n, err := exp.Export(ctx, f)
			if closeErr := f.Close(); err == nil {
				err = closeErr
			}
			if err != nil {
				os.Remove(out)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d entries to %s\n", n, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "output file (defaults to history-<time><ext>)")
	cmd.Flags().StringVar(&format, "format", "tar.gz", "archive format: tar or tar.gz")
	cmd.Flags().BoolVar(&toS3, "s3", false, "upload to S3 instead of writing a file")
	cmd.Flags().StringVar(&s3Bucket, "s3-bucket", "", "bucket override for --s3")
	cmd.Flags().StringVar(&s3Key, "s3-key", "", "object key for --s3")
	return cmd
}
