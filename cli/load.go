// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/secopslab/incidentdb/db"
	"github.com/secopslab/incidentdb/ingest"
)

func newSetupCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Create the schema, load every CSV file and print a summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, strings.Repeat("=", 60))
			fmt.Fprintln(out, "Starting database setup")
			fmt.Fprintln(out, strings.Repeat("=", 60))

			conn, err := a.openDB(ctx)
			if err != nil {
				return err
			}
			defer conn.Close()

			if _, err := a.runLoad(ctx, out, conn); err != nil {
				return err
			}
			if err := printSummary(ctx, out, conn); err != nil {
				return err
			}

			fmt.Fprintln(out, "Database setup complete")
			return nil
		},
	}
}

func newLoadCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Load the CSV files using the configured write mode",
		Example: `  incidentdb load --mode append
  WRITE_MODE=append incidentdb load`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			conn, err := a.openDB(ctx)
			if err != nil {
				return err
			}
			defer conn.Close()

			_, err = a.runLoad(ctx, cmd.OutOrStdout(), conn)
			return err
		},
	}
}

func newSummaryCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print row counts for every table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			conn, err := a.openDB(ctx)
			if err != nil {
				return err
			}
			defer conn.Close()

			return printSummary(ctx, cmd.OutOrStdout(), conn)
		},
	}
}

// runLoad runs one ingestion pass in the configured mode and prints the result
func (a *app) runLoad(ctx context.Context, w io.Writer, conn *sql.DB) (*ingest.Result, error) {
	mode, err := ingest.ParseWriteMode(a.cfg.WriteMode)
	if err != nil {
		return nil, err
	}

	res, err := a.newLoader(conn).LoadAll(ctx, mode)
	if err != nil {
		return nil, err
	}

	printResult(w, res)
	return res, nil
}

func printResult(w io.Writer, res *ingest.Result) {
	for _, tr := range res.Tables {
		switch tr.Status {
		case ingest.StatusLoaded:
			fmt.Fprintf(w, "  %-24s loaded %s rows into %s\n", tr.File, humanize.Comma(int64(tr.Rows)), tr.Table)
		case ingest.StatusFailed:
			fmt.Fprintf(w, "  %-24s failed: %s\n", tr.File, tr.Error)
		default:
			fmt.Fprintf(w, "  %-24s %s\n", tr.File, tr.Status)
		}
	}
	fmt.Fprintf(w, "Loaded %s total records (%s mode)\n", humanize.Comma(int64(res.Total)), res.Mode)
}

func printSummary(ctx context.Context, w io.Writer, conn *sql.DB) error {
	fmt.Fprintln(w, "Database summary:")
	for _, table := range db.Tables {
		n, err := db.CountRows(ctx, conn, table)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %-18s %s rows\n", table, humanize.Comma(n))
	}
	return nil
}
