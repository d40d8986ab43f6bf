// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cli

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/secopslab/incidentdb/cliparse"
	"github.com/secopslab/incidentdb/db"
	"github.com/secopslab/incidentdb/ingest"
	"github.com/secopslab/incidentdb/logging"
)

// app carries the resolved configuration into every subcommand
type app struct {
	cfg    cliparse.Config
	logger *slog.Logger
}

// NewRootCommand builds the incidentdb command tree
func NewRootCommand() *cobra.Command {
	a := &app{cfg: cliparse.Default(), logger: slog.Default()}

	root := &cobra.Command{
		Use:   "incidentdb",
		Short: "Load security CSV exports into SQL and serve them over HTTP",
		Long: `incidentdb reads cyber_incidents.csv, datasets_metadata.csv and
it_tickets.csv from a data directory, maps each onto a fixed table and
writes it to SQLite or PostgreSQL.

Every flag falls back to an environment variable (DATABASE_TYPE,
DATABASE_URL, DATA_DIR, WRITE_MODE, PORT, SESSION_SALT, LOAD_SCHEDULE,
LOG_LEVEL, LOG_FORMAT). A .env file in the working directory is read
first if present.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cliparse.Resolve(cmd.Flags(), &a.cfg); err != nil {
				return err
			}
			logger, err := logging.Setup(a.cfg.LogLevel, a.cfg.LogFormat)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
	}

	cliparse.BindFlags(root.PersistentFlags(), &a.cfg)

	root.AddCommand(
		newSetupCommand(a),
		newLoadCommand(a),
		newSummaryCommand(a),
		newDemoCommand(a),
		newServeCommand(a),
	)
	return root
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command's
// context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCommand().ExecuteContext(ctx)
}

// openDB connects to the configured database and creates the schema
func (a *app) openDB(ctx context.Context) (*sql.DB, error) {
	dialect, err := db.ParseDialect(a.cfg.DatabaseType)
	if err != nil {
		return nil, err
	}

	conn, err := db.Connect(ctx, dialect, a.cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	if err := db.CreateSchema(conn, dialect); err != nil {
		conn.Close()
		return nil, err
	}
	a.logger.Info("database schema ready", "type", dialect)

	return conn, nil
}

func (a *app) newLoader(conn *sql.DB) *ingest.Loader {
	return ingest.NewLoader(ingest.NewSQLWriter(conn), a.cfg.DataDir, a.logger)
}
