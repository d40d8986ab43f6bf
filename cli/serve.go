// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cli

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/secopslab/incidentdb/ingest"
	"github.com/secopslab/incidentdb/middleware"
	"github.com/secopslab/incidentdb/router"
	"github.com/secopslab/incidentdb/scheduler"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API, optionally reloading CSV files on a schedule",
		Example: `  SESSION_SALT=change-me incidentdb serve -p 3318
  incidentdb serve --session-salt dev --load-schedule "@every 1h"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.RequireSessionSalt(); err != nil {
				return err
			}
			ctx := cmd.Context()

			conn, err := a.openDB(ctx)
			if err != nil {
				return err
			}
			defer conn.Close()

			loader := a.newLoader(conn)

			if a.cfg.LoadSchedule != "" {
				mode, err := ingest.ParseWriteMode(a.cfg.WriteMode)
				if err != nil {
					return err
				}
				sched, err := scheduler.New(loader, a.cfg.LoadSchedule, mode, a.logger)
				if err != nil {
					return err
				}
				sched.Start()
				defer sched.Stop()
			}

			server := http.Server{
				Handler: middleware.CORS(router.NewRouter(conn, a.cfg, loader)),
				Addr:    ":" + strconv.Itoa(a.cfg.Port),
			}

			go func() {
				// Wait for Ctrl-C or SIGTERM
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				server.Shutdown(shutdownCtx)
			}()

			a.logger.Info("listening", "port", a.cfg.Port, "data_dir", loader.DataDir())
			err = server.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("server closed", "error", err)
				return err
			}
			a.logger.Info("server closed")
			return nil
		},
	}
}
