// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/secopslab/incidentdb/models"
	"github.com/secopslab/incidentdb/store"
)

// Demo account and incident
const (
	demoUsername = "alice"
	demoPassword = "SecurePass123!"
	demoRole     = models.RoleAnalyst
)

var demoIncident = models.Incident{
	DateReported: "2024-11-05",
	IncidentType: "Phishing",
	Severity:     models.SeverityHigh,
	Status:       models.StatusOpen,
	Description:  "Test incident",
	ReportedBy:   demoUsername,
}

func newDemoCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run setup, then exercise authentication and incident CRUD",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, strings.Repeat("=", 60))
			fmt.Fprintln(out, "incidentdb demo")
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

			fmt.Fprintln(out, "\n--- Authentication ---")
			_, err = store.RegisterUser(ctx, conn, demoUsername, demoPassword, demoRole)
			switch {
			case errors.Is(err, store.ErrUserExists):
				fmt.Fprintf(out, "Register: user %q already exists\n", demoUsername)
			case err != nil:
				return err
			default:
				fmt.Fprintf(out, "Register: user %q registered as %s\n", demoUsername, demoRole)
			}

			user, err := store.LoginUser(ctx, conn, demoUsername, demoPassword)
			if err != nil {
				return fmt.Errorf("demo login failed: %w", err)
			}
			fmt.Fprintf(out, "Login: welcome, %s (%s)\n", user.Username, user.Role)

			fmt.Fprintln(out, "\n--- Incident CRUD ---")
			id, err := store.InsertIncident(ctx, conn, demoIncident)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Created incident #%d\n", id)

			incidents, err := store.GetAllIncidents(ctx, conn)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Total incidents: %d\n", len(incidents))

			fmt.Fprintln(out, "Demo completed")
			return nil
		},
	}
}
