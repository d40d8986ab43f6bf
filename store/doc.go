// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store holds the single-row database operations for users and
incidents. All functions take the *sql.DB explicitly and use $N
placeholders, which both supported drivers accept.

# Users

	user, err := store.RegisterUser(ctx, conn, "alice", "SecurePass123!", "analyst")
	user, err = store.LoginUser(ctx, conn, "alice", "SecurePass123!")

RegisterUser returns ErrUserExists for a taken username and ErrInvalidUser
for an empty username, a short password or an unknown role. LoginUser
returns ErrUserNotFound or ErrInvalidPassword.

# Incidents

	id, err := store.InsertIncident(ctx, conn, models.Incident{...})
	all, err := store.GetAllIncidents(ctx, conn)
	inc, err := store.GetIncident(ctx, conn, id)
	err = store.UpdateIncidentStatus(ctx, conn, id, models.StatusResolved)
	err = store.DeleteIncident(ctx, conn, id)

Missing incidents yield ErrIncidentNotFound; bad input yields
ErrInvalidIncident.
*/
package store
