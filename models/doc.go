// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types, plus the named
defaults applied during CSV ingestion.

# Request Types

Types for parsing incoming JSON:

  - RegisterRequest: username, password, role
  - LoginRequest: username, password
  - CreateIncidentRequest: date_reported, incident_type, severity, status, description
  - UpdateIncidentStatusRequest: status

# Response Types

  - RegisterResponse: user_id, username, role
  - LoginResponse: token, username, role
  - CreateIncidentResponse: incident_id
  - SummaryResponse: tables (row count per table)
  - ErrorResponse: error, message

# Domain Types

  - User: registered account (password hash never serialized)
  - Incident: one row of cyber_incidents

# Ingestion Defaults

Values substituted when a CSV column is absent or empty:

	DefaultDate               = "2024-01-01"
	DefaultIncidentType       = "Unknown"
	DefaultSeverity           = "Medium"
	DefaultStatus             = "Open"
	DefaultReporter           = "System"
	DefaultDatasetName        = "Unknown Dataset"
	DefaultDatasetSource      = "Unknown Source"
	DefaultRecordCount        = 0
	DefaultDatasetDescription = "No description available"
	DefaultPriority           = "Medium"
	DefaultTicketDescription  = "No description"
	DefaultAssignee           = "Unassigned"

Ticket IDs are built as TicketIDPrefix + (row ordinal + TicketIDOffset),
so the first ticket in a file is TICKET_1000.

# Constants

Severities: Low, Medium, High, Critical.
Statuses: Open, Investigating, Resolved, Closed.
Roles: user, analyst, admin.
*/
package models
