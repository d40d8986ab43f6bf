// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ingest loads the known CSV files into their database tables.

# Files

Three files are read from the data directory, in this order:

	cyber_incidents.csv   → cyber_incidents
	datasets_metadata.csv → datasets_metadata
	it_tickets.csv        → it_tickets

Each file must have a header row. Source column names are looked up with
Record.Get, which falls back to a default from package models when the
column is absent or the cell is blank.

# Column Mapping

	cyber_incidents:   Date → date_reported, Type → incident_type,
	                   "Title - Description" → description,
	                   severity/status/reported_by are fixed defaults
	datasets_metadata: dataset_name, source_organization → source,
	                   last_updated, description; record_count is always 0
	it_tickets:        ticket_id = TICKET_<1000+row>, Category → priority,
	                   Customer Input → description; date_created, status
	                   and assigned_to are fixed defaults

Table.Transform projects every mapped row onto the table's fixed columns.

# Loading

	loader := ingest.NewLoader(ingest.NewSQLWriter(conn), "DATA", logger)
	res, err := loader.LoadAll(ctx, ingest.WriteModeReplace)

WriteModeReplace empties each table before writing; WriteModeAppend keeps
existing rows. Each table is written in its own transaction.

A missing file, an empty file, or a file that fails to parse or write is
logged and recorded in Result.Tables; the other files are still loaded.
Result.Total is the number of rows written across all tables.
*/
package ingest
