package ingest

import (
	"fmt"
	"strconv"

	"github.com/secopslab/incidentdb/models"
)

// Row is one transformed output row keyed by destination column.
type Row map[string]any

// Table pairs a CSV file with its destination table and column mapping.
type Table struct {
	File    string
	Name    string
	Columns []string
	// Map builds the output row for rec, the ordinal-th data row of File.
	Map func(rec Record, ordinal int) Row
}

// Transform maps every record and projects it onto the table's columns,
// so each row carries exactly Columns regardless of the source header.
func (t Table) Transform(records []Record) []Row {
	rows := make([]Row, 0, len(records))
	for i, rec := range records {
		mapped := t.Map(rec, i)
		row := make(Row, len(t.Columns))
		for _, col := range t.Columns {
			row[col] = mapped[col]
		}
		rows = append(rows, row)
	}
	return rows
}

// values returns row's values in column order.
func (t Table) values(row Row) []any {
	vals := make([]any, len(t.Columns))
	for i, col := range t.Columns {
		vals[i] = row[col]
	}
	return vals
}

// Tables returns the known CSV files in load order.
func Tables() []Table {
	return []Table{cyberIncidents, datasetsMetadata, itTickets}
}

// Source data does not carry severity, status or reporter.
var cyberIncidents = Table{
	File:    "cyber_incidents.csv",
	Name:    models.TableCyberIncidents,
	Columns: []string{"date_reported", "incident_type", "severity", "status", "description", "reported_by"},
	Map: func(rec Record, _ int) Row {
		return Row{
			"date_reported": rec.Get("Date", models.DefaultDate),
			"incident_type": rec.Get("Type", models.DefaultIncidentType),
			"severity":      models.DefaultSeverity,
			"status":        models.DefaultStatus,
			"description":   fmt.Sprintf("%s - %s", rec.Get("Title", ""), rec.Get("Description", "")),
			"reported_by":   models.DefaultReporter,
		}
	},
}

var datasetsMetadata = Table{
	File:    "datasets_metadata.csv",
	Name:    models.TableDatasetsMetadata,
	Columns: []string{"dataset_name", "source", "record_count", "last_updated", "description"},
	Map: func(rec Record, _ int) Row {
		return Row{
			"dataset_name": rec.Get("dataset_name", models.DefaultDatasetName),
			"source":       rec.Get("source_organization", models.DefaultDatasetSource),
			"record_count": models.DefaultRecordCount,
			"last_updated": rec.Get("last_updated", models.DefaultDate),
			"description":  rec.Get("description", models.DefaultDatasetDescription),
		}
	},
}

var itTickets = Table{
	File:    "it_tickets.csv",
	Name:    models.TableITTickets,
	Columns: []string{"ticket_id", "date_created", "priority", "status", "description", "assigned_to"},
	Map: func(rec Record, ordinal int) Row {
		return Row{
			"ticket_id":    TicketID(ordinal),
			"date_created": models.DefaultDate,
			"priority":     rec.Get("Category", models.DefaultPriority),
			"status":       models.DefaultStatus,
			"description":  rec.Get("Customer Input", models.DefaultTicketDescription),
			"assigned_to":  models.DefaultAssignee,
		}
	},
}

// TicketID returns the synthesized ticket identifier for a zero-based row ordinal.
func TicketID(ordinal int) string {
	return models.TicketIDPrefix + strconv.Itoa(ordinal+models.TicketIDOffset)
}
