package models

import "time"

// Table names
const (
	TableUsers            = "users"
	TableCyberIncidents   = "cyber_incidents"
	TableDatasetsMetadata = "datasets_metadata"
	TableITTickets        = "it_tickets"
)

// Incident severity constants
const (
	SeverityLow      = "Low"
	SeverityMedium   = "Medium"
	SeverityHigh     = "High"
	SeverityCritical = "Critical"
)

// Incident status constants
const (
	StatusOpen          = "Open"
	StatusInvestigating = "Investigating"
	StatusResolved      = "Resolved"
	StatusClosed        = "Closed"
)

// User role constants
const (
	RoleUser    = "user"
	RoleAnalyst = "analyst"
	RoleAdmin   = "admin"
)

// Defaults used when a CSV source does not carry a value.
const (
	DefaultDate               = "2024-01-01"
	DefaultIncidentType       = "Unknown"
	DefaultSeverity           = SeverityMedium
	DefaultStatus             = StatusOpen
	DefaultReporter           = "System"
	DefaultDatasetName        = "Unknown Dataset"
	DefaultDatasetSource      = "Unknown Source"
	DefaultRecordCount        = 0
	DefaultDatasetDescription = "No description available"
	DefaultPriority           = "Medium"
	DefaultTicketDescription  = "No description"
	DefaultAssignee           = "Unassigned"
)

// Ticket IDs are TicketIDPrefix followed by the row ordinal plus TicketIDOffset.
const (
	TicketIDPrefix = "TICKET_"
	TicketIDOffset = 1000
)

// IncidentSeverities lists the accepted severity values.
var IncidentSeverities = []string{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

// IncidentStatuses lists the accepted status values.
var IncidentStatuses = []string{StatusOpen, StatusInvestigating, StatusResolved, StatusClosed}

// UserRoles lists the accepted user roles.
var UserRoles = []string{RoleUser, RoleAnalyst, RoleAdmin}

// Request types

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateIncidentRequest struct {
	DateReported string `json:"date_reported"`
	IncidentType string `json:"incident_type"`
	Severity     string `json:"severity"`
	Status       string `json:"status"`
	Description  string `json:"description"`
}

type UpdateIncidentStatusRequest struct {
	Status string `json:"status"`
}

// Response types

type RegisterResponse struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type CreateIncidentResponse struct {
	IncidentID int64 `json:"incident_id"`
}

// table name -> row count
type SummaryResponse struct {
	Tables map[string]int64 `json:"tables"`
}

// Domain types

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type Incident struct {
	ID           int64  `json:"id"`
	DateReported string `json:"date_reported"`
	IncidentType string `json:"incident_type"`
	Severity     string `json:"severity"`
	Status       string `json:"status"`
	Description  string `json:"description"`
	ReportedBy   string `json:"reported_by"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
