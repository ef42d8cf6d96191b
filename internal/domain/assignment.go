package domain

type AssignmentStatus string

const (
	AssignmentStatusAssigned AssignmentStatus = "Assigned"
	AssignmentStatusReturned AssignmentStatus = "Returned"
)

// Assignment links one tool unit to one project for a time span.
// At most one assignment per unit may be in status Assigned; the database
// enforces this with a partial unique index on open rows.
type Assignment struct {
	ID                 int32            `json:"id"`
	ProjectID          int32            `json:"project_id"`
	ToolSerialID       int32            `json:"tool_serial_id"`
	AssignedDate       string           `json:"assigned_date"`
	ExpectedReturnDate *string          `json:"expected_return_date,omitempty"`
	ReturnDate         *string          `json:"return_date,omitempty"`
	Status             AssignmentStatus `json:"status"`
	Overdue            bool             `json:"overdue"`
	CreatedOn          string           `json:"created_on"`
	UpdatedOn          string           `json:"updated_on"`
}

// ProjectAssignment is an assignment joined with its unit and tool type,
// shaped for the per-project tools table.
type ProjectAssignment struct {
	Assignment
	SerialNumber string     `json:"serial_number"`
	ToolName     string     `json:"tool_name"`
	UnitStatus   UnitStatus `json:"unit_status"`
}
