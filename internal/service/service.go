package service

import (
	"context"

	"sitework-backend/internal/domain"
)

// CreateToolTypeInput carries the tool inventory form. SerialNumbers must
// have exactly Quantity entries.
type CreateToolTypeInput struct {
	Name            string            `json:"name"`
	Quantity        int32             `json:"quantity"`
	Status          domain.UnitStatus `json:"status"`
	ConditionNotes  string            `json:"condition_notes"`
	LastMaintenance string            `json:"last_maintenance"`
	SerialNumbers   []string          `json:"serial_numbers"`
}

// SerialLookup is the QR-scan result: the unit, its type, and the open
// assignment if the unit is currently out.
type SerialLookup struct {
	Unit           *domain.ToolUnit   `json:"unit"`
	ToolType       *domain.ToolType   `json:"tool_type"`
	OpenAssignment *domain.Assignment `json:"open_assignment,omitempty"`
}

type InventoryService interface {
	CreateToolType(ctx context.Context, input CreateToolTypeInput) (*domain.ToolType, error)
	UpdateToolType(ctx context.Context, id int32, input CreateToolTypeInput) (*domain.ToolType, error)
	DeleteToolType(ctx context.Context, id int32) error
	ListToolTypes(ctx context.Context, searchTerm string, status domain.UnitStatus) ([]domain.ToolType, error)
	ListAvailableUnits(ctx context.Context) ([]domain.ToolType, error)
	LookupSerial(ctx context.Context, serial string) (*SerialLookup, error)
	SetUnitStatus(ctx context.Context, serial string, status domain.UnitStatus) error
}

type AssignmentService interface {
	Assign(ctx context.Context, projectID int32, serial, assignedDate string, expectedReturn *string) (*domain.Assignment, error)
	AssignMany(ctx context.Context, projectID int32, serials []string, quantity int32, assignedDate string, expectedReturn *string) ([]domain.Assignment, error)
	Return(ctx context.Context, assignmentID int32) (*domain.Assignment, error)
	ListForProject(ctx context.Context, projectID int32) ([]domain.ProjectAssignment, error)
}

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	Get(ctx context.Context, id int32) (*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, search string, status domain.ProjectStatus) ([]domain.Project, error)
}

type RecordService interface {
	Add(ctx context.Context, rec *domain.ResourceRecord) error
	ListByProject(ctx context.Context, projectID int32, kind domain.RecordKind) ([]domain.ResourceRecord, error)
	Delete(ctx context.Context, id int32) error
	Summary(ctx context.Context, projectID int32) (*domain.CostSummary, error)
}

type ReportService interface {
	Utilization(ctx context.Context) (*domain.UtilizationReport, error)
	MaintenanceDue(ctx context.Context) ([]domain.MaintenanceDueItem, error)
}

type EmailService interface {
	SendOverdueSummary(ctx context.Context, overdue []domain.ProjectAssignment) error
	SendMaintenanceReminder(ctx context.Context, due []domain.MaintenanceDueItem) error
}
