package repository

import (
	"context"

	"sitework-backend/internal/domain"
)

// ToolFilter narrows ListToolTypes. Zero values mean "no constraint".
type ToolFilter struct {
	SearchTerm string
	Status     domain.UnitStatus
}

type ToolRepository interface {
	// CreateToolType inserts the type and one unit per serial as a single
	// transaction; the type insert is rolled back if any unit insert fails.
	CreateToolType(ctx context.Context, t *domain.ToolType, serials []string) error
	GetToolType(ctx context.Context, id int32) (*domain.ToolType, error)
	// UpdateToolType rewrites the type row and reconciles its unit set
	// against serials in one transaction.
	UpdateToolType(ctx context.Context, t *domain.ToolType, serials []string) error
	DeleteToolType(ctx context.Context, id int32) error
	ListToolTypes(ctx context.Context, filter ToolFilter) ([]domain.ToolType, error)
	ListAvailableUnits(ctx context.Context) ([]domain.ToolType, error)
	GetUnitBySerial(ctx context.Context, serial string) (*domain.ToolUnit, *domain.ToolType, error)
	// SetUnitStatus moves a unit from one status to another, failing with
	// domain.ErrConflict when the current status differs from `from`.
	SetUnitStatus(ctx context.Context, serial string, from, to domain.UnitStatus) error
	CountOpenAssignmentsForType(ctx context.Context, toolTypeID int32) (int32, error)
}

type AssignmentRepository interface {
	// Assign flips the unit to Not Available and inserts the assignment row
	// in one transaction. The unit update is conditional on the unit still
	// being Available, so concurrent callers cannot both succeed.
	Assign(ctx context.Context, a *domain.Assignment, serial string) error
	// AssignMany applies Assign for each serial inside a single transaction;
	// any failure rolls back every assignment of the call.
	AssignMany(ctx context.Context, as []*domain.Assignment, serials []string) error
	GetByID(ctx context.Context, id int32) (*domain.Assignment, error)
	// Return closes an open assignment and restores the unit to Available
	// unless the registry moved it to Under Maintenance meanwhile.
	Return(ctx context.Context, id int32, returnDate string) (*domain.Assignment, error)
	GetOpenForSerial(ctx context.Context, serial string) (*domain.Assignment, error)
	ListOpenByProject(ctx context.Context, projectID int32) ([]domain.ProjectAssignment, error)
	// MarkOverdue flags open assignments whose expected return date passed.
	MarkOverdue(ctx context.Context, asOf string) (int64, error)
	ListOverdue(ctx context.Context) ([]domain.ProjectAssignment, error)
}

type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id int32) (*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, search string, status domain.ProjectStatus) ([]domain.Project, error)
}

type RecordRepository interface {
	Create(ctx context.Context, rec *domain.ResourceRecord) error
	ListByProject(ctx context.Context, projectID int32, kind domain.RecordKind) ([]domain.ResourceRecord, error)
	Delete(ctx context.Context, id int32) error
	Summary(ctx context.Context, projectID int32) (*domain.CostSummary, error)
}

type ReportRepository interface {
	Utilization(ctx context.Context) (*domain.UtilizationReport, error)
	MaintenanceDue(ctx context.Context, cutoff string) ([]domain.MaintenanceDueItem, error)
}
