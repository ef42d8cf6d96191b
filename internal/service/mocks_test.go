package service_test

import (
	"context"

	"sitework-backend/internal/domain"
	"sitework-backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockToolRepo
type MockToolRepo struct {
	mock.Mock
}

func (m *MockToolRepo) CreateToolType(ctx context.Context, t *domain.ToolType, serials []string) error {
	args := m.Called(ctx, t, serials)
	return args.Error(0)
}
func (m *MockToolRepo) GetToolType(ctx context.Context, id int32) (*domain.ToolType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ToolType), args.Error(1)
}
func (m *MockToolRepo) UpdateToolType(ctx context.Context, t *domain.ToolType, serials []string) error {
	args := m.Called(ctx, t, serials)
	return args.Error(0)
}
func (m *MockToolRepo) DeleteToolType(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockToolRepo) ListToolTypes(ctx context.Context, filter repository.ToolFilter) ([]domain.ToolType, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.ToolType), args.Error(1)
}
func (m *MockToolRepo) ListAvailableUnits(ctx context.Context) ([]domain.ToolType, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.ToolType), args.Error(1)
}
func (m *MockToolRepo) GetUnitBySerial(ctx context.Context, serial string) (*domain.ToolUnit, *domain.ToolType, error) {
	args := m.Called(ctx, serial)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.ToolUnit), args.Get(1).(*domain.ToolType), args.Error(2)
}
func (m *MockToolRepo) SetUnitStatus(ctx context.Context, serial string, from, to domain.UnitStatus) error {
	args := m.Called(ctx, serial, from, to)
	return args.Error(0)
}
func (m *MockToolRepo) CountOpenAssignmentsForType(ctx context.Context, toolTypeID int32) (int32, error) {
	args := m.Called(ctx, toolTypeID)
	return args.Get(0).(int32), args.Error(1)
}

// MockAssignmentRepo
type MockAssignmentRepo struct {
	mock.Mock
}

func (m *MockAssignmentRepo) Assign(ctx context.Context, a *domain.Assignment, serial string) error {
	args := m.Called(ctx, a, serial)
	return args.Error(0)
}
func (m *MockAssignmentRepo) AssignMany(ctx context.Context, as []*domain.Assignment, serials []string) error {
	args := m.Called(ctx, as, serials)
	return args.Error(0)
}
func (m *MockAssignmentRepo) GetByID(ctx context.Context, id int32) (*domain.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assignment), args.Error(1)
}
func (m *MockAssignmentRepo) Return(ctx context.Context, id int32, returnDate string) (*domain.Assignment, error) {
	args := m.Called(ctx, id, returnDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assignment), args.Error(1)
}
func (m *MockAssignmentRepo) GetOpenForSerial(ctx context.Context, serial string) (*domain.Assignment, error) {
	args := m.Called(ctx, serial)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assignment), args.Error(1)
}
func (m *MockAssignmentRepo) ListOpenByProject(ctx context.Context, projectID int32) ([]domain.ProjectAssignment, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]domain.ProjectAssignment), args.Error(1)
}
func (m *MockAssignmentRepo) MarkOverdue(ctx context.Context, asOf string) (int64, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockAssignmentRepo) ListOverdue(ctx context.Context) ([]domain.ProjectAssignment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.ProjectAssignment), args.Error(1)
}

// MockProjectRepo
type MockProjectRepo struct {
	mock.Mock
}

func (m *MockProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockProjectRepo) GetByID(ctx context.Context, id int32) (*domain.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}
func (m *MockProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockProjectRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockProjectRepo) List(ctx context.Context, search string, status domain.ProjectStatus) ([]domain.Project, error) {
	args := m.Called(ctx, search, status)
	return args.Get(0).([]domain.Project), args.Error(1)
}

// MockRecordRepo
type MockRecordRepo struct {
	mock.Mock
}

func (m *MockRecordRepo) Create(ctx context.Context, rec *domain.ResourceRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}
func (m *MockRecordRepo) ListByProject(ctx context.Context, projectID int32, kind domain.RecordKind) ([]domain.ResourceRecord, error) {
	args := m.Called(ctx, projectID, kind)
	return args.Get(0).([]domain.ResourceRecord), args.Error(1)
}
func (m *MockRecordRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockRecordRepo) Summary(ctx context.Context, projectID int32) (*domain.CostSummary, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CostSummary), args.Error(1)
}

// MockReportRepo
type MockReportRepo struct {
	mock.Mock
}

func (m *MockReportRepo) Utilization(ctx context.Context) (*domain.UtilizationReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UtilizationReport), args.Error(1)
}
func (m *MockReportRepo) MaintenanceDue(ctx context.Context, cutoff string) ([]domain.MaintenanceDueItem, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.MaintenanceDueItem), args.Error(1)
}
