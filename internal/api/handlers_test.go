package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sitework-backend/internal/api"
	"sitework-backend/internal/domain"
	"sitework-backend/internal/service"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockInventoryService
type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) CreateToolType(ctx context.Context, input service.CreateToolTypeInput) (*domain.ToolType, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ToolType), args.Error(1)
}
func (m *MockInventoryService) UpdateToolType(ctx context.Context, id int32, input service.CreateToolTypeInput) (*domain.ToolType, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ToolType), args.Error(1)
}
func (m *MockInventoryService) DeleteToolType(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockInventoryService) ListToolTypes(ctx context.Context, searchTerm string, status domain.UnitStatus) ([]domain.ToolType, error) {
	args := m.Called(ctx, searchTerm, status)
	return args.Get(0).([]domain.ToolType), args.Error(1)
}
func (m *MockInventoryService) ListAvailableUnits(ctx context.Context) ([]domain.ToolType, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.ToolType), args.Error(1)
}
func (m *MockInventoryService) LookupSerial(ctx context.Context, serial string) (*service.SerialLookup, error) {
	args := m.Called(ctx, serial)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SerialLookup), args.Error(1)
}
func (m *MockInventoryService) SetUnitStatus(ctx context.Context, serial string, status domain.UnitStatus) error {
	args := m.Called(ctx, serial, status)
	return args.Error(0)
}

// MockAssignmentService
type MockAssignmentService struct {
	mock.Mock
}

func (m *MockAssignmentService) Assign(ctx context.Context, projectID int32, serial, assignedDate string, expectedReturn *string) (*domain.Assignment, error) {
	args := m.Called(ctx, projectID, serial, assignedDate, expectedReturn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assignment), args.Error(1)
}
func (m *MockAssignmentService) AssignMany(ctx context.Context, projectID int32, serials []string, quantity int32, assignedDate string, expectedReturn *string) ([]domain.Assignment, error) {
	args := m.Called(ctx, projectID, serials, quantity, assignedDate, expectedReturn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Assignment), args.Error(1)
}
func (m *MockAssignmentService) Return(ctx context.Context, assignmentID int32) (*domain.Assignment, error) {
	args := m.Called(ctx, assignmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assignment), args.Error(1)
}
func (m *MockAssignmentService) ListForProject(ctx context.Context, projectID int32) ([]domain.ProjectAssignment, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]domain.ProjectAssignment), args.Error(1)
}

type apiEnvelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func TestToolsHandler_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockInventoryService)
		handler := api.NewToolsHandler(svc)

		svc.On("CreateToolType", mock.Anything, mock.AnythingOfType("service.CreateToolTypeInput")).
			Return(&domain.ToolType{ID: 7, Name: "Power Drill"}, nil)

		body := `{"name":"Power Drill","quantity":1,"serial_numbers":["PD-001"]}`
		req := httptest.NewRequest(http.MethodPost, "/v1/tools", strings.NewReader(body))
		w := httptest.NewRecorder()
		handler.Create(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		var env apiEnvelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Contains(t, string(env.Data), "Power Drill")
	})

	t.Run("ValidationErrorIs400", func(t *testing.T) {
		svc := new(MockInventoryService)
		handler := api.NewToolsHandler(svc)

		svc.On("CreateToolType", mock.Anything, mock.Anything).
			Return(nil, domain.Validationf("quantity must be at least 1"))

		req := httptest.NewRequest(http.MethodPost, "/v1/tools", strings.NewReader(`{"name":"x"}`))
		w := httptest.NewRecorder()
		handler.Create(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		handler := api.NewToolsHandler(new(MockInventoryService))

		req := httptest.NewRequest(http.MethodPost, "/v1/tools", strings.NewReader(`{`))
		w := httptest.NewRecorder()
		handler.Create(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAssignmentsHandler_Assign(t *testing.T) {
	t.Run("ConflictIs409", func(t *testing.T) {
		svc := new(MockAssignmentService)
		handler := api.NewAssignmentsHandler(svc)

		svc.On("Assign", mock.Anything, int32(3), "PD-001", "2026-09-01", (*string)(nil)).
			Return(nil, domain.Conflictf("serial %q is %s", "PD-001", domain.UnitStatusNotAvailable))

		body := `{"project_id":3,"serial_number":"PD-001","assigned_date":"2026-09-01"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/assignments", strings.NewReader(body))
		w := httptest.NewRecorder()
		handler.Assign(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		var env apiEnvelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Contains(t, env.Error, "PD-001")
	})

	t.Run("Success", func(t *testing.T) {
		svc := new(MockAssignmentService)
		handler := api.NewAssignmentsHandler(svc)

		svc.On("Assign", mock.Anything, int32(3), "PD-001", "2026-09-01", (*string)(nil)).
			Return(&domain.Assignment{ID: 21, ProjectID: 3, Status: domain.AssignmentStatusAssigned}, nil)

		body := `{"project_id":3,"serial_number":"PD-001","assigned_date":"2026-09-01"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/assignments", strings.NewReader(body))
		w := httptest.NewRecorder()
		handler.Assign(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})
}

func TestAssignmentsHandler_Return(t *testing.T) {
	t.Run("DoubleReturnIs422", func(t *testing.T) {
		svc := new(MockAssignmentService)
		handler := api.NewAssignmentsHandler(svc)

		svc.On("Return", mock.Anything, int32(21)).
			Return(nil, domain.InvalidStatef("assignment %d is already %s", 21, domain.AssignmentStatusReturned))

		r := mux.NewRouter()
		r.HandleFunc("/v1/assignments/{id}/return", handler.Return).Methods("POST")
		req := httptest.NewRequest(http.MethodPost, "/v1/assignments/21/return", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestAssignmentsHandler_ExportForProject(t *testing.T) {
	t.Run("CSV", func(t *testing.T) {
		svc := new(MockAssignmentService)
		handler := api.NewAssignmentsHandler(svc)

		expected := "2026-09-10"
		svc.On("ListForProject", mock.Anything, int32(3)).Return([]domain.ProjectAssignment{
			{
				Assignment:   domain.Assignment{ID: 21, ProjectID: 3, AssignedDate: "2026-08-20", ExpectedReturnDate: &expected},
				SerialNumber: "PD-001",
				ToolName:     "Power Drill",
			},
		}, nil)

		r := mux.NewRouter()
		r.HandleFunc("/v1/projects/{id}/assignments/export", handler.ExportForProject).Methods("GET")
		req := httptest.NewRequest(http.MethodGet, "/v1/projects/3/assignments/export", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Body.String(), "Power Drill,PD-001,2026-08-20,2026-09-10,false")
	})
}

func TestToolsHandler_Lookup(t *testing.T) {
	t.Run("NotFoundIs404", func(t *testing.T) {
		svc := new(MockInventoryService)
		handler := api.NewToolsHandler(svc)

		svc.On("LookupSerial", mock.Anything, "NOPE").
			Return(nil, domain.NotFoundf("serial %q does not exist", "NOPE"))

		r := mux.NewRouter()
		r.HandleFunc("/v1/tools/lookup/{serial}", handler.Lookup).Methods("GET")
		req := httptest.NewRequest(http.MethodGet, "/v1/tools/lookup/NOPE", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
