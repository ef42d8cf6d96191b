package service_test

import (
	"context"
	"testing"

	"sitework-backend/internal/domain"
	"sitework-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestInventoryService_CreateToolType(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockToolRepo)
		svc := service.NewInventoryService(repo, new(MockAssignmentRepo))

		repo.On("CreateToolType", ctx, mock.AnythingOfType("*domain.ToolType"), []string{"PD-001", "PD-002"}).
			Return(nil)

		tool, err := svc.CreateToolType(ctx, service.CreateToolTypeInput{
			Name:            "Power Drill",
			Quantity:        2,
			LastMaintenance: "2026-08-01",
			SerialNumbers:   []string{"PD-001", "PD-002"},
		})
		assert.NoError(t, err)
		assert.Equal(t, "Power Drill", tool.Name)
		assert.Equal(t, domain.UnitStatusAvailable, tool.Status)
		repo.AssertExpectations(t)
	})

	t.Run("SerialCountMismatch", func(t *testing.T) {
		repo := new(MockToolRepo)
		svc := service.NewInventoryService(repo, new(MockAssignmentRepo))

		_, err := svc.CreateToolType(ctx, service.CreateToolTypeInput{
			Name:          "Power Drill",
			Quantity:      3,
			SerialNumbers: []string{"PD-001", "PD-002"},
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
		repo.AssertNotCalled(t, "CreateToolType")
	})

	t.Run("DuplicateSerials", func(t *testing.T) {
		repo := new(MockToolRepo)
		svc := service.NewInventoryService(repo, new(MockAssignmentRepo))

		_, err := svc.CreateToolType(ctx, service.CreateToolTypeInput{
			Name:          "Power Drill",
			Quantity:      2,
			SerialNumbers: []string{"PD-001", "PD-001"},
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("BadMaintenanceDate", func(t *testing.T) {
		repo := new(MockToolRepo)
		svc := service.NewInventoryService(repo, new(MockAssignmentRepo))

		_, err := svc.CreateToolType(ctx, service.CreateToolTypeInput{
			Name:            "Power Drill",
			Quantity:        1,
			LastMaintenance: "08/01/2026",
			SerialNumbers:   []string{"PD-001"},
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestInventoryService_LookupSerial(t *testing.T) {
	ctx := context.Background()

	t.Run("UnitOnProject", func(t *testing.T) {
		toolRepo := new(MockToolRepo)
		assignmentRepo := new(MockAssignmentRepo)
		svc := service.NewInventoryService(toolRepo, assignmentRepo)

		unit := &domain.ToolUnit{ID: 11, SerialNumber: "PD-001", Status: domain.UnitStatusNotAvailable}
		toolType := &domain.ToolType{ID: 7, Name: "Power Drill"}
		open := &domain.Assignment{ID: 21, ProjectID: 3, Status: domain.AssignmentStatusAssigned}

		toolRepo.On("GetUnitBySerial", ctx, "PD-001").Return(unit, toolType, nil)
		assignmentRepo.On("GetOpenForSerial", ctx, "PD-001").Return(open, nil)

		lookup, err := svc.LookupSerial(ctx, "PD-001")
		assert.NoError(t, err)
		assert.Equal(t, int32(21), lookup.OpenAssignment.ID)
	})

	t.Run("UnitIdle", func(t *testing.T) {
		toolRepo := new(MockToolRepo)
		assignmentRepo := new(MockAssignmentRepo)
		svc := service.NewInventoryService(toolRepo, assignmentRepo)

		unit := &domain.ToolUnit{ID: 11, SerialNumber: "PD-001", Status: domain.UnitStatusAvailable}
		toolType := &domain.ToolType{ID: 7, Name: "Power Drill"}

		toolRepo.On("GetUnitBySerial", ctx, "PD-001").Return(unit, toolType, nil)
		assignmentRepo.On("GetOpenForSerial", ctx, "PD-001").
			Return(nil, domain.NotFoundf("no open assignment for serial %q", "PD-001"))

		lookup, err := svc.LookupSerial(ctx, "PD-001")
		assert.NoError(t, err)
		assert.Nil(t, lookup.OpenAssignment)
	})

	t.Run("UnknownSerial", func(t *testing.T) {
		toolRepo := new(MockToolRepo)
		svc := service.NewInventoryService(toolRepo, new(MockAssignmentRepo))

		toolRepo.On("GetUnitBySerial", ctx, "NOPE").
			Return(nil, nil, domain.NotFoundf("serial %q does not exist", "NOPE"))

		_, err := svc.LookupSerial(ctx, "NOPE")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestInventoryService_SetUnitStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("ToMaintenance", func(t *testing.T) {
		repo := new(MockToolRepo)
		svc := service.NewInventoryService(repo, new(MockAssignmentRepo))

		repo.On("SetUnitStatus", ctx, "PD-001", domain.UnitStatusAvailable, domain.UnitStatusUnderMaintenance).
			Return(nil)

		err := svc.SetUnitStatus(ctx, "PD-001", domain.UnitStatusUnderMaintenance)
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("BackToAvailable", func(t *testing.T) {
		repo := new(MockToolRepo)
		svc := service.NewInventoryService(repo, new(MockAssignmentRepo))

		repo.On("SetUnitStatus", ctx, "PD-001", domain.UnitStatusUnderMaintenance, domain.UnitStatusAvailable).
			Return(nil)

		err := svc.SetUnitStatus(ctx, "PD-001", domain.UnitStatusAvailable)
		assert.NoError(t, err)
	})

	t.Run("NotAvailableIsReserved", func(t *testing.T) {
		repo := new(MockToolRepo)
		svc := service.NewInventoryService(repo, new(MockAssignmentRepo))

		err := svc.SetUnitStatus(ctx, "PD-001", domain.UnitStatusNotAvailable)
		assert.ErrorIs(t, err, domain.ErrValidation)
		repo.AssertNotCalled(t, "SetUnitStatus")
	})
}

func TestInventoryService_ListToolTypes(t *testing.T) {
	ctx := context.Background()

	t.Run("InvalidStatus", func(t *testing.T) {
		repo := new(MockToolRepo)
		svc := service.NewInventoryService(repo, new(MockAssignmentRepo))

		_, err := svc.ListToolTypes(ctx, "", domain.UnitStatus("Broken"))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
