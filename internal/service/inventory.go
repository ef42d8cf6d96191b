package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"sitework-backend/internal/domain"
	"sitework-backend/internal/repository"
)

const dateLayout = "2006-01-02"

type inventoryService struct {
	toolRepo       repository.ToolRepository
	assignmentRepo repository.AssignmentRepository
}

func NewInventoryService(toolRepo repository.ToolRepository, assignmentRepo repository.AssignmentRepository) InventoryService {
	return &inventoryService{
		toolRepo:       toolRepo,
		assignmentRepo: assignmentRepo,
	}
}

func validateToolTypeInput(input *CreateToolTypeInput) error {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return domain.Validationf("tool name is required")
	}
	if input.Quantity < 1 {
		return domain.Validationf("quantity must be at least 1")
	}
	if int32(len(input.SerialNumbers)) != input.Quantity {
		return domain.Validationf("expected %d serial numbers, got %d", input.Quantity, len(input.SerialNumbers))
	}
	seen := make(map[string]bool, len(input.SerialNumbers))
	for i, serial := range input.SerialNumbers {
		serial = strings.TrimSpace(serial)
		if serial == "" {
			return domain.Validationf("serial number %d is empty", i+1)
		}
		if seen[serial] {
			return domain.Validationf("duplicate serial number %q", serial)
		}
		seen[serial] = true
		input.SerialNumbers[i] = serial
	}
	if input.Status == "" {
		input.Status = domain.UnitStatusAvailable
	}
	if !input.Status.Valid() {
		return domain.Validationf("unknown status %q", input.Status)
	}
	if input.LastMaintenance == "" {
		input.LastMaintenance = time.Now().Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, input.LastMaintenance); err != nil {
		return domain.Validationf("last maintenance date %q is not YYYY-MM-DD", input.LastMaintenance)
	}
	return nil
}

func (s *inventoryService) CreateToolType(ctx context.Context, input CreateToolTypeInput) (*domain.ToolType, error) {
	if err := validateToolTypeInput(&input); err != nil {
		return nil, err
	}
	t := &domain.ToolType{
		Name:            input.Name,
		Quantity:        input.Quantity,
		Status:          input.Status,
		ConditionNotes:  input.ConditionNotes,
		LastMaintenance: input.LastMaintenance,
	}
	if err := s.toolRepo.CreateToolType(ctx, t, input.SerialNumbers); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *inventoryService) UpdateToolType(ctx context.Context, id int32, input CreateToolTypeInput) (*domain.ToolType, error) {
	if err := validateToolTypeInput(&input); err != nil {
		return nil, err
	}
	t := &domain.ToolType{
		ID:              id,
		Name:            input.Name,
		Quantity:        input.Quantity,
		Status:          input.Status,
		ConditionNotes:  input.ConditionNotes,
		LastMaintenance: input.LastMaintenance,
	}
	if err := s.toolRepo.UpdateToolType(ctx, t, input.SerialNumbers); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *inventoryService) DeleteToolType(ctx context.Context, id int32) error {
	return s.toolRepo.DeleteToolType(ctx, id)
}

func (s *inventoryService) ListToolTypes(ctx context.Context, searchTerm string, status domain.UnitStatus) ([]domain.ToolType, error) {
	if status != "" && !status.Valid() {
		return nil, domain.Validationf("unknown status %q", status)
	}
	return s.toolRepo.ListToolTypes(ctx, repository.ToolFilter{
		SearchTerm: strings.TrimSpace(searchTerm),
		Status:     status,
	})
}

func (s *inventoryService) ListAvailableUnits(ctx context.Context) ([]domain.ToolType, error) {
	return s.toolRepo.ListAvailableUnits(ctx)
}

func (s *inventoryService) LookupSerial(ctx context.Context, serial string) (*SerialLookup, error) {
	serial = strings.TrimSpace(serial)
	if serial == "" {
		return nil, domain.Validationf("serial number is required")
	}
	unit, toolType, err := s.toolRepo.GetUnitBySerial(ctx, serial)
	if err != nil {
		return nil, err
	}
	lookup := &SerialLookup{Unit: unit, ToolType: toolType}

	open, err := s.assignmentRepo.GetOpenForSerial(ctx, serial)
	switch {
	case err == nil:
		lookup.OpenAssignment = open
	case errors.Is(err, domain.ErrNotFound):
		// Unit is not out on a project.
	default:
		return nil, err
	}
	return lookup, nil
}

// SetUnitStatus moves a unit between Available and Under Maintenance.
// Not Available is reserved for the assignment ledger.
func (s *inventoryService) SetUnitStatus(ctx context.Context, serial string, status domain.UnitStatus) error {
	serial = strings.TrimSpace(serial)
	if serial == "" {
		return domain.Validationf("serial number is required")
	}
	var from domain.UnitStatus
	switch status {
	case domain.UnitStatusUnderMaintenance:
		from = domain.UnitStatusAvailable
	case domain.UnitStatusAvailable:
		from = domain.UnitStatusUnderMaintenance
	default:
		return domain.Validationf("status %q cannot be set directly", status)
	}
	return s.toolRepo.SetUnitStatus(ctx, serial, from, status)
}
