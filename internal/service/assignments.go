package service

import (
	"context"
	"strings"
	"time"

	"sitework-backend/internal/domain"
	"sitework-backend/internal/repository"
)

type assignmentService struct {
	assignmentRepo repository.AssignmentRepository
	projectRepo    repository.ProjectRepository
}

func NewAssignmentService(assignmentRepo repository.AssignmentRepository, projectRepo repository.ProjectRepository) AssignmentService {
	return &assignmentService{
		assignmentRepo: assignmentRepo,
		projectRepo:    projectRepo,
	}
}

func parseAssignmentDates(assignedDate string, expectedReturn *string) (string, *string, error) {
	if assignedDate == "" {
		assignedDate = time.Now().Format(dateLayout)
	}
	assigned, err := time.Parse(dateLayout, assignedDate)
	if err != nil {
		return "", nil, domain.Validationf("assigned date %q is not YYYY-MM-DD", assignedDate)
	}
	if expectedReturn != nil {
		expected, err := time.Parse(dateLayout, *expectedReturn)
		if err != nil {
			return "", nil, domain.Validationf("expected return date %q is not YYYY-MM-DD", *expectedReturn)
		}
		if expected.Before(assigned) {
			return "", nil, domain.Validationf("expected return date is before assigned date")
		}
	}
	return assignedDate, expectedReturn, nil
}

func (s *assignmentService) Assign(ctx context.Context, projectID int32, serial, assignedDate string, expectedReturn *string) (*domain.Assignment, error) {
	serial = strings.TrimSpace(serial)
	if serial == "" {
		return nil, domain.Validationf("serial number is required")
	}
	assignedDate, expectedReturn, err := parseAssignmentDates(assignedDate, expectedReturn)
	if err != nil {
		return nil, err
	}
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	a := &domain.Assignment{
		ProjectID:          projectID,
		AssignedDate:       assignedDate,
		ExpectedReturnDate: expectedReturn,
	}
	if err := s.assignmentRepo.Assign(ctx, a, serial); err != nil {
		return nil, err
	}
	return a, nil
}

// AssignMany hands out a batch of units in one all-or-nothing step. The
// declared quantity must match the serial count so a mis-built picker
// selection is rejected before touching the store.
func (s *assignmentService) AssignMany(ctx context.Context, projectID int32, serials []string, quantity int32, assignedDate string, expectedReturn *string) ([]domain.Assignment, error) {
	if int32(len(serials)) != quantity {
		return nil, domain.Validationf("declared quantity %d does not match %d selected serials", quantity, len(serials))
	}
	if len(serials) == 0 {
		return nil, domain.Validationf("no serial numbers selected")
	}
	seen := make(map[string]bool, len(serials))
	for i, serial := range serials {
		serial = strings.TrimSpace(serial)
		if serial == "" {
			return nil, domain.Validationf("serial number %d is empty", i+1)
		}
		if seen[serial] {
			return nil, domain.Validationf("serial %q selected twice", serial)
		}
		seen[serial] = true
		serials[i] = serial
	}
	assignedDate, expectedReturn, err := parseAssignmentDates(assignedDate, expectedReturn)
	if err != nil {
		return nil, err
	}
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	as := make([]*domain.Assignment, len(serials))
	for i := range serials {
		as[i] = &domain.Assignment{
			ProjectID:          projectID,
			AssignedDate:       assignedDate,
			ExpectedReturnDate: expectedReturn,
		}
	}
	if err := s.assignmentRepo.AssignMany(ctx, as, serials); err != nil {
		return nil, err
	}

	out := make([]domain.Assignment, len(as))
	for i, a := range as {
		out[i] = *a
	}
	return out, nil
}

func (s *assignmentService) Return(ctx context.Context, assignmentID int32) (*domain.Assignment, error) {
	return s.assignmentRepo.Return(ctx, assignmentID, time.Now().Format(dateLayout))
}

func (s *assignmentService) ListForProject(ctx context.Context, projectID int32) ([]domain.ProjectAssignment, error) {
	return s.assignmentRepo.ListOpenByProject(ctx, projectID)
}
