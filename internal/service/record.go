package service

import (
	"context"
	"strings"

	"sitework-backend/internal/domain"
	"sitework-backend/internal/repository"
)

type recordService struct {
	recordRepo  repository.RecordRepository
	projectRepo repository.ProjectRepository
}

func NewRecordService(recordRepo repository.RecordRepository, projectRepo repository.ProjectRepository) RecordService {
	return &recordService{
		recordRepo:  recordRepo,
		projectRepo: projectRepo,
	}
}

func (s *recordService) Add(ctx context.Context, rec *domain.ResourceRecord) error {
	rec.Name = strings.TrimSpace(rec.Name)
	if rec.Name == "" {
		return domain.Validationf("record name is required")
	}
	if rec.Kind != domain.RecordKindMaterial && rec.Kind != domain.RecordKindLabor {
		return domain.Validationf("record kind must be %s or %s", domain.RecordKindMaterial, domain.RecordKindLabor)
	}
	if rec.Quantity < 1 {
		return domain.Validationf("quantity must be at least 1")
	}
	if rec.UnitCostCents < 0 {
		return domain.Validationf("unit cost cannot be negative")
	}
	switch rec.Kind {
	case domain.RecordKindLabor:
		if rec.DurationDays == nil || *rec.DurationDays < 1 {
			return domain.Validationf("labor records need a duration of at least 1 day")
		}
	case domain.RecordKindMaterial:
		rec.DurationDays = nil
	}
	if _, err := s.projectRepo.GetByID(ctx, rec.ProjectID); err != nil {
		return err
	}
	return s.recordRepo.Create(ctx, rec)
}

func (s *recordService) ListByProject(ctx context.Context, projectID int32, kind domain.RecordKind) ([]domain.ResourceRecord, error) {
	if kind != "" && kind != domain.RecordKindMaterial && kind != domain.RecordKindLabor {
		return nil, domain.Validationf("unknown record kind %q", kind)
	}
	return s.recordRepo.ListByProject(ctx, projectID, kind)
}

func (s *recordService) Delete(ctx context.Context, id int32) error {
	return s.recordRepo.Delete(ctx, id)
}

func (s *recordService) Summary(ctx context.Context, projectID int32) (*domain.CostSummary, error) {
	return s.recordRepo.Summary(ctx, projectID)
}
