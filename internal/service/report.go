package service

import (
	"context"
	"time"

	"sitework-backend/internal/domain"
	"sitework-backend/internal/repository"
)

type reportService struct {
	reportRepo          repository.ReportRepository
	maintenanceInterval time.Duration
}

// NewReportService builds the dashboard/maintenance report service.
// maintenanceEveryDays controls when a tool type counts as due.
func NewReportService(reportRepo repository.ReportRepository, maintenanceEveryDays int) ReportService {
	if maintenanceEveryDays <= 0 {
		maintenanceEveryDays = 90
	}
	return &reportService{
		reportRepo:          reportRepo,
		maintenanceInterval: time.Duration(maintenanceEveryDays) * 24 * time.Hour,
	}
}

func (s *reportService) Utilization(ctx context.Context) (*domain.UtilizationReport, error) {
	return s.reportRepo.Utilization(ctx)
}

func (s *reportService) MaintenanceDue(ctx context.Context) ([]domain.MaintenanceDueItem, error) {
	cutoff := time.Now().Add(-s.maintenanceInterval).Format(dateLayout)
	return s.reportRepo.MaintenanceDue(ctx, cutoff)
}
