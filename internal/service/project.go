package service

import (
	"context"
	"strings"
	"time"

	"sitework-backend/internal/domain"
	"sitework-backend/internal/repository"
)

type projectService struct {
	projectRepo repository.ProjectRepository
}

func NewProjectService(projectRepo repository.ProjectRepository) ProjectService {
	return &projectService{projectRepo: projectRepo}
}

func validateProject(p *domain.Project) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return domain.Validationf("project name is required")
	}
	if p.Status == "" {
		p.Status = domain.ProjectStatusPlanning
	}
	if !p.Status.Valid() {
		return domain.Validationf("unknown project status %q", p.Status)
	}
	if p.DateRequested == "" {
		p.DateRequested = time.Now().Format(dateLayout)
	}
	for _, d := range []string{p.DateRequested, p.TargetDate} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, d); err != nil {
			return domain.Validationf("date %q is not YYYY-MM-DD", d)
		}
	}
	if p.TargetDate == "" {
		return domain.Validationf("target date is required")
	}
	return nil
}

func (s *projectService) Create(ctx context.Context, p *domain.Project) error {
	if err := validateProject(p); err != nil {
		return err
	}
	return s.projectRepo.Create(ctx, p)
}

func (s *projectService) Get(ctx context.Context, id int32) (*domain.Project, error) {
	return s.projectRepo.GetByID(ctx, id)
}

func (s *projectService) Update(ctx context.Context, p *domain.Project) error {
	if err := validateProject(p); err != nil {
		return err
	}
	return s.projectRepo.Update(ctx, p)
}

func (s *projectService) Delete(ctx context.Context, id int32) error {
	return s.projectRepo.Delete(ctx, id)
}

func (s *projectService) List(ctx context.Context, search string, status domain.ProjectStatus) ([]domain.Project, error) {
	if status != "" && !status.Valid() {
		return nil, domain.Validationf("unknown project status %q", status)
	}
	return s.projectRepo.List(ctx, strings.TrimSpace(search), status)
}
