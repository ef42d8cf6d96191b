package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sitework-backend/internal/domain"
	"sitework-backend/internal/repository"
)

type projectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) repository.ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (name, type, client, date_requested, target_date, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_on`
	var createdOn time.Time
	err := r.db.QueryRowContext(ctx, query,
		p.Name, p.Type, p.Client, p.DateRequested, p.TargetDate, p.Status, time.Now()).
		Scan(&p.ID, &createdOn)
	if err != nil {
		return storeErr("create project", err)
	}
	p.CreatedOn = fmtDate(createdOn)
	return nil
}

func (r *projectRepository) GetByID(ctx context.Context, id int32) (*domain.Project, error) {
	p := &domain.Project{}
	var requested, target, createdOn time.Time
	query := `SELECT id, name, COALESCE(type, ''), COALESCE(client, ''), date_requested, target_date, status, created_on
	          FROM projects WHERE id = $1 AND deleted_on IS NULL`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&p.ID, &p.Name, &p.Type, &p.Client, &requested, &target, &p.Status, &createdOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("project %d does not exist", id)
	}
	if err != nil {
		return nil, storeErr("get project", err)
	}
	p.DateRequested = fmtDate(requested)
	p.TargetDate = fmtDate(target)
	p.CreatedOn = fmtDate(createdOn)
	return p, nil
}

func (r *projectRepository) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET name=$1, type=$2, client=$3, date_requested=$4, target_date=$5, status=$6
	          WHERE id=$7 AND deleted_on IS NULL`
	res, err := r.db.ExecContext(ctx, query, p.Name, p.Type, p.Client, p.DateRequested, p.TargetDate, p.Status, p.ID)
	if err != nil {
		return storeErr("update project", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return storeErr("update project", err)
	} else if n == 0 {
		return domain.NotFoundf("project %d does not exist", p.ID)
	}
	return nil
}

func (r *projectRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE projects SET deleted_on = $1 WHERE id = $2 AND deleted_on IS NULL`, time.Now(), id)
	if err != nil {
		return storeErr("delete project", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return storeErr("delete project", err)
	} else if n == 0 {
		return domain.NotFoundf("project %d does not exist", id)
	}
	return nil
}

func (r *projectRepository) List(ctx context.Context, search string, status domain.ProjectStatus) ([]domain.Project, error) {
	query := `SELECT id, name, COALESCE(type, ''), COALESCE(client, ''), date_requested, target_date, status, created_on
	          FROM projects WHERE deleted_on IS NULL`
	args := []interface{}{}
	argIdx := 1

	if search != "" {
		query += fmt.Sprintf(" AND (name ILIKE $%d OR client ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+search+"%")
		argIdx++
	}
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}
	query += " ORDER BY created_on DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr("list projects", err)
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		var p domain.Project
		var requested, target, createdOn time.Time
		if err := rows.Scan(&p.ID, &p.Name, &p.Type, &p.Client, &requested, &target, &p.Status, &createdOn); err != nil {
			return nil, storeErr("list projects", err)
		}
		p.DateRequested = fmtDate(requested)
		p.TargetDate = fmtDate(target)
		p.CreatedOn = fmtDate(createdOn)
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list projects", err)
	}
	return projects, nil
}
