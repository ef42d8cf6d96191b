package postgres

import (
	"context"
	"database/sql"
	"time"

	"sitework-backend/internal/domain"
	"sitework-backend/internal/repository"
)

type recordRepository struct {
	db *sql.DB
}

func NewRecordRepository(db *sql.DB) repository.RecordRepository {
	return &recordRepository{db: db}
}

func (r *recordRepository) Create(ctx context.Context, rec *domain.ResourceRecord) error {
	query := `INSERT INTO resource_records (project_id, kind, name, unit, quantity, unit_cost_cents, duration_days, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_on`
	var createdOn time.Time
	err := r.db.QueryRowContext(ctx, query,
		rec.ProjectID, rec.Kind, rec.Name, rec.Unit, rec.Quantity, rec.UnitCostCents, rec.DurationDays, time.Now()).
		Scan(&rec.ID, &createdOn)
	if err != nil {
		return storeErr("create resource record", err)
	}
	rec.CreatedOn = fmtDate(createdOn)
	return nil
}

func (r *recordRepository) ListByProject(ctx context.Context, projectID int32, kind domain.RecordKind) ([]domain.ResourceRecord, error) {
	query := `SELECT id, project_id, kind, name, COALESCE(unit, ''), quantity, unit_cost_cents, duration_days, created_on
	          FROM resource_records WHERE project_id = $1`
	args := []interface{}{projectID}
	if kind != "" {
		query += " AND kind = $2"
		args = append(args, kind)
	}
	query += " ORDER BY created_on, id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr("list resource records", err)
	}
	defer rows.Close()

	var records []domain.ResourceRecord
	for rows.Next() {
		var rec domain.ResourceRecord
		var createdOn time.Time
		var duration sql.NullInt32
		if err := rows.Scan(&rec.ID, &rec.ProjectID, &rec.Kind, &rec.Name, &rec.Unit, &rec.Quantity, &rec.UnitCostCents, &duration, &createdOn); err != nil {
			return nil, storeErr("list resource records", err)
		}
		if duration.Valid {
			d := duration.Int32
			rec.DurationDays = &d
		}
		rec.CreatedOn = fmtDate(createdOn)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list resource records", err)
	}
	return records, nil
}

func (r *recordRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM resource_records WHERE id = $1`, id)
	if err != nil {
		return storeErr("delete resource record", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return storeErr("delete resource record", err)
	} else if n == 0 {
		return domain.NotFoundf("resource record %d does not exist", id)
	}
	return nil
}

func (r *recordRepository) Summary(ctx context.Context, projectID int32) (*domain.CostSummary, error) {
	// Labor lines multiply by duration; materials do not.
	query := `SELECT
	            COALESCE(SUM(CASE WHEN kind = $2 THEN quantity::bigint * unit_cost_cents END), 0),
	            COALESCE(SUM(CASE WHEN kind = $3 THEN quantity::bigint * unit_cost_cents * COALESCE(duration_days, 1) END), 0)
	          FROM resource_records WHERE project_id = $1`
	summary := &domain.CostSummary{ProjectID: projectID}
	err := r.db.QueryRowContext(ctx, query, projectID, domain.RecordKindMaterial, domain.RecordKindLabor).
		Scan(&summary.MaterialTotalCents, &summary.LaborTotalCents)
	if err != nil {
		return nil, storeErr("cost summary", err)
	}
	return summary, nil
}
