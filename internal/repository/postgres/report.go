package postgres

import (
	"context"
	"database/sql"

	"sitework-backend/internal/domain"
	"sitework-backend/internal/repository"
)

type reportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Utilization(ctx context.Context) (*domain.UtilizationReport, error) {
	report := &domain.UtilizationReport{}

	query := `SELECT
	            count(*),
	            count(*) FILTER (WHERE sn.status = $1),
	            count(*) FILTER (WHERE sn.status = $2),
	            count(*) FILTER (WHERE sn.status = $3)
	          FROM tool_serial_numbers sn
	          JOIN tools t ON t.id = sn.tool_id
	          WHERE t.deleted_on IS NULL`
	err := r.db.QueryRowContext(ctx, query,
		domain.UnitStatusAvailable, domain.UnitStatusNotAvailable, domain.UnitStatusUnderMaintenance).
		Scan(&report.TotalUnits, &report.AvailableUnits, &report.AssignedUnits, &report.MaintenanceUnits)
	if err != nil {
		return nil, storeErr("utilization report", err)
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT count(*), count(*) FILTER (WHERE overdue) FROM tool_assignments WHERE status = $1`,
		domain.AssignmentStatusAssigned).
		Scan(&report.OpenAssignments, &report.OverdueAssignments)
	if err != nil {
		return nil, storeErr("utilization report", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT t.id, t.name, count(sn.id), count(sn.id) FILTER (WHERE sn.status = $1)
		 FROM tools t
		 LEFT JOIN tool_serial_numbers sn ON sn.tool_id = t.id
		 WHERE t.deleted_on IS NULL
		 GROUP BY t.id, t.name
		 ORDER BY t.name`, domain.UnitStatusNotAvailable)
	if err != nil {
		return nil, storeErr("utilization report", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tu domain.TypeUtilization
		if err := rows.Scan(&tu.ToolTypeID, &tu.Name, &tu.TotalUnits, &tu.AssignedUnits); err != nil {
			return nil, storeErr("utilization report", err)
		}
		report.PerType = append(report.PerType, tu)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("utilization report", err)
	}
	return report, nil
}

func (r *reportRepository) MaintenanceDue(ctx context.Context, cutoff string) ([]domain.MaintenanceDueItem, error) {
	query := `SELECT t.id, t.name, t.last_maintenance,
	                 count(sn.id) FILTER (WHERE sn.status = $1)
	          FROM tools t
	          LEFT JOIN tool_serial_numbers sn ON sn.tool_id = t.id
	          WHERE t.deleted_on IS NULL
	          GROUP BY t.id, t.name, t.last_maintenance
	          HAVING t.last_maintenance < $2 OR count(sn.id) FILTER (WHERE sn.status = $1) > 0
	          ORDER BY t.last_maintenance`
	rows, err := r.db.QueryContext(ctx, query, domain.UnitStatusUnderMaintenance, cutoff)
	if err != nil {
		return nil, storeErr("maintenance due", err)
	}
	defer rows.Close()

	var items []domain.MaintenanceDueItem
	for rows.Next() {
		var item domain.MaintenanceDueItem
		var last sql.NullTime
		if err := rows.Scan(&item.ToolTypeID, &item.Name, &last, &item.MaintenanceUnits); err != nil {
			return nil, storeErr("maintenance due", err)
		}
		if last.Valid {
			item.LastMaintenance = fmtDate(last.Time)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("maintenance due", err)
	}
	return items, nil
}
