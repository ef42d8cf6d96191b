package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"sitework-backend/internal/domain"
	"sitework-backend/internal/repository"
)

type assignmentRepository struct {
	db *sql.DB
}

func NewAssignmentRepository(db *sql.DB) repository.AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Assign(ctx context.Context, a *domain.Assignment, serial string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr("assign", err)
	}
	defer tx.Rollback()

	if err := r.assignInTx(ctx, tx, a, serial); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return storeErr("assign", err)
	}
	return nil
}

func (r *assignmentRepository) AssignMany(ctx context.Context, as []*domain.Assignment, serials []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr("assign many", err)
	}
	defer tx.Rollback()

	for i, a := range as {
		if err := r.assignInTx(ctx, tx, a, serials[i]); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return storeErr("assign many", err)
	}
	return nil
}

// assignInTx performs the exclusive hand-off of one unit. The UPDATE is
// conditional on the unit still being Available, so two concurrent calls for
// the same serial cannot both pass; the partial unique index on open
// assignments is the database-level backstop.
func (r *assignmentRepository) assignInTx(ctx context.Context, tx *sql.Tx, a *domain.Assignment, serial string) error {
	var unitID int32
	var status domain.UnitStatus
	err := tx.QueryRowContext(ctx,
		`SELECT sn.id, sn.status FROM tool_serial_numbers sn
		 JOIN tools t ON t.id = sn.tool_id
		 WHERE sn.serial_number = $1 AND t.deleted_on IS NULL`, serial).Scan(&unitID, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundf("serial %q does not exist", serial)
	}
	if err != nil {
		return storeErr("assign", err)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE tool_serial_numbers SET status = $1 WHERE id = $2 AND status = $3`,
		domain.UnitStatusNotAvailable, unitID, domain.UnitStatusAvailable)
	if err != nil {
		return storeErr("assign", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return storeErr("assign", err)
	} else if n == 0 {
		return domain.Conflictf("serial %q is %s", serial, status)
	}

	a.ToolSerialID = unitID
	a.Status = domain.AssignmentStatusAssigned
	var createdOn time.Time
	query := `INSERT INTO tool_assignments (project_id, tool_serial_id, assigned_date, expected_return_date, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $6) RETURNING id, created_on`
	err = tx.QueryRowContext(ctx, query,
		a.ProjectID, unitID, a.AssignedDate, a.ExpectedReturnDate, a.Status, time.Now()).
		Scan(&a.ID, &createdOn)
	if err != nil {
		return storeErr("assign", err)
	}
	a.CreatedOn = fmtDate(createdOn)
	a.UpdatedOn = a.CreatedOn
	return nil
}

func (r *assignmentRepository) GetByID(ctx context.Context, id int32) (*domain.Assignment, error) {
	a := &domain.Assignment{}
	var assigned, createdOn, updatedOn time.Time
	var expected, returned sql.NullTime
	query := `SELECT id, project_id, tool_serial_id, assigned_date, expected_return_date, return_date, status, overdue, created_on, updated_on
	          FROM tool_assignments WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.ProjectID, &a.ToolSerialID, &assigned, &expected, &returned, &a.Status, &a.Overdue, &createdOn, &updatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("assignment %d does not exist", id)
	}
	if err != nil {
		return nil, storeErr("get assignment", err)
	}
	a.AssignedDate = fmtDate(assigned)
	a.ExpectedReturnDate = fmtNullDate(expected)
	a.ReturnDate = fmtNullDate(returned)
	a.CreatedOn = fmtDate(createdOn)
	a.UpdatedOn = fmtDate(updatedOn)
	return a, nil
}

func (r *assignmentRepository) Return(ctx context.Context, id int32, returnDate string) (*domain.Assignment, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storeErr("return", err)
	}
	defer tx.Rollback()

	a := &domain.Assignment{ID: id}
	var assigned, createdOn time.Time
	var expected sql.NullTime
	err = tx.QueryRowContext(ctx,
		`SELECT project_id, tool_serial_id, assigned_date, expected_return_date, status, overdue, created_on
		 FROM tool_assignments WHERE id = $1 FOR UPDATE`, id).
		Scan(&a.ProjectID, &a.ToolSerialID, &assigned, &expected, &a.Status, &a.Overdue, &createdOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("assignment %d does not exist", id)
	}
	if err != nil {
		return nil, storeErr("return", err)
	}
	if a.Status != domain.AssignmentStatusAssigned {
		return nil, domain.InvalidStatef("assignment %d is already %s", id, a.Status)
	}

	var updatedOn time.Time
	err = tx.QueryRowContext(ctx,
		`UPDATE tool_assignments SET status = $1, return_date = $2, updated_on = $3 WHERE id = $4 RETURNING updated_on`,
		domain.AssignmentStatusReturned, returnDate, time.Now(), id).Scan(&updatedOn)
	if err != nil {
		return nil, storeErr("return", err)
	}

	// Restore availability, but leave the unit alone if the registry moved it
	// to Under Maintenance while it was out.
	_, err = tx.ExecContext(ctx,
		`UPDATE tool_serial_numbers SET status = $1 WHERE id = $2 AND status = $3`,
		domain.UnitStatusAvailable, a.ToolSerialID, domain.UnitStatusNotAvailable)
	if err != nil {
		return nil, storeErr("return", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, storeErr("return", err)
	}

	a.Status = domain.AssignmentStatusReturned
	a.AssignedDate = fmtDate(assigned)
	a.ExpectedReturnDate = fmtNullDate(expected)
	a.ReturnDate = &returnDate
	a.CreatedOn = fmtDate(createdOn)
	a.UpdatedOn = fmtDate(updatedOn)
	return a, nil
}

func (r *assignmentRepository) GetOpenForSerial(ctx context.Context, serial string) (*domain.Assignment, error) {
	a := &domain.Assignment{}
	var assigned, createdOn, updatedOn time.Time
	var expected sql.NullTime
	query := `SELECT a.id, a.project_id, a.tool_serial_id, a.assigned_date, a.expected_return_date, a.status, a.overdue, a.created_on, a.updated_on
	          FROM tool_assignments a
	          JOIN tool_serial_numbers sn ON sn.id = a.tool_serial_id
	          WHERE sn.serial_number = $1 AND a.status = $2`
	err := r.db.QueryRowContext(ctx, query, serial, domain.AssignmentStatusAssigned).Scan(
		&a.ID, &a.ProjectID, &a.ToolSerialID, &assigned, &expected, &a.Status, &a.Overdue, &createdOn, &updatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("no open assignment for serial %q", serial)
	}
	if err != nil {
		return nil, storeErr("get open assignment", err)
	}
	a.AssignedDate = fmtDate(assigned)
	a.ExpectedReturnDate = fmtNullDate(expected)
	a.CreatedOn = fmtDate(createdOn)
	a.UpdatedOn = fmtDate(updatedOn)
	return a, nil
}

func (r *assignmentRepository) ListOpenByProject(ctx context.Context, projectID int32) ([]domain.ProjectAssignment, error) {
	query := `SELECT a.id, a.project_id, a.tool_serial_id, a.assigned_date, a.expected_return_date, a.status, a.overdue,
	                 sn.serial_number, sn.status, t.name
	          FROM tool_assignments a
	          JOIN tool_serial_numbers sn ON sn.id = a.tool_serial_id
	          JOIN tools t ON t.id = sn.tool_id
	          WHERE a.project_id = $1 AND a.status = $2
	          ORDER BY a.assigned_date, sn.serial_number`
	rows, err := r.db.QueryContext(ctx, query, projectID, domain.AssignmentStatusAssigned)
	if err != nil {
		return nil, storeErr("list project assignments", err)
	}
	defer rows.Close()

	var out []domain.ProjectAssignment
	for rows.Next() {
		var pa domain.ProjectAssignment
		var assigned time.Time
		var expected sql.NullTime
		if err := rows.Scan(&pa.ID, &pa.ProjectID, &pa.ToolSerialID, &assigned, &expected, &pa.Status, &pa.Overdue,
			&pa.SerialNumber, &pa.UnitStatus, &pa.ToolName); err != nil {
			return nil, storeErr("list project assignments", err)
		}
		pa.AssignedDate = fmtDate(assigned)
		pa.ExpectedReturnDate = fmtNullDate(expected)
		out = append(out, pa)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list project assignments", err)
	}
	return out, nil
}

func (r *assignmentRepository) ListOverdue(ctx context.Context) ([]domain.ProjectAssignment, error) {
	query := `SELECT a.id, a.project_id, a.tool_serial_id, a.assigned_date, a.expected_return_date, a.status, a.overdue,
	                 sn.serial_number, sn.status, t.name
	          FROM tool_assignments a
	          JOIN tool_serial_numbers sn ON sn.id = a.tool_serial_id
	          JOIN tools t ON t.id = sn.tool_id
	          WHERE a.status = $1 AND a.overdue
	          ORDER BY a.expected_return_date`
	rows, err := r.db.QueryContext(ctx, query, domain.AssignmentStatusAssigned)
	if err != nil {
		return nil, storeErr("list overdue assignments", err)
	}
	defer rows.Close()

	var out []domain.ProjectAssignment
	for rows.Next() {
		var pa domain.ProjectAssignment
		var assigned time.Time
		var expected sql.NullTime
		if err := rows.Scan(&pa.ID, &pa.ProjectID, &pa.ToolSerialID, &assigned, &expected, &pa.Status, &pa.Overdue,
			&pa.SerialNumber, &pa.UnitStatus, &pa.ToolName); err != nil {
			return nil, storeErr("list overdue assignments", err)
		}
		pa.AssignedDate = fmtDate(assigned)
		pa.ExpectedReturnDate = fmtNullDate(expected)
		out = append(out, pa)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list overdue assignments", err)
	}
	return out, nil
}

func (r *assignmentRepository) MarkOverdue(ctx context.Context, asOf string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tool_assignments SET overdue = true, updated_on = $1
		 WHERE status = $2 AND overdue = false AND expected_return_date IS NOT NULL AND expected_return_date < $3`,
		time.Now(), domain.AssignmentStatusAssigned, asOf)
	if err != nil {
		return 0, storeErr("mark overdue", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, storeErr("mark overdue", err)
	}
	return n, nil
}
