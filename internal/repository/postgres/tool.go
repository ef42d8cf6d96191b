package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sitework-backend/internal/domain"
	"sitework-backend/internal/repository"

	"github.com/lib/pq"
)

type toolRepository struct {
	db *sql.DB
}

func NewToolRepository(db *sql.DB) repository.ToolRepository {
	return &toolRepository{db: db}
}

func (r *toolRepository) CreateToolType(ctx context.Context, t *domain.ToolType, serials []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr("create tool type", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO tools (name, quantity, status, condition_notes, last_maintenance, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_on`
	var createdOn time.Time
	err = tx.QueryRowContext(ctx, query, t.Name, t.Quantity, t.Status, t.ConditionNotes, t.LastMaintenance, time.Now()).
		Scan(&t.ID, &createdOn)
	if err != nil {
		return storeErr("create tool type", err)
	}
	t.CreatedOn = fmtDate(createdOn)

	unitQuery := `INSERT INTO tool_serial_numbers (tool_id, serial_number, status) VALUES ($1, $2, $3) RETURNING id`
	t.Units = make([]domain.ToolUnit, 0, len(serials))
	for _, serial := range serials {
		unit := domain.ToolUnit{ToolTypeID: t.ID, SerialNumber: serial, Status: t.Status}
		if err := tx.QueryRowContext(ctx, unitQuery, t.ID, serial, t.Status).Scan(&unit.ID); err != nil {
			return storeErr(fmt.Sprintf("create tool unit %q", serial), err)
		}
		t.Units = append(t.Units, unit)
	}

	if err := tx.Commit(); err != nil {
		return storeErr("create tool type", err)
	}
	return nil
}

func (r *toolRepository) GetToolType(ctx context.Context, id int32) (*domain.ToolType, error) {
	t := &domain.ToolType{}
	var createdOn, lastMaintenance time.Time
	query := `SELECT id, name, quantity, status, COALESCE(condition_notes, ''), last_maintenance, created_on
	          FROM tools WHERE id = $1 AND deleted_on IS NULL`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&t.ID, &t.Name, &t.Quantity, &t.Status, &t.ConditionNotes, &lastMaintenance, &createdOn)
	if err != nil {
		return nil, storeErr("get tool type", err)
	}
	t.LastMaintenance = fmtDate(lastMaintenance)
	t.CreatedOn = fmtDate(createdOn)

	units, err := r.unitsForTypes(ctx, []int32{t.ID})
	if err != nil {
		return nil, err
	}
	t.Units = units[t.ID]
	return t, nil
}

func (r *toolRepository) UpdateToolType(ctx context.Context, t *domain.ToolType, serials []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr("update tool type", err)
	}
	defer tx.Rollback()

	query := `UPDATE tools SET name=$1, quantity=$2, status=$3, condition_notes=$4, last_maintenance=$5
	          WHERE id=$6 AND deleted_on IS NULL`
	res, err := tx.ExecContext(ctx, query, t.Name, t.Quantity, t.Status, t.ConditionNotes, t.LastMaintenance, t.ID)
	if err != nil {
		return storeErr("update tool type", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return storeErr("update tool type", err)
	} else if n == 0 {
		return domain.NotFoundf("tool type %d does not exist", t.ID)
	}

	// Reconcile the unit set. Rows are locked so a concurrent assign cannot
	// grab a unit that is about to be removed.
	rows, err := tx.QueryContext(ctx,
		`SELECT id, serial_number, status FROM tool_serial_numbers WHERE tool_id = $1 FOR UPDATE`, t.ID)
	if err != nil {
		return storeErr("update tool type", err)
	}
	existing := make(map[string]domain.ToolUnit)
	for rows.Next() {
		var u domain.ToolUnit
		u.ToolTypeID = t.ID
		if err := rows.Scan(&u.ID, &u.SerialNumber, &u.Status); err != nil {
			rows.Close()
			return storeErr("update tool type", err)
		}
		existing[u.SerialNumber] = u
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return storeErr("update tool type", err)
	}

	desired := make(map[string]bool, len(serials))
	for _, s := range serials {
		desired[s] = true
	}

	for serial, unit := range existing {
		if desired[serial] {
			continue
		}
		if unit.Status != domain.UnitStatusAvailable {
			return domain.Conflictf("cannot remove serial %q: unit is %s", serial, unit.Status)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM tool_serial_numbers WHERE id = $1`, unit.ID); err != nil {
			return storeErr(fmt.Sprintf("remove tool unit %q", serial), err)
		}
	}

	unitQuery := `INSERT INTO tool_serial_numbers (tool_id, serial_number, status) VALUES ($1, $2, $3) RETURNING id`
	t.Units = t.Units[:0]
	for _, serial := range serials {
		if unit, ok := existing[serial]; ok {
			t.Units = append(t.Units, unit)
			continue
		}
		unit := domain.ToolUnit{ToolTypeID: t.ID, SerialNumber: serial, Status: t.Status}
		if err := tx.QueryRowContext(ctx, unitQuery, t.ID, serial, t.Status).Scan(&unit.ID); err != nil {
			return storeErr(fmt.Sprintf("create tool unit %q", serial), err)
		}
		t.Units = append(t.Units, unit)
	}

	if err := tx.Commit(); err != nil {
		return storeErr("update tool type", err)
	}
	return nil
}

func (r *toolRepository) DeleteToolType(ctx context.Context, id int32) error {
	open, err := r.CountOpenAssignmentsForType(ctx, id)
	if err != nil {
		return err
	}
	if open > 0 {
		return domain.Conflictf("tool type %d has %d open assignments", id, open)
	}
	res, err := r.db.ExecContext(ctx, `UPDATE tools SET deleted_on = $1 WHERE id = $2 AND deleted_on IS NULL`, time.Now(), id)
	if err != nil {
		return storeErr("delete tool type", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return storeErr("delete tool type", err)
	} else if n == 0 {
		return domain.NotFoundf("tool type %d does not exist", id)
	}
	return nil
}

func (r *toolRepository) ListToolTypes(ctx context.Context, filter repository.ToolFilter) ([]domain.ToolType, error) {
	query := `SELECT id, name, quantity, status, COALESCE(condition_notes, ''), last_maintenance, created_on
	          FROM tools t WHERE deleted_on IS NULL`
	args := []interface{}{}
	argIdx := 1

	if filter.SearchTerm != "" {
		query += fmt.Sprintf(` AND (name ILIKE $%d OR EXISTS (
		            SELECT 1 FROM tool_serial_numbers sn WHERE sn.tool_id = t.id AND sn.serial_number ILIKE $%d))`, argIdx, argIdx)
		args = append(args, "%"+filter.SearchTerm+"%")
		argIdx++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}
	query += " ORDER BY name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr("list tool types", err)
	}
	defer rows.Close()

	var types []domain.ToolType
	var ids []int32
	for rows.Next() {
		var t domain.ToolType
		var createdOn, lastMaintenance time.Time
		if err := rows.Scan(&t.ID, &t.Name, &t.Quantity, &t.Status, &t.ConditionNotes, &lastMaintenance, &createdOn); err != nil {
			return nil, storeErr("list tool types", err)
		}
		t.LastMaintenance = fmtDate(lastMaintenance)
		t.CreatedOn = fmtDate(createdOn)
		types = append(types, t)
		ids = append(ids, t.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list tool types", err)
	}

	units, err := r.unitsForTypes(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range types {
		types[i].Units = units[types[i].ID]
	}
	return types, nil
}

func (r *toolRepository) ListAvailableUnits(ctx context.Context) ([]domain.ToolType, error) {
	query := `SELECT t.id, t.name, sn.id, sn.serial_number, sn.status
	          FROM tools t
	          JOIN tool_serial_numbers sn ON sn.tool_id = t.id
	          WHERE t.deleted_on IS NULL AND sn.status = $1
	          ORDER BY t.name, sn.serial_number`
	rows, err := r.db.QueryContext(ctx, query, domain.UnitStatusAvailable)
	if err != nil {
		return nil, storeErr("list available units", err)
	}
	defer rows.Close()

	var types []domain.ToolType
	index := make(map[int32]int)
	for rows.Next() {
		var typeID int32
		var name string
		var unit domain.ToolUnit
		if err := rows.Scan(&typeID, &name, &unit.ID, &unit.SerialNumber, &unit.Status); err != nil {
			return nil, storeErr("list available units", err)
		}
		unit.ToolTypeID = typeID
		i, ok := index[typeID]
		if !ok {
			types = append(types, domain.ToolType{ID: typeID, Name: name})
			i = len(types) - 1
			index[typeID] = i
		}
		types[i].Units = append(types[i].Units, unit)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list available units", err)
	}
	return types, nil
}

func (r *toolRepository) GetUnitBySerial(ctx context.Context, serial string) (*domain.ToolUnit, *domain.ToolType, error) {
	unit := &domain.ToolUnit{}
	t := &domain.ToolType{}
	var lastMaintenance time.Time
	query := `SELECT sn.id, sn.tool_id, sn.serial_number, sn.status,
	                 t.id, t.name, t.quantity, t.status, COALESCE(t.condition_notes, ''), t.last_maintenance
	          FROM tool_serial_numbers sn
	          JOIN tools t ON t.id = sn.tool_id
	          WHERE sn.serial_number = $1 AND t.deleted_on IS NULL`
	err := r.db.QueryRowContext(ctx, query, serial).Scan(
		&unit.ID, &unit.ToolTypeID, &unit.SerialNumber, &unit.Status,
		&t.ID, &t.Name, &t.Quantity, &t.Status, &t.ConditionNotes, &lastMaintenance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, domain.NotFoundf("serial %q does not exist", serial)
		}
		return nil, nil, storeErr("get unit by serial", err)
	}
	t.LastMaintenance = fmtDate(lastMaintenance)
	return unit, t, nil
}

func (r *toolRepository) SetUnitStatus(ctx context.Context, serial string, from, to domain.UnitStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tool_serial_numbers SET status = $1 WHERE serial_number = $2 AND status = $3`, to, serial, from)
	if err != nil {
		return storeErr("set unit status", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storeErr("set unit status", err)
	}
	if n == 0 {
		var current domain.UnitStatus
		err := r.db.QueryRowContext(ctx,
			`SELECT status FROM tool_serial_numbers WHERE serial_number = $1`, serial).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundf("serial %q does not exist", serial)
		}
		if err != nil {
			return storeErr("set unit status", err)
		}
		return domain.Conflictf("serial %q is %s, expected %s", serial, current, from)
	}
	return nil
}

func (r *toolRepository) CountOpenAssignmentsForType(ctx context.Context, toolTypeID int32) (int32, error) {
	var count int32
	query := `SELECT count(*) FROM tool_assignments a
	          JOIN tool_serial_numbers sn ON sn.id = a.tool_serial_id
	          WHERE sn.tool_id = $1 AND a.status = $2`
	err := r.db.QueryRowContext(ctx, query, toolTypeID, domain.AssignmentStatusAssigned).Scan(&count)
	if err != nil {
		return 0, storeErr("count open assignments", err)
	}
	return count, nil
}

func (r *toolRepository) unitsForTypes(ctx context.Context, ids []int32) (map[int32][]domain.ToolUnit, error) {
	units := make(map[int32][]domain.ToolUnit, len(ids))
	if len(ids) == 0 {
		return units, nil
	}
	query := `SELECT id, tool_id, serial_number, status FROM tool_serial_numbers
	          WHERE tool_id = ANY($1) ORDER BY tool_id, serial_number`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, storeErr("list tool units", err)
	}
	defer rows.Close()

	for rows.Next() {
		var u domain.ToolUnit
		if err := rows.Scan(&u.ID, &u.ToolTypeID, &u.SerialNumber, &u.Status); err != nil {
			return nil, storeErr("list tool units", err)
		}
		units[u.ToolTypeID] = append(units[u.ToolTypeID], u)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list tool units", err)
	}
	return units, nil
}
