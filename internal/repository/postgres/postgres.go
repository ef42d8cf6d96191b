package postgres

import (
	"database/sql"
	"errors"
	"time"

	"sitework-backend/internal/domain"
	"sitework-backend/internal/repository"

	"github.com/lib/pq"
)

const dateLayout = "2006-01-02"

type Store struct {
	db *sql.DB
	repository.ToolRepository
	repository.AssignmentRepository
	repository.ProjectRepository
	repository.RecordRepository
	repository.ReportRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                   db,
		ToolRepository:       NewToolRepository(db),
		AssignmentRepository: NewAssignmentRepository(db),
		ProjectRepository:    NewProjectRepository(db),
		RecordRepository:     NewRecordRepository(db),
		ReportRepository:     NewReportRepository(db),
	}
}

// Postgres error codes the repositories care about.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// storeErr maps driver errors onto the domain taxonomy. Unique violations
// become conflicts (duplicate serial, second open assignment for a unit),
// broken references become not-found, everything else is a persistence error.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundf("%s: no matching row", op)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return domain.Conflictf("%s: %s", op, pqErr.Detail)
		case pqForeignKeyViolation:
			return domain.NotFoundf("%s: %s", op, pqErr.Detail)
		}
	}
	return domain.PersistenceErr(op, err)
}

func fmtDate(t time.Time) string {
	return t.Format(dateLayout)
}

func fmtNullDate(t sql.NullTime) *string {
	if !t.Valid {
		return nil
	}
	s := t.Time.Format(dateLayout)
	return &s
}
