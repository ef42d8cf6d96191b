package postgres_test

import (
	"context"
	"testing"
	"time"

	"sitework-backend/internal/domain"
	"sitework-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestProjectRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewProjectRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		p := &domain.Project{
			Name:          "Riverside Duplex",
			Type:          "Residential",
			Client:        "Acme Homes",
			DateRequested: "2026-08-15",
			TargetDate:    "2026-12-01",
			Status:        domain.ProjectStatusPlanning,
		}

		mock.ExpectQuery("INSERT INTO projects").
			WithArgs(p.Name, p.Type, p.Client, p.DateRequested, p.TargetDate, p.Status, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_on"}).AddRow(int32(3), time.Now()))

		err := repo.Create(ctx, p)
		assert.NoError(t, err)
		assert.Equal(t, int32(3), p.ID)
	})
}

func TestProjectRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewProjectRepository(db)
	ctx := context.Background()

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM projects WHERE id = \\$1 AND deleted_on IS NULL").
			WithArgs(int32(99)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Success", func(t *testing.T) {
		requested, _ := time.Parse("2006-01-02", "2026-08-15")
		target, _ := time.Parse("2006-01-02", "2026-12-01")
		mock.ExpectQuery("SELECT (.+) FROM projects WHERE id = \\$1 AND deleted_on IS NULL").
			WithArgs(int32(3)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "client", "date_requested", "target_date", "status", "created_on"}).
				AddRow(int32(3), "Riverside Duplex", "Residential", "Acme Homes", requested, target, "In Progress", time.Now()))

		p, err := repo.GetByID(ctx, 3)
		assert.NoError(t, err)
		assert.Equal(t, domain.ProjectStatusInProgress, p.Status)
		assert.Equal(t, "2026-12-01", p.TargetDate)
	})
}

func TestProjectRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewProjectRepository(db)
	ctx := context.Background()

	t.Run("FilterByStatus", func(t *testing.T) {
		requested, _ := time.Parse("2006-01-02", "2026-08-15")
		target, _ := time.Parse("2006-01-02", "2026-12-01")
		mock.ExpectQuery("SELECT (.+) FROM projects WHERE deleted_on IS NULL AND status = \\$1").
			WithArgs(domain.ProjectStatusInProgress).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "client", "date_requested", "target_date", "status", "created_on"}).
				AddRow(int32(3), "Riverside Duplex", "Residential", "Acme Homes", requested, target, "In Progress", time.Now()))

		ps, err := repo.List(ctx, "", domain.ProjectStatusInProgress)
		assert.NoError(t, err)
		assert.Len(t, ps, 1)
	})
}

func TestProjectRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewProjectRepository(db)
	ctx := context.Background()

	t.Run("AlreadyDeleted", func(t *testing.T) {
		mock.ExpectExec("UPDATE projects SET deleted_on").
			WithArgs(sqlmock.AnyArg(), int32(3)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(ctx, 3)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
