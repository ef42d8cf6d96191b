package db

import (
	"context"
	"database/sql"
	"fmt"

	"sitework-backend/internal/logger"
)

type migration struct {
	version string
	stmts   []string
}

// migrations run in order; each version is applied at most once. New entries
// go at the end with the next version number.
var migrations = []migration{
	{
		version: "001_base_tables",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS projects (
				id             SERIAL PRIMARY KEY,
				name           TEXT NOT NULL,
				type           TEXT,
				client         TEXT,
				date_requested DATE NOT NULL,
				target_date    DATE NOT NULL,
				status         TEXT NOT NULL DEFAULT 'Planning',
				created_on     TIMESTAMPTZ NOT NULL,
				deleted_on     TIMESTAMPTZ
			)`,
			`CREATE TABLE IF NOT EXISTS tools (
				id               SERIAL PRIMARY KEY,
				name             TEXT NOT NULL,
				quantity         INTEGER NOT NULL,
				status           TEXT NOT NULL,
				condition_notes  TEXT,
				last_maintenance DATE NOT NULL,
				created_on       TIMESTAMPTZ NOT NULL,
				deleted_on       TIMESTAMPTZ
			)`,
			`CREATE TABLE IF NOT EXISTS tool_serial_numbers (
				id            SERIAL PRIMARY KEY,
				tool_id       INTEGER NOT NULL REFERENCES tools(id),
				serial_number TEXT NOT NULL UNIQUE,
				status        TEXT NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS tool_assignments (
				id                   SERIAL PRIMARY KEY,
				project_id           INTEGER NOT NULL REFERENCES projects(id),
				tool_serial_id       INTEGER NOT NULL REFERENCES tool_serial_numbers(id),
				assigned_date        DATE NOT NULL,
				expected_return_date DATE,
				return_date          DATE,
				status               TEXT NOT NULL DEFAULT 'Assigned',
				overdue              BOOLEAN NOT NULL DEFAULT false,
				created_on           TIMESTAMPTZ NOT NULL,
				updated_on           TIMESTAMPTZ NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS resource_records (
				id              SERIAL PRIMARY KEY,
				project_id      INTEGER NOT NULL REFERENCES projects(id),
				kind            TEXT NOT NULL,
				name            TEXT NOT NULL,
				unit            TEXT,
				quantity        INTEGER NOT NULL,
				unit_cost_cents INTEGER NOT NULL,
				duration_days   INTEGER,
				created_on      TIMESTAMPTZ NOT NULL
			)`,
		},
	},
	{
		version: "002_open_assignment_exclusivity",
		stmts: []string{
			// At most one open assignment per unit, enforced at commit time.
			// Application-level availability checks are advisory only.
			`CREATE UNIQUE INDEX IF NOT EXISTS tool_assignments_open_unit
			 ON tool_assignments (tool_serial_id) WHERE status = 'Assigned'`,
			`CREATE INDEX IF NOT EXISTS tool_assignments_project
			 ON tool_assignments (project_id, status)`,
		},
	},
	{
		version: "003_change_notifications",
		stmts: []string{
			`CREATE OR REPLACE FUNCTION notify_row_change() RETURNS trigger AS $$
			DECLARE
				row_data json;
			BEGIN
				IF TG_OP = 'DELETE' THEN
					row_data := row_to_json(OLD);
				ELSE
					row_data := row_to_json(NEW);
				END IF;
				PERFORM pg_notify('row_changes', json_build_object(
					'event', TG_OP,
					'table', TG_TABLE_NAME,
					'row', row_data
				)::text);
				RETURN NULL;
			END;
			$$ LANGUAGE plpgsql`,
			`DROP TRIGGER IF EXISTS tools_notify ON tools`,
			`CREATE TRIGGER tools_notify AFTER INSERT OR UPDATE OR DELETE ON tools
			 FOR EACH ROW EXECUTE FUNCTION notify_row_change()`,
			`DROP TRIGGER IF EXISTS tool_serial_numbers_notify ON tool_serial_numbers`,
			`CREATE TRIGGER tool_serial_numbers_notify AFTER INSERT OR UPDATE OR DELETE ON tool_serial_numbers
			 FOR EACH ROW EXECUTE FUNCTION notify_row_change()`,
			`DROP TRIGGER IF EXISTS tool_assignments_notify ON tool_assignments`,
			`CREATE TRIGGER tool_assignments_notify AFTER INSERT OR UPDATE OR DELETE ON tool_assignments
			 FOR EACH ROW EXECUTE FUNCTION notify_row_change()`,
		},
	},
}

// Migrate applies all pending migrations, recording each in
// schema_migrations so restarts are idempotent.
func Migrate(ctx context.Context, conn *sql.DB) error {
	if _, err := conn.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY, applied_on TIMESTAMPTZ NOT NULL)`); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}

	for _, m := range migrations {
		var count int
		if err := conn.QueryRowContext(ctx,
			`SELECT count(*) FROM schema_migrations WHERE version = $1`, m.version).Scan(&count); err != nil {
			return fmt.Errorf("check migration %s: %w", m.version, err)
		}
		if count > 0 {
			continue
		}

		tx, err := conn.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin migration %s: %w", m.version, err)
		}
		for _, stmt := range m.stmts {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				tx.Rollback()
				return fmt.Errorf("exec migration %s: %w", m.version, err)
			}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO schema_migrations (version, applied_on) VALUES ($1, now())`, m.version); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %s: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", m.version, err)
		}
		logger.Info("Applied migration", "version", m.version)
	}
	return nil
}
