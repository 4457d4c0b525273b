package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; ALTER
// TABLE additions that already ran surface as "duplicate column name" and
// are tolerated.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		manager     TEXT NOT NULL DEFAULT '',
		start_date  TEXT NOT NULL,
		end_date    TEXT NOT NULL,
		status      TEXT NOT NULL
		            CHECK(status IN ('planning','active','on_hold','completed','cancelled')),
		priority    TEXT NOT NULL DEFAULT 'medium',
		budget      REAL NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id              TEXT PRIMARY KEY,
		project_id      TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		parent_id       TEXT REFERENCES tasks(id) ON DELETE CASCADE,
		name            TEXT NOT NULL,
		description     TEXT NOT NULL DEFAULT '',
		start_date      TEXT NOT NULL,
		end_date        TEXT NOT NULL,
		progress        INTEGER NOT NULL DEFAULT 0 CHECK(progress BETWEEN 0 AND 100),
		status          TEXT NOT NULL
		                CHECK(status IN ('not_started','in_progress','completed','blocked','cancelled')),
		priority        TEXT NOT NULL DEFAULT 'medium',
		assignee        TEXT NOT NULL DEFAULT '',
		estimated_hours REAL NOT NULL DEFAULT 0 CHECK(estimated_hours >= 0),
		actual_hours    REAL NOT NULL DEFAULT 0 CHECK(actual_hours >= 0),
		is_milestone    INTEGER NOT NULL DEFAULT 0,
		order_index     INTEGER NOT NULL DEFAULT 0,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS task_dependencies (
		dependent_task_id    TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		prerequisite_task_id TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		PRIMARY KEY (dependent_task_id, prerequisite_task_id)
	)`,

	`CREATE TABLE IF NOT EXISTS project_templates (
		id                      TEXT PRIMARY KEY,
		name                    TEXT NOT NULL,
		description             TEXT NOT NULL DEFAULT '',
		category                TEXT NOT NULL DEFAULT '',
		estimated_budget        REAL NOT NULL DEFAULT 0,
		estimated_duration_days INTEGER NOT NULL DEFAULT 0,
		icon                    TEXT NOT NULL DEFAULT '',
		is_active               INTEGER NOT NULL DEFAULT 1,
		is_built_in             INTEGER NOT NULL DEFAULT 0,
		usage_count             INTEGER NOT NULL DEFAULT 0,
		created_at              TEXT NOT NULL,
		updated_at              TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS task_templates (
		id                      TEXT PRIMARY KEY,
		template_id             TEXT NOT NULL REFERENCES project_templates(id) ON DELETE CASCADE,
		parent_id               TEXT REFERENCES task_templates(id) ON DELETE CASCADE,
		name                    TEXT NOT NULL,
		description             TEXT NOT NULL DEFAULT '',
		default_assignee_role   TEXT NOT NULL DEFAULT '',
		estimated_hours         REAL NOT NULL DEFAULT 0 CHECK(estimated_hours >= 0),
		estimated_duration_days INTEGER NOT NULL DEFAULT 0 CHECK(estimated_duration_days >= 0),
		start_offset_days       INTEGER NOT NULL DEFAULT 0 CHECK(start_offset_days >= 0),
		priority                TEXT NOT NULL DEFAULT 'medium',
		order_index             INTEGER NOT NULL DEFAULT 0,
		is_milestone            INTEGER NOT NULL DEFAULT 0,
		is_critical_path        INTEGER NOT NULL DEFAULT 0,
		created_at              TEXT NOT NULL,
		updated_at              TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS template_dependencies (
		dependent_task_template_id    TEXT NOT NULL REFERENCES task_templates(id) ON DELETE CASCADE,
		prerequisite_task_template_id TEXT NOT NULL REFERENCES task_templates(id) ON DELETE CASCADE,
		dependency_type               TEXT NOT NULL
		    CHECK(dependency_type IN ('finish_to_start','start_to_start','finish_to_finish','start_to_finish')),
		lag_days                      INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (dependent_task_template_id, prerequisite_task_template_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_parent ON tasks(parent_id)`,
	`CREATE INDEX IF NOT EXISTS idx_task_deps_prerequisite ON task_dependencies(prerequisite_task_id)`,
	`CREATE INDEX IF NOT EXISTS idx_task_templates_template ON task_templates(template_id)`,
	`CREATE INDEX IF NOT EXISTS idx_task_templates_parent ON task_templates(parent_id)`,
	`CREATE INDEX IF NOT EXISTS idx_template_deps_prerequisite ON template_dependencies(prerequisite_task_template_id)`,
}
