package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avehner/ganttform/internal/db"
	"github.com/avehner/ganttform/internal/domain"
)

// SQLiteDependencyRepo implements DependencyRepo using a SQLite database.
type SQLiteDependencyRepo struct {
	db db.DBTX
}

// NewSQLiteDependencyRepo creates a new SQLiteDependencyRepo.
func NewSQLiteDependencyRepo(conn db.DBTX) *SQLiteDependencyRepo {
	return &SQLiteDependencyRepo{db: conn}
}

func (r *SQLiteDependencyRepo) Create(ctx context.Context, d *domain.TaskDependency) error {
	query := `INSERT INTO task_dependencies (dependent_task_id, prerequisite_task_id) VALUES (?, ?)`
	_, err := r.db.ExecContext(ctx, query, d.DependentTaskID, d.PrerequisiteTaskID)
	if err != nil {
		return fmt.Errorf("inserting dependency: %w", err)
	}
	return nil
}

func (r *SQLiteDependencyRepo) Delete(ctx context.Context, dependentID, prerequisiteID string) error {
	query := `DELETE FROM task_dependencies WHERE dependent_task_id = ? AND prerequisite_task_id = ?`
	_, err := r.db.ExecContext(ctx, query, dependentID, prerequisiteID)
	if err != nil {
		return fmt.Errorf("deleting dependency: %w", err)
	}
	return nil
}

func (r *SQLiteDependencyRepo) ListPrerequisites(ctx context.Context, taskID string) ([]domain.TaskDependency, error) {
	query := `SELECT dependent_task_id, prerequisite_task_id
		FROM task_dependencies WHERE dependent_task_id = ?`
	rows, err := r.db.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("listing prerequisites: %w", err)
	}
	defer rows.Close()
	return r.scanDependencies(rows)
}

func (r *SQLiteDependencyRepo) ListDependents(ctx context.Context, taskID string) ([]domain.TaskDependency, error) {
	query := `SELECT dependent_task_id, prerequisite_task_id
		FROM task_dependencies WHERE prerequisite_task_id = ?`
	rows, err := r.db.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("listing dependents: %w", err)
	}
	defer rows.Close()
	return r.scanDependencies(rows)
}

func (r *SQLiteDependencyRepo) ListByProject(ctx context.Context, projectID string) ([]domain.TaskDependency, error) {
	query := `SELECT d.dependent_task_id, d.prerequisite_task_id
		FROM task_dependencies d
		JOIN tasks t ON d.dependent_task_id = t.id
		WHERE t.project_id = ?`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing project dependencies: %w", err)
	}
	defer rows.Close()
	return r.scanDependencies(rows)
}

// scanDependencies scans multiple dependency rows from *sql.Rows.
func (r *SQLiteDependencyRepo) scanDependencies(rows *sql.Rows) ([]domain.TaskDependency, error) {
	var deps []domain.TaskDependency
	for rows.Next() {
		var d domain.TaskDependency
		if err := rows.Scan(&d.DependentTaskID, &d.PrerequisiteTaskID); err != nil {
			return nil, fmt.Errorf("scanning dependency: %w", err)
		}
		deps = append(deps, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating dependencies: %w", err)
	}
	return deps, nil
}
