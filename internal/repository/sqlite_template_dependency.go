package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avehner/ganttform/internal/db"
	"github.com/avehner/ganttform/internal/domain"
)

// SQLiteTemplateDependencyRepo implements TemplateDependencyRepo using a
// SQLite database.
type SQLiteTemplateDependencyRepo struct {
	db db.DBTX
}

// NewSQLiteTemplateDependencyRepo creates a new SQLiteTemplateDependencyRepo.
func NewSQLiteTemplateDependencyRepo(conn db.DBTX) *SQLiteTemplateDependencyRepo {
	return &SQLiteTemplateDependencyRepo{db: conn}
}

func (r *SQLiteTemplateDependencyRepo) Create(ctx context.Context, d *domain.TemplateDependency) error {
	query := `INSERT INTO template_dependencies
		(dependent_task_template_id, prerequisite_task_template_id, dependency_type, lag_days)
		VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		d.DependentTaskTemplateID,
		d.PrerequisiteTaskTemplateID,
		string(d.Type),
		d.LagDays,
	)
	if err != nil {
		return fmt.Errorf("inserting template dependency: %w", err)
	}
	return nil
}

func (r *SQLiteTemplateDependencyRepo) Delete(ctx context.Context, dependentID, prerequisiteID string) error {
	query := `DELETE FROM template_dependencies
		WHERE dependent_task_template_id = ? AND prerequisite_task_template_id = ?`
	_, err := r.db.ExecContext(ctx, query, dependentID, prerequisiteID)
	if err != nil {
		return fmt.Errorf("deleting template dependency: %w", err)
	}
	return nil
}

func (r *SQLiteTemplateDependencyRepo) ListByTemplate(ctx context.Context, templateID string) ([]domain.TemplateDependency, error) {
	query := `SELECT d.dependent_task_template_id, d.prerequisite_task_template_id,
			d.dependency_type, d.lag_days
		FROM template_dependencies d
		JOIN task_templates t ON d.dependent_task_template_id = t.id
		WHERE t.template_id = ?`
	rows, err := r.db.QueryContext(ctx, query, templateID)
	if err != nil {
		return nil, fmt.Errorf("listing template dependencies: %w", err)
	}
	defer rows.Close()
	return r.scanTemplateDependencies(rows)
}

func (r *SQLiteTemplateDependencyRepo) ListPrerequisites(ctx context.Context, taskTemplateID string) ([]domain.TemplateDependency, error) {
	query := `SELECT dependent_task_template_id, prerequisite_task_template_id,
			dependency_type, lag_days
		FROM template_dependencies WHERE dependent_task_template_id = ?`
	rows, err := r.db.QueryContext(ctx, query, taskTemplateID)
	if err != nil {
		return nil, fmt.Errorf("listing template prerequisites: %w", err)
	}
	defer rows.Close()
	return r.scanTemplateDependencies(rows)
}

func (r *SQLiteTemplateDependencyRepo) ListDependents(ctx context.Context, taskTemplateID string) ([]domain.TemplateDependency, error) {
	query := `SELECT dependent_task_template_id, prerequisite_task_template_id,
			dependency_type, lag_days
		FROM template_dependencies WHERE prerequisite_task_template_id = ?`
	rows, err := r.db.QueryContext(ctx, query, taskTemplateID)
	if err != nil {
		return nil, fmt.Errorf("listing template dependents: %w", err)
	}
	defer rows.Close()
	return r.scanTemplateDependencies(rows)
}

func (r *SQLiteTemplateDependencyRepo) scanTemplateDependencies(rows *sql.Rows) ([]domain.TemplateDependency, error) {
	var deps []domain.TemplateDependency
	for rows.Next() {
		var d domain.TemplateDependency
		var depType string
		if err := rows.Scan(&d.DependentTaskTemplateID, &d.PrerequisiteTaskTemplateID, &depType, &d.LagDays); err != nil {
			return nil, fmt.Errorf("scanning template dependency: %w", err)
		}
		d.Type = domain.DependencyType(depType)
		deps = append(deps, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating template dependencies: %w", err)
	}
	return deps, nil
}
