package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avehner/ganttform/internal/db"
	"github.com/avehner/ganttform/internal/domain"
)

const taskTemplateColumns = `id, template_id, parent_id, name, description,
		default_assignee_role, estimated_hours, estimated_duration_days,
		start_offset_days, priority, order_index, is_milestone, is_critical_path,
		created_at, updated_at`

// SQLiteTaskTemplateRepo implements TaskTemplateRepo using a SQLite database.
type SQLiteTaskTemplateRepo struct {
	db db.DBTX
}

// NewSQLiteTaskTemplateRepo creates a new SQLiteTaskTemplateRepo.
func NewSQLiteTaskTemplateRepo(conn db.DBTX) *SQLiteTaskTemplateRepo {
	return &SQLiteTaskTemplateRepo{db: conn}
}

func (r *SQLiteTaskTemplateRepo) Create(ctx context.Context, t *domain.TaskTemplate) error {
	query := `INSERT INTO task_templates (` + taskTemplateColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.TemplateID,
		ptrToNullable(t.ParentID),
		t.Name,
		t.Description,
		t.DefaultAssigneeRole,
		t.EstimatedHours,
		t.EstimatedDurationDays,
		t.StartOffsetDays,
		string(t.Priority),
		t.OrderIndex,
		boolToInt(t.IsMilestone),
		boolToInt(t.IsCriticalPath),
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task template: %w", err)
	}
	return nil
}

func (r *SQLiteTaskTemplateRepo) GetByID(ctx context.Context, id string) (*domain.TaskTemplate, error) {
	query := `SELECT ` + taskTemplateColumns + ` FROM task_templates WHERE id = ?`
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("getting task template: %w", err)
	}
	defer rows.Close()
	templates, err := r.scanTaskTemplates(rows)
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return nil, fmt.Errorf("task template %s: %w", id, domain.ErrNotFound)
	}
	return templates[0], nil
}

func (r *SQLiteTaskTemplateRepo) ListByTemplate(ctx context.Context, templateID string) ([]*domain.TaskTemplate, error) {
	query := `SELECT ` + taskTemplateColumns + ` FROM task_templates
		WHERE template_id = ? ORDER BY order_index, created_at`
	rows, err := r.db.QueryContext(ctx, query, templateID)
	if err != nil {
		return nil, fmt.Errorf("listing task templates: %w", err)
	}
	defer rows.Close()
	return r.scanTaskTemplates(rows)
}

func (r *SQLiteTaskTemplateRepo) Update(ctx context.Context, t *domain.TaskTemplate) error {
	query := `UPDATE task_templates SET parent_id = ?, name = ?, description = ?,
		default_assignee_role = ?, estimated_hours = ?, estimated_duration_days = ?,
		start_offset_days = ?, priority = ?, order_index = ?, is_milestone = ?,
		is_critical_path = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		ptrToNullable(t.ParentID),
		t.Name,
		t.Description,
		t.DefaultAssigneeRole,
		t.EstimatedHours,
		t.EstimatedDurationDays,
		t.StartOffsetDays,
		string(t.Priority),
		t.OrderIndex,
		boolToInt(t.IsMilestone),
		boolToInt(t.IsCriticalPath),
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task template: %w", err)
	}
	return requireRowAffected(res, "task template", t.ID)
}

func (r *SQLiteTaskTemplateRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM task_templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task template: %w", err)
	}
	return requireRowAffected(res, "task template", id)
}

func (r *SQLiteTaskTemplateRepo) scanTaskTemplates(rows *sql.Rows) ([]*domain.TaskTemplate, error) {
	var templates []*domain.TaskTemplate
	for rows.Next() {
		var t domain.TaskTemplate
		var parentID sql.NullString
		var priority, created, updated string
		var milestone, critical int
		err := rows.Scan(&t.ID, &t.TemplateID, &parentID, &t.Name, &t.Description,
			&t.DefaultAssigneeRole, &t.EstimatedHours, &t.EstimatedDurationDays,
			&t.StartOffsetDays, &priority, &t.OrderIndex, &milestone, &critical,
			&created, &updated)
		if err != nil {
			return nil, fmt.Errorf("scanning task template: %w", err)
		}
		if parentID.Valid {
			v := parentID.String
			t.ParentID = &v
		}
		t.Priority = domain.Priority(priority)
		t.IsMilestone = intToBool(milestone)
		t.IsCriticalPath = intToBool(critical)
		t.CreatedAt, _ = time.Parse(time.RFC3339, created)
		t.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
		templates = append(templates, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating task templates: %w", err)
	}
	return templates, nil
}
