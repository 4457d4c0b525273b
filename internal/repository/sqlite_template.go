package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avehner/ganttform/internal/db"
	"github.com/avehner/ganttform/internal/domain"
)

const templateColumns = `id, name, description, category, estimated_budget,
		estimated_duration_days, icon, is_active, is_built_in, usage_count,
		created_at, updated_at`

// SQLiteTemplateRepo implements TemplateRepo using a SQLite database.
type SQLiteTemplateRepo struct {
	db db.DBTX
}

// NewSQLiteTemplateRepo creates a new SQLiteTemplateRepo.
func NewSQLiteTemplateRepo(conn db.DBTX) *SQLiteTemplateRepo {
	return &SQLiteTemplateRepo{db: conn}
}

func (r *SQLiteTemplateRepo) Create(ctx context.Context, t *domain.ProjectTemplate) error {
	query := `INSERT INTO project_templates (` + templateColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Name,
		t.Description,
		t.Category,
		t.EstimatedBudget,
		t.EstimatedDurationDays,
		t.Icon,
		boolToInt(t.IsActive),
		boolToInt(t.IsBuiltIn),
		t.UsageCount,
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting template: %w", err)
	}
	return nil
}

func (r *SQLiteTemplateRepo) GetByID(ctx context.Context, id string) (*domain.ProjectTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM project_templates WHERE id = ?`
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("getting template: %w", err)
	}
	defer rows.Close()
	templates, err := r.scanTemplates(rows)
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return nil, fmt.Errorf("template %s: %w", id, domain.ErrNotFound)
	}
	return templates[0], nil
}

func (r *SQLiteTemplateRepo) List(ctx context.Context, activeOnly bool) ([]*domain.ProjectTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM project_templates ORDER BY category, name`
	if activeOnly {
		query = `SELECT ` + templateColumns + ` FROM project_templates
			WHERE is_active = 1 ORDER BY category, name`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	defer rows.Close()
	return r.scanTemplates(rows)
}

func (r *SQLiteTemplateRepo) Update(ctx context.Context, t *domain.ProjectTemplate) error {
	query := `UPDATE project_templates SET name = ?, description = ?, category = ?,
		estimated_budget = ?, estimated_duration_days = ?, icon = ?, is_active = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Name,
		t.Description,
		t.Category,
		t.EstimatedBudget,
		t.EstimatedDurationDays,
		t.Icon,
		boolToInt(t.IsActive),
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating template: %w", err)
	}
	return requireRowAffected(res, "template", t.ID)
}

// Delete removes the template. Task templates and template edges cascade
// via foreign keys. Built-in protection is enforced at the service layer.
func (r *SQLiteTemplateRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM project_templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting template: %w", err)
	}
	return requireRowAffected(res, "template", id)
}

func (r *SQLiteTemplateRepo) IncrementUsage(ctx context.Context, id string) error {
	query := `UPDATE project_templates SET usage_count = usage_count + 1, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("incrementing template usage: %w", err)
	}
	return requireRowAffected(res, "template", id)
}

func (r *SQLiteTemplateRepo) scanTemplates(rows *sql.Rows) ([]*domain.ProjectTemplate, error) {
	var templates []*domain.ProjectTemplate
	for rows.Next() {
		var t domain.ProjectTemplate
		var active, builtIn int
		var created, updated string
		err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.Category,
			&t.EstimatedBudget, &t.EstimatedDurationDays, &t.Icon,
			&active, &builtIn, &t.UsageCount, &created, &updated)
		if err != nil {
			return nil, fmt.Errorf("scanning template: %w", err)
		}
		t.IsActive = intToBool(active)
		t.IsBuiltIn = intToBool(builtIn)
		t.CreatedAt, _ = time.Parse(time.RFC3339, created)
		t.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
		templates = append(templates, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating templates: %w", err)
	}
	return templates, nil
}
