package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avehner/ganttform/internal/db"
	"github.com/avehner/ganttform/internal/domain"
)

const projectColumns = `id, name, description, manager, start_date, end_date,
		status, priority, budget, created_at, updated_at`

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo. Pass a *sql.Tx from
// a UnitOfWork for a tx-scoped repo.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.Description,
		p.Manager,
		p.StartDate.Format(dateLayout),
		p.EndDate.Format(dateLayout),
		string(p.Status),
		string(p.Priority),
		p.Budget,
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanProject(row)
}

func (r *SQLiteProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := r.scanProjectFromRows(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET name = ?, description = ?, manager = ?, start_date = ?,
		end_date = ?, status = ?, priority = ?, budget = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Name,
		p.Description,
		p.Manager,
		p.StartDate.Format(dateLayout),
		p.EndDate.Format(dateLayout),
		string(p.Status),
		string(p.Priority),
		p.Budget,
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return requireRowAffected(res, "project", p.ID)
}

// Delete removes the project. Tasks and dependency edges cascade via
// foreign keys.
func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return requireRowAffected(res, "project", id)
}

func (r *SQLiteProjectRepo) scanProject(row *sql.Row) (*domain.Project, error) {
	var p domain.Project
	var start, end, created, updated, status, priority string
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Manager, &start, &end,
		&status, &priority, &p.Budget, &created, &updated)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("project: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	hydrateProject(&p, start, end, status, priority, created, updated)
	return &p, nil
}

func (r *SQLiteProjectRepo) scanProjectFromRows(rows *sql.Rows) (*domain.Project, error) {
	var p domain.Project
	var start, end, created, updated, status, priority string
	err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Manager, &start, &end,
		&status, &priority, &p.Budget, &created, &updated)
	if err != nil {
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	hydrateProject(&p, start, end, status, priority, created, updated)
	return &p, nil
}

func hydrateProject(p *domain.Project, start, end, status, priority, created, updated string) {
	p.StartDate = parseDate(start)
	p.EndDate = parseDate(end)
	p.Status = domain.ProjectStatus(status)
	p.Priority = domain.Priority(priority)
	p.CreatedAt, _ = time.Parse(time.RFC3339, created)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
}

// requireRowAffected maps zero-row UPDATE/DELETE results to ErrNotFound.
func requireRowAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}
	return nil
}
