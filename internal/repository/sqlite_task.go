package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avehner/ganttform/internal/db"
	"github.com/avehner/ganttform/internal/domain"
)

// taskColumns is the canonical SELECT column list for tasks.
const taskColumns = `id, project_id, parent_id, name, description, start_date, end_date,
		progress, status, priority, assignee, estimated_hours, actual_hours,
		is_milestone, order_index, created_at, updated_at`

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.ProjectID,
		ptrToNullable(t.ParentID),
		t.Name,
		t.Description,
		t.StartDate.Format(dateLayout),
		t.EndDate.Format(dateLayout),
		t.Progress,
		string(t.Status),
		string(t.Priority),
		t.Assignee,
		t.EstimatedHours,
		t.ActualHours,
		boolToInt(t.IsMilestone),
		t.OrderIndex,
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("getting task: %w", err)
	}
	defer rows.Close()
	tasks, err := r.scanTasks(rows)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}
	return tasks[0], nil
}

func (r *SQLiteTaskRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE project_id = ?
		ORDER BY order_index, created_at`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks by project: %w", err)
	}
	defer rows.Close()
	return r.scanTasks(rows)
}

func (r *SQLiteTaskRepo) ListChildren(ctx context.Context, parentID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE parent_id = ?
		ORDER BY order_index, created_at`
	rows, err := r.db.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("listing child tasks: %w", err)
	}
	defer rows.Close()
	return r.scanTasks(rows)
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET parent_id = ?, name = ?, description = ?, start_date = ?,
		end_date = ?, progress = ?, status = ?, priority = ?, assignee = ?,
		estimated_hours = ?, actual_hours = ?, is_milestone = ?, order_index = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		ptrToNullable(t.ParentID),
		t.Name,
		t.Description,
		t.StartDate.Format(dateLayout),
		t.EndDate.Format(dateLayout),
		t.Progress,
		string(t.Status),
		string(t.Priority),
		t.Assignee,
		t.EstimatedHours,
		t.ActualHours,
		boolToInt(t.IsMilestone),
		t.OrderIndex,
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return requireRowAffected(res, "task", t.ID)
}

// Delete removes the task. Child tasks and edges touching the subtree
// cascade via foreign keys.
func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return requireRowAffected(res, "task", id)
}

func (r *SQLiteTaskRepo) scanTasks(rows *sql.Rows) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		var t domain.Task
		var parentID sql.NullString
		var start, end, created, updated, status, priority string
		var milestone int
		err := rows.Scan(&t.ID, &t.ProjectID, &parentID, &t.Name, &t.Description,
			&start, &end, &t.Progress, &status, &priority, &t.Assignee,
			&t.EstimatedHours, &t.ActualHours, &milestone, &t.OrderIndex,
			&created, &updated)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		if parentID.Valid {
			v := parentID.String
			t.ParentID = &v
		}
		t.StartDate = parseDate(start)
		t.EndDate = parseDate(end)
		t.Status = domain.TaskStatus(status)
		t.Priority = domain.Priority(priority)
		t.IsMilestone = intToBool(milestone)
		t.CreatedAt, _ = time.Parse(time.RFC3339, created)
		t.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
		tasks = append(tasks, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}
