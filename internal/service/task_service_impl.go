package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avehner/ganttform/internal/domain"
	"github.com/avehner/ganttform/internal/repository"
	"github.com/google/uuid"
)

type taskService struct {
	tasks    repository.TaskRepo
	projects repository.ProjectRepo
}

func NewTaskService(tasks repository.TaskRepo, projects repository.ProjectRepo) TaskService {
	return &taskService{tasks: tasks, projects: projects}
}

func (s *taskService) Create(ctx context.Context, t *domain.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	// The owning project must resolve before the insert; FK errors from
	// SQLite are too opaque to surface to callers.
	if _, err := s.projects.GetByID(ctx, t.ProjectID); err != nil {
		return fmt.Errorf("owning project: %w", err)
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Status == "" {
		t.Status = domain.TaskNotStarted
	}
	if t.Priority == "" {
		t.Priority = domain.PriorityMedium
	}
	return s.tasks.Create(ctx, t)
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	return s.tasks.ListByProject(ctx, projectID)
}

// Update edits scalar fields. Reparenting goes through the hierarchy
// service, so the stored parent is preserved here.
func (s *taskService) Update(ctx context.Context, t *domain.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	current, err := s.tasks.GetByID(ctx, t.ID)
	if err != nil {
		return err
	}
	t.ParentID = current.ParentID
	t.UpdatedAt = time.Now().UTC()
	return s.tasks.Update(ctx, t)
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}
