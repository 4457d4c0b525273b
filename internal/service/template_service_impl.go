package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avehner/ganttform/internal/db"
	"github.com/avehner/ganttform/internal/domain"
	"github.com/avehner/ganttform/internal/repository"
	"github.com/google/uuid"
)

type templateService struct {
	templates     repository.TemplateRepo
	taskTemplates repository.TaskTemplateRepo
	uow           db.UnitOfWork
	observer      UseCaseObserver
}

// NewTemplateService creates the template management service. It doubles as
// the UsageTracker: deletion policy and usage counters live here.
func NewTemplateService(
	templates repository.TemplateRepo,
	taskTemplates repository.TaskTemplateRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) interface {
	TemplateService
	UsageTracker
} {
	return &templateService{
		templates:     templates,
		taskTemplates: taskTemplates,
		uow:           uow,
		observer:      useCaseObserverOrNoop(observers),
	}
}

func (s *templateService) Create(ctx context.Context, t *domain.ProjectTemplate) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	return s.templates.Create(ctx, t)
}

func (s *templateService) GetByID(ctx context.Context, id string) (*domain.ProjectTemplate, error) {
	return s.templates.GetByID(ctx, id)
}

func (s *templateService) List(ctx context.Context, activeOnly bool) ([]*domain.ProjectTemplate, error) {
	return s.templates.List(ctx, activeOnly)
}

// Update edits scalar metadata only; it is permitted on built-in templates.
// The structural shape of a built-in (its task set and edges) stays frozen.
func (s *templateService) Update(ctx context.Context, t *domain.ProjectTemplate) error {
	if err := t.Validate(); err != nil {
		return err
	}
	t.UpdatedAt = time.Now().UTC()
	return s.templates.Update(ctx, t)
}

func (s *templateService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "delete-template",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"template": id},
		})
	}()

	ok, err := s.CanDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("template %s: %w", id, domain.ErrBuiltInTemplateProtected)
	}
	err = s.templates.Delete(ctx, id)
	return err
}

func (s *templateService) ListTasks(ctx context.Context, templateID string) ([]*domain.TaskTemplate, error) {
	return s.taskTemplates.ListByTemplate(ctx, templateID)
}

func (s *templateService) AddTask(ctx context.Context, t *domain.TaskTemplate) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := requireMutableTemplate(ctx, tx, t.TemplateID); err != nil {
			return err
		}
		if t.ParentID != nil {
			parent, err := repository.NewSQLiteTaskTemplateRepo(tx).GetByID(ctx, *t.ParentID)
			if err != nil {
				return err
			}
			if parent.TemplateID != t.TemplateID {
				return fmt.Errorf("%w: parent belongs to a different template", domain.ErrInvalidHierarchy)
			}
		}
		return repository.NewSQLiteTaskTemplateRepo(tx).Create(ctx, t)
	})
}

func (s *templateService) UpdateTask(ctx context.Context, t *domain.TaskTemplate) error {
	if err := t.Validate(); err != nil {
		return err
	}
	t.UpdatedAt = time.Now().UTC()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		current, err := repository.NewSQLiteTaskTemplateRepo(tx).GetByID(ctx, t.ID)
		if err != nil {
			return err
		}
		if err := requireMutableTemplate(ctx, tx, current.TemplateID); err != nil {
			return err
		}
		return repository.NewSQLiteTaskTemplateRepo(tx).Update(ctx, t)
	})
}

func (s *templateService) RemoveTask(ctx context.Context, taskTemplateID string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		current, err := repository.NewSQLiteTaskTemplateRepo(tx).GetByID(ctx, taskTemplateID)
		if err != nil {
			return err
		}
		if err := requireMutableTemplate(ctx, tx, current.TemplateID); err != nil {
			return err
		}
		return repository.NewSQLiteTaskTemplateRepo(tx).Delete(ctx, taskTemplateID)
	})
}

func (s *templateService) RecordUsage(ctx context.Context, templateID string) error {
	return s.templates.IncrementUsage(ctx, templateID)
}

// CanDelete reports whether the template may be deleted. Built-ins are
// protected regardless of usage count.
func (s *templateService) CanDelete(ctx context.Context, templateID string) (bool, error) {
	tpl, err := s.templates.GetByID(ctx, templateID)
	if err != nil {
		return false, err
	}
	return !tpl.IsBuiltIn, nil
}
