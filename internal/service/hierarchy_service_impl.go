package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avehner/ganttform/internal/db"
	"github.com/avehner/ganttform/internal/domain"
	"github.com/avehner/ganttform/internal/graph"
	"github.com/avehner/ganttform/internal/repository"
)

// taskHierarchyService guards parent/child nesting of instance tasks.
type taskHierarchyService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewTaskHierarchyService creates the hierarchy guard for instance tasks.
func NewTaskHierarchyService(uow db.UnitOfWork, observers ...UseCaseObserver) HierarchyService {
	return &taskHierarchyService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *taskHierarchyService) SetParent(ctx context.Context, childID string, parentID *string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "set-task-parent",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"child": childID},
		})
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		tasks := repository.NewSQLiteTaskRepo(tx)
		child, err := tasks.GetByID(ctx, childID)
		if err != nil {
			return err
		}

		if parentID == nil {
			child.ParentID = nil
			child.UpdatedAt = time.Now().UTC()
			return tasks.Update(ctx, child)
		}

		parent, err := tasks.GetByID(ctx, *parentID)
		if err != nil {
			return err
		}
		if parent.ProjectID != child.ProjectID {
			return fmt.Errorf("%w: parent belongs to a different project", domain.ErrInvalidHierarchy)
		}

		siblings, err := tasks.ListByProject(ctx, child.ProjectID)
		if err != nil {
			return err
		}
		parents := make(map[string]*string, len(siblings))
		for _, t := range siblings {
			parents[t.ID] = t.ParentID
		}
		// Rejects self-parenting too: a node is its own ancestor.
		if graph.IsAncestor(parents, *parentID, childID) {
			return fmt.Errorf("%w: parent %s is the child or one of its descendants", domain.ErrInvalidHierarchy, *parentID)
		}

		child.ParentID = parentID
		child.UpdatedAt = time.Now().UTC()
		return tasks.Update(ctx, child)
	})
	return err
}

func (s *taskHierarchyService) DeleteSubtree(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "delete-task-subtree",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"task": id},
		})
	}()

	// The schema cascades parent -> children and tasks -> edges, so one
	// delete removes the subtree and every edge touching it atomically.
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteTaskRepo(tx).Delete(ctx, id)
	})
	return err
}

// templateHierarchyService guards parent/child nesting of task templates.
type templateHierarchyService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewTemplateHierarchyService creates the hierarchy guard for task
// templates. Mutations on built-in templates are rejected.
func NewTemplateHierarchyService(uow db.UnitOfWork, observers ...UseCaseObserver) HierarchyService {
	return &templateHierarchyService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *templateHierarchyService) SetParent(ctx context.Context, childID string, parentID *string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		taskTemplates := repository.NewSQLiteTaskTemplateRepo(tx)
		child, err := taskTemplates.GetByID(ctx, childID)
		if err != nil {
			return err
		}
		if err := requireMutableTemplate(ctx, tx, child.TemplateID); err != nil {
			return err
		}

		if parentID == nil {
			child.ParentID = nil
			child.UpdatedAt = time.Now().UTC()
			return taskTemplates.Update(ctx, child)
		}

		parent, err := taskTemplates.GetByID(ctx, *parentID)
		if err != nil {
			return err
		}
		if parent.TemplateID != child.TemplateID {
			return fmt.Errorf("%w: parent belongs to a different template", domain.ErrInvalidHierarchy)
		}

		siblings, err := taskTemplates.ListByTemplate(ctx, child.TemplateID)
		if err != nil {
			return err
		}
		parents := make(map[string]*string, len(siblings))
		for _, t := range siblings {
			parents[t.ID] = t.ParentID
		}
		if graph.IsAncestor(parents, *parentID, childID) {
			return fmt.Errorf("%w: parent %s is the child or one of its descendants", domain.ErrInvalidHierarchy, *parentID)
		}

		child.ParentID = parentID
		child.UpdatedAt = time.Now().UTC()
		return taskTemplates.Update(ctx, child)
	})
}

func (s *templateHierarchyService) DeleteSubtree(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		taskTemplates := repository.NewSQLiteTaskTemplateRepo(tx)
		child, err := taskTemplates.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := requireMutableTemplate(ctx, tx, child.TemplateID); err != nil {
			return err
		}
		return taskTemplates.Delete(ctx, id)
	})
}
