package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avehner/ganttform/internal/db"
	"github.com/avehner/ganttform/internal/domain"
	"github.com/avehner/ganttform/internal/graph"
	"github.com/avehner/ganttform/internal/repository"
)

// graphView abstracts one graph family (tasks or task templates) for the
// shared edge guard. Both methods run against the transaction that will
// carry the write, so the cycle check and the insert observe one snapshot.
type graphView interface {
	owner(ctx context.Context, tx db.DBTX, nodeID string) (string, error)
	edges(ctx context.Context, tx db.DBTX, ownerID string) ([]graph.Edge, error)
}

// checkNewEdge validates a proposed dependent -> prerequisite edge and
// returns the shared owner id. Duplicate edges are reported via errDuplicate.
var errDuplicateEdge = errors.New("duplicate edge")

func checkNewEdge(ctx context.Context, tx db.DBTX, v graphView, dependentID, prerequisiteID string) (string, error) {
	if dependentID == prerequisiteID {
		return "", fmt.Errorf("%w: a node cannot depend on itself", domain.ErrInvalidEdge)
	}

	depOwner, err := v.owner(ctx, tx, dependentID)
	if err != nil {
		return "", err
	}
	preOwner, err := v.owner(ctx, tx, prerequisiteID)
	if err != nil {
		return "", err
	}
	if depOwner != preOwner {
		return "", fmt.Errorf("%w: nodes belong to different owners", domain.ErrInvalidEdge)
	}

	existing, err := v.edges(ctx, tx, depOwner)
	if err != nil {
		return "", err
	}
	for _, e := range existing {
		if e.Dependent == dependentID && e.Prerequisite == prerequisiteID {
			return "", errDuplicateEdge
		}
	}
	if graph.WouldCreateCycle(existing, dependentID, prerequisiteID) {
		return "", fmt.Errorf("%w: edge would create a dependency cycle", domain.ErrInvalidEdge)
	}
	return depOwner, nil
}

// ---- instance graph ----

type dependencyService struct {
	uow      db.UnitOfWork
	database db.DBTX
	observer UseCaseObserver
}

// NewDependencyService creates the dependency guard over the instance graph.
func NewDependencyService(database db.DBTX, uow db.UnitOfWork, observers ...UseCaseObserver) DependencyService {
	return &dependencyService{
		uow:      uow,
		database: database,
		observer: useCaseObserverOrNoop(observers),
	}
}

type taskGraphView struct{}

func (taskGraphView) owner(ctx context.Context, tx db.DBTX, nodeID string) (string, error) {
	t, err := repository.NewSQLiteTaskRepo(tx).GetByID(ctx, nodeID)
	if err != nil {
		return "", err
	}
	return t.ProjectID, nil
}

func (taskGraphView) edges(ctx context.Context, tx db.DBTX, ownerID string) ([]graph.Edge, error) {
	deps, err := repository.NewSQLiteDependencyRepo(tx).ListByProject(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	edges := make([]graph.Edge, len(deps))
	for i, d := range deps {
		edges[i] = graph.Edge{Dependent: d.DependentTaskID, Prerequisite: d.PrerequisiteTaskID}
	}
	return edges, nil
}

func (s *dependencyService) AddDependency(ctx context.Context, dependentID, prerequisiteID string) (err error) {
	defer s.observe(ctx, "add-dependency", dependentID, prerequisiteID, &err)()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, chkErr := checkNewEdge(ctx, tx, taskGraphView{}, dependentID, prerequisiteID); chkErr != nil {
			if errors.Is(chkErr, errDuplicateEdge) {
				return nil
			}
			return chkErr
		}
		return repository.NewSQLiteDependencyRepo(tx).Create(ctx, &domain.TaskDependency{
			DependentTaskID:    dependentID,
			PrerequisiteTaskID: prerequisiteID,
		})
	})
	return err
}

func (s *dependencyService) RemoveDependency(ctx context.Context, dependentID, prerequisiteID string) (err error) {
	defer s.observe(ctx, "remove-dependency", dependentID, prerequisiteID, &err)()
	err = repository.NewSQLiteDependencyRepo(s.database).Delete(ctx, dependentID, prerequisiteID)
	return err
}

func (s *dependencyService) ListPrerequisites(ctx context.Context, taskID string) ([]string, error) {
	deps, err := repository.NewSQLiteDependencyRepo(s.database).ListPrerequisites(ctx, taskID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(deps))
	for i, d := range deps {
		ids[i] = d.PrerequisiteTaskID
	}
	return ids, nil
}

func (s *dependencyService) ListDependents(ctx context.Context, taskID string) ([]string, error) {
	deps, err := repository.NewSQLiteDependencyRepo(s.database).ListDependents(ctx, taskID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(deps))
	for i, d := range deps {
		ids[i] = d.DependentTaskID
	}
	return ids, nil
}

func (s *dependencyService) observe(ctx context.Context, name, dependentID, prerequisiteID string, err *error) func() {
	startedAt := time.Now().UTC()
	return func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      name,
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   *err == nil,
			Err:       *err,
			Fields: map[string]any{
				"dependent":    dependentID,
				"prerequisite": prerequisiteID,
			},
		})
	}
}

// ---- template graph ----

type templateDependencyService struct {
	uow      db.UnitOfWork
	database db.DBTX
	observer UseCaseObserver
}

// NewTemplateDependencyService creates the dependency guard over the
// template graph. Mutations on built-in templates are rejected.
func NewTemplateDependencyService(database db.DBTX, uow db.UnitOfWork, observers ...UseCaseObserver) TemplateDependencyService {
	return &templateDependencyService{
		uow:      uow,
		database: database,
		observer: useCaseObserverOrNoop(observers),
	}
}

type templateGraphView struct{}

func (templateGraphView) owner(ctx context.Context, tx db.DBTX, nodeID string) (string, error) {
	t, err := repository.NewSQLiteTaskTemplateRepo(tx).GetByID(ctx, nodeID)
	if err != nil {
		return "", err
	}
	return t.TemplateID, nil
}

func (templateGraphView) edges(ctx context.Context, tx db.DBTX, ownerID string) ([]graph.Edge, error) {
	deps, err := repository.NewSQLiteTemplateDependencyRepo(tx).ListByTemplate(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	edges := make([]graph.Edge, len(deps))
	for i, d := range deps {
		edges[i] = graph.Edge{Dependent: d.DependentTaskTemplateID, Prerequisite: d.PrerequisiteTaskTemplateID}
	}
	return edges, nil
}

func (s *templateDependencyService) AddDependency(ctx context.Context, dependentID, prerequisiteID string, depType domain.DependencyType, lagDays int) error {
	if !domain.ValidDependencyTypes[string(depType)] {
		return fmt.Errorf("%w: unknown dependency type %q", domain.ErrValidationFailed, depType)
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		ownerID, err := checkNewEdge(ctx, tx, templateGraphView{}, dependentID, prerequisiteID)
		if err != nil {
			if errors.Is(err, errDuplicateEdge) {
				return nil
			}
			return err
		}
		if err := requireMutableTemplate(ctx, tx, ownerID); err != nil {
			return err
		}
		return repository.NewSQLiteTemplateDependencyRepo(tx).Create(ctx, &domain.TemplateDependency{
			DependentTaskTemplateID:    dependentID,
			PrerequisiteTaskTemplateID: prerequisiteID,
			Type:                       depType,
			LagDays:                    lagDays,
		})
	})
}

func (s *templateDependencyService) RemoveDependency(ctx context.Context, dependentID, prerequisiteID string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		dep, err := repository.NewSQLiteTaskTemplateRepo(tx).GetByID(ctx, dependentID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Nothing to remove; removal is idempotent.
				return nil
			}
			return err
		}
		if err := requireMutableTemplate(ctx, tx, dep.TemplateID); err != nil {
			return err
		}
		return repository.NewSQLiteTemplateDependencyRepo(tx).Delete(ctx, dependentID, prerequisiteID)
	})
}

func (s *templateDependencyService) ListPrerequisites(ctx context.Context, taskTemplateID string) ([]domain.TemplateDependency, error) {
	return repository.NewSQLiteTemplateDependencyRepo(s.database).ListPrerequisites(ctx, taskTemplateID)
}

func (s *templateDependencyService) ListDependents(ctx context.Context, taskTemplateID string) ([]domain.TemplateDependency, error) {
	return repository.NewSQLiteTemplateDependencyRepo(s.database).ListDependents(ctx, taskTemplateID)
}

// requireMutableTemplate rejects structural edits on built-in templates.
func requireMutableTemplate(ctx context.Context, tx db.DBTX, templateID string) error {
	tpl, err := repository.NewSQLiteTemplateRepo(tx).GetByID(ctx, templateID)
	if err != nil {
		return err
	}
	if tpl.IsBuiltIn {
		return fmt.Errorf("template %s: %w", templateID, domain.ErrBuiltInTemplateProtected)
	}
	return nil
}
