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

type materializer struct {
	templates     repository.TemplateRepo
	taskTemplates repository.TaskTemplateRepo
	templateDeps  repository.TemplateDependencyRepo
	uow           db.UnitOfWork
	observer      UseCaseObserver
	now           func() time.Time
}

// NewMaterializer creates the template instantiation service.
func NewMaterializer(
	templates repository.TemplateRepo,
	taskTemplates repository.TaskTemplateRepo,
	templateDeps repository.TemplateDependencyRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) Materializer {
	return &materializer{
		templates:     templates,
		taskTemplates: taskTemplates,
		templateDeps:  templateDeps,
		uow:           uow,
		observer:      useCaseObserverOrNoop(observers),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// CreateFromTemplate instantiates a concrete project from a template graph.
//
// The walk is three passes over one snapshot: allocate instance ids for every
// task template, derive dates and copy scalars, then re-link dependency and
// hierarchy edges through the id remap table. Everything persists in a single
// transaction; the usage counter is bumped only after the commit succeeds, so
// a failed materialization never counts as a use.
func (m *materializer) CreateFromTemplate(ctx context.Context, templateID, projectName, projectManager string, startDate time.Time) (result *MaterializeResult, err error) {
	startedAt := m.now()
	fields := map[string]any{
		"template": templateID,
		"project":  projectName,
	}
	defer func() {
		m.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "materialize-template",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	// Load the full template graph as one consistent snapshot.
	tpl, err := m.templates.GetByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	taskTemplates, err := m.taskTemplates.ListByTemplate(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("loading task templates: %w", err)
	}
	templateDeps, err := m.templateDeps.ListByTemplate(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("loading template dependencies: %w", err)
	}

	now := m.now()
	project := &domain.Project{
		ID:          uuid.New().String(),
		Name:        projectName,
		Description: tpl.Description,
		Manager:     projectManager,
		StartDate:   startDate,
		EndDate:     startDate.AddDate(0, 0, tpl.EstimatedDurationDays),
		Status:      domain.ProjectPlanning,
		Priority:    domain.PriorityMedium,
		Budget:      tpl.EstimatedBudget,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := project.Validate(); err != nil {
		return nil, err
	}

	// Pass 1: allocate instance ids. All ids must exist before the
	// dependency and hierarchy passes can re-link edges.
	idMap := make(map[string]string, len(taskTemplates))
	for _, tt := range taskTemplates {
		idMap[tt.ID] = uuid.New().String()
	}

	// Pass 2: derive dates from the project start and copy scalars.
	// Offsets are always relative to the project start, never cumulative
	// through the dependency chain; dependency type/lag do not shift dates.
	tasks := make([]*domain.Task, 0, len(taskTemplates))
	for _, tt := range taskTemplates {
		taskStart := startDate.AddDate(0, 0, tt.StartOffsetDays)
		task := &domain.Task{
			ID:             idMap[tt.ID],
			ProjectID:      project.ID,
			Name:           tt.Name,
			Description:    tt.Description,
			StartDate:      taskStart,
			EndDate:        taskStart.AddDate(0, 0, tt.EstimatedDurationDays),
			Progress:       0,
			Status:         domain.TaskNotStarted,
			Priority:       tt.Priority,
			Assignee:       tt.DefaultAssigneeRole,
			EstimatedHours: tt.EstimatedHours,
			IsMilestone:    tt.IsMilestone,
			OrderIndex:     tt.OrderIndex,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := task.Validate(); err != nil {
			return nil, fmt.Errorf("task template %q: %w", tt.Name, err)
		}
		tasks = append(tasks, task)
	}

	// Pass 3: re-link hierarchy and dependency edges via the remap table.
	hierarchyCount := 0
	for i, tt := range taskTemplates {
		if tt.ParentID == nil {
			continue
		}
		mapped, ok := idMap[*tt.ParentID]
		if !ok {
			return nil, fmt.Errorf("task template %q references parent %s outside template %s", tt.Name, *tt.ParentID, templateID)
		}
		tasks[i].ParentID = &mapped
		hierarchyCount++
	}

	deps := make([]*domain.TaskDependency, 0, len(templateDeps))
	for _, td := range templateDeps {
		dependent, ok := idMap[td.DependentTaskTemplateID]
		if !ok {
			return nil, fmt.Errorf("dependency references task template %s outside template %s", td.DependentTaskTemplateID, templateID)
		}
		prerequisite, ok := idMap[td.PrerequisiteTaskTemplateID]
		if !ok {
			return nil, fmt.Errorf("dependency references task template %s outside template %s", td.PrerequisiteTaskTemplateID, templateID)
		}
		// Type and lag stay on the template edge; the instance edge is the
		// bare relation.
		deps = append(deps, &domain.TaskDependency{
			DependentTaskID:    dependent,
			PrerequisiteTaskID: prerequisite,
		})
	}

	fields["task_count"] = len(tasks)
	fields["dependency_count"] = len(deps)

	// Persist the whole instance graph atomically.
	err = m.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txDeps := repository.NewSQLiteDependencyRepo(tx)

		if err := txProjects.Create(ctx, project); err != nil {
			return fmt.Errorf("creating project: %w", err)
		}
		// Parents must insert before children to satisfy the parent FK.
		for _, task := range orderParentsFirst(tasks) {
			if err := txTasks.Create(ctx, task); err != nil {
				return fmt.Errorf("creating task %q: %w", task.Name, err)
			}
		}
		for _, dep := range deps {
			if err := txDeps.Create(ctx, dep); err != nil {
				return fmt.Errorf("creating dependency: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The counter bump is deliberately outside the transaction: it must
	// happen exactly once per successful materialization, and a failure
	// here must not roll back the already committed project.
	if err := m.templates.IncrementUsage(ctx, templateID); err != nil {
		return nil, fmt.Errorf("recording template usage: %w", err)
	}

	return &MaterializeResult{
		Project:         project,
		TaskCount:       len(tasks),
		DependencyCount: len(deps),
		HierarchyCount:  hierarchyCount,
	}, nil
}

// orderParentsFirst returns tasks sorted so every parent precedes its
// children. Hierarchy depth is bounded by the forest invariant.
func orderParentsFirst(tasks []*domain.Task) []*domain.Task {
	placed := make(map[string]bool, len(tasks))
	out := make([]*domain.Task, 0, len(tasks))
	for len(out) < len(tasks) {
		progressed := false
		for _, t := range tasks {
			if placed[t.ID] {
				continue
			}
			if t.ParentID == nil || placed[*t.ParentID] {
				out = append(out, t)
				placed[t.ID] = true
				progressed = true
			}
		}
		if !progressed {
			// Orphaned parent reference; append the rest rather than spin.
			for _, t := range tasks {
				if !placed[t.ID] {
					out = append(out, t)
					placed[t.ID] = true
				}
			}
		}
	}
	return out
}
