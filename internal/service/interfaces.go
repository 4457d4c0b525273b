package service

import (
	"context"
	"time"

	"github.com/avehner/ganttform/internal/domain"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	// Delete removes the project, its tasks, and every dependency edge
	// among them as one unit.
	Delete(ctx context.Context, id string) error
}

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
}

// DependencyService guards dependency edges on the instance graph.
type DependencyService interface {
	// AddDependency records that dependent cannot proceed until
	// prerequisite is done. Fails with domain.ErrInvalidEdge on self-loops,
	// cross-project edges, and edges that would close a cycle.
	AddDependency(ctx context.Context, dependentID, prerequisiteID string) error
	// RemoveDependency is idempotent; removing a missing edge is a no-op.
	RemoveDependency(ctx context.Context, dependentID, prerequisiteID string) error
	ListPrerequisites(ctx context.Context, taskID string) ([]string, error)
	ListDependents(ctx context.Context, taskID string) ([]string, error)
}

// TemplateDependencyService guards typed dependency edges on the template
// graph. Structural edits on built-in templates are rejected.
type TemplateDependencyService interface {
	AddDependency(ctx context.Context, dependentID, prerequisiteID string, depType domain.DependencyType, lagDays int) error
	RemoveDependency(ctx context.Context, dependentID, prerequisiteID string) error
	ListPrerequisites(ctx context.Context, taskTemplateID string) ([]domain.TemplateDependency, error)
	ListDependents(ctx context.Context, taskTemplateID string) ([]domain.TemplateDependency, error)
}

// HierarchyService guards parent/child nesting for one graph family.
type HierarchyService interface {
	// SetParent reparents child beneath parent. A nil parent clears the
	// assignment and always succeeds for an existing child. Fails with
	// domain.ErrInvalidHierarchy on self-parenting, descendant parents,
	// and cross-owner parents.
	SetParent(ctx context.Context, childID string, parentID *string) error
	// DeleteSubtree removes the node, its whole subtree, and every
	// dependency edge touching a removed node.
	DeleteSubtree(ctx context.Context, id string) error
}

type TemplateService interface {
	Create(ctx context.Context, t *domain.ProjectTemplate) error
	GetByID(ctx context.Context, id string) (*domain.ProjectTemplate, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.ProjectTemplate, error)
	// Update edits scalar metadata. Allowed on built-in templates.
	Update(ctx context.Context, t *domain.ProjectTemplate) error
	// Delete fails with domain.ErrBuiltInTemplateProtected for built-ins.
	Delete(ctx context.Context, id string) error

	ListTasks(ctx context.Context, templateID string) ([]*domain.TaskTemplate, error)
	// Structural mutations below are rejected on built-in templates.
	AddTask(ctx context.Context, t *domain.TaskTemplate) error
	UpdateTask(ctx context.Context, t *domain.TaskTemplate) error
	RemoveTask(ctx context.Context, taskTemplateID string) error
}

// UsageTracker maintains template usage counters and deletion policy.
type UsageTracker interface {
	RecordUsage(ctx context.Context, templateID string) error
	CanDelete(ctx context.Context, templateID string) (bool, error)
}

// MaterializeResult holds the outcome of instantiating a template.
type MaterializeResult struct {
	Project         *domain.Project
	TaskCount       int
	DependencyCount int
	HierarchyCount  int
}

// Materializer instantiates a concrete project from a template graph.
type Materializer interface {
	CreateFromTemplate(ctx context.Context, templateID, projectName, projectManager string, startDate time.Time) (*MaterializeResult, error)
}
