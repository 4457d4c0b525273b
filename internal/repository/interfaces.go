package repository

import (
	"context"

	"github.com/avehner/ganttform/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	ListChildren(ctx context.Context, parentID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
}

type DependencyRepo interface {
	Create(ctx context.Context, d *domain.TaskDependency) error
	// Delete is a no-op when the edge does not exist.
	Delete(ctx context.Context, dependentID, prerequisiteID string) error
	ListPrerequisites(ctx context.Context, taskID string) ([]domain.TaskDependency, error)
	ListDependents(ctx context.Context, taskID string) ([]domain.TaskDependency, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.TaskDependency, error)
}

type TemplateRepo interface {
	Create(ctx context.Context, t *domain.ProjectTemplate) error
	GetByID(ctx context.Context, id string) (*domain.ProjectTemplate, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.ProjectTemplate, error)
	Update(ctx context.Context, t *domain.ProjectTemplate) error
	Delete(ctx context.Context, id string) error
	// IncrementUsage bumps usage_count by one in a single UPDATE so
	// concurrent materializations never lose an increment.
	IncrementUsage(ctx context.Context, id string) error
}

type TaskTemplateRepo interface {
	Create(ctx context.Context, t *domain.TaskTemplate) error
	GetByID(ctx context.Context, id string) (*domain.TaskTemplate, error)
	ListByTemplate(ctx context.Context, templateID string) ([]*domain.TaskTemplate, error)
	Update(ctx context.Context, t *domain.TaskTemplate) error
	Delete(ctx context.Context, id string) error
}

type TemplateDependencyRepo interface {
	Create(ctx context.Context, d *domain.TemplateDependency) error
	Delete(ctx context.Context, dependentID, prerequisiteID string) error
	ListByTemplate(ctx context.Context, templateID string) ([]domain.TemplateDependency, error)
	ListPrerequisites(ctx context.Context, taskTemplateID string) ([]domain.TemplateDependency, error)
	ListDependents(ctx context.Context, taskTemplateID string) ([]domain.TemplateDependency, error)
}
