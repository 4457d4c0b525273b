package testutil

import (
	"time"

	"github.com/avehner/ganttform/internal/domain"
	"github.com/google/uuid"
)

// Project options
type ProjectOption func(*domain.Project)

func WithProjectDates(start, end time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = start
		p.EndDate = end
	}
}

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		Manager:   "pat",
		StartDate: now.AddDate(0, 0, -7),
		EndDate:   now.AddDate(0, 1, 0),
		Status:    domain.ProjectActive,
		Priority:  domain.PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Task options
type TaskOption func(*domain.Task)

func WithTaskDates(start, end time.Time) TaskOption {
	return func(t *domain.Task) {
		t.StartDate = start
		t.EndDate = end
	}
}

func WithTaskParent(parentID string) TaskOption {
	return func(t *domain.Task) {
		t.ParentID = &parentID
	}
}

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func NewTestTask(projectID, name string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	t := &domain.Task{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      name,
		StartDate: now,
		EndDate:   now.AddDate(0, 0, 5),
		Status:    domain.TaskNotStarted,
		Priority:  domain.PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Template options
type TemplateOption func(*domain.ProjectTemplate)

func WithBuiltIn() TemplateOption {
	return func(t *domain.ProjectTemplate) {
		t.IsBuiltIn = true
	}
}

func WithEstimates(budget float64, durationDays int) TemplateOption {
	return func(t *domain.ProjectTemplate) {
		t.EstimatedBudget = budget
		t.EstimatedDurationDays = durationDays
	}
}

func NewTestTemplate(name string, opts ...TemplateOption) *domain.ProjectTemplate {
	now := time.Now().UTC()
	t := &domain.ProjectTemplate{
		ID:        uuid.New().String(),
		Name:      name,
		Category:  "test",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// TaskTemplate options
type TaskTemplateOption func(*domain.TaskTemplate)

func WithSchedule(offsetDays, durationDays int) TaskTemplateOption {
	return func(t *domain.TaskTemplate) {
		t.StartOffsetDays = offsetDays
		t.EstimatedDurationDays = durationDays
	}
}

func WithTaskTemplateParent(parentID string) TaskTemplateOption {
	return func(t *domain.TaskTemplate) {
		t.ParentID = &parentID
	}
}

func WithMilestone() TaskTemplateOption {
	return func(t *domain.TaskTemplate) {
		t.IsMilestone = true
	}
}

func NewTestTaskTemplate(templateID, name string, opts ...TaskTemplateOption) *domain.TaskTemplate {
	now := time.Now().UTC()
	t := &domain.TaskTemplate{
		ID:                    uuid.New().String(),
		TemplateID:            templateID,
		Name:                  name,
		EstimatedHours:        8,
		EstimatedDurationDays: 1,
		Priority:              domain.PriorityMedium,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}
