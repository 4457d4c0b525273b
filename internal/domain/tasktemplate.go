package domain

import (
	"fmt"
	"time"
)

// TaskTemplate is a task blueprint inside a ProjectTemplate. StartOffsetDays
// is always relative to the materialized project's start date, never to
// another task's dates.
type TaskTemplate struct {
	ID                  string
	TemplateID          string
	ParentID            *string
	Name                string
	Description         string
	DefaultAssigneeRole string

	EstimatedHours        float64
	EstimatedDurationDays int
	StartOffsetDays       int

	Priority       Priority
	OrderIndex     int
	IsMilestone    bool
	IsCriticalPath bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the task template's scalar invariants.
func (t *TaskTemplate) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("%w: task template name is required", ErrValidationFailed)
	}
	if t.EstimatedHours < 0 {
		return fmt.Errorf("%w: estimated hours must not be negative", ErrValidationFailed)
	}
	if t.EstimatedDurationDays < 0 {
		return fmt.Errorf("%w: estimated duration must not be negative", ErrValidationFailed)
	}
	if t.StartOffsetDays < 0 {
		return fmt.Errorf("%w: start offset must not be negative", ErrValidationFailed)
	}
	return nil
}
