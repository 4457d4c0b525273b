package domain

import (
	"fmt"
	"time"
)

type Task struct {
	ID          string
	ProjectID   string
	ParentID    *string
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Progress    int
	Status      TaskStatus
	Priority    Priority
	Assignee    string

	EstimatedHours float64
	ActualHours    float64

	IsMilestone bool
	OrderIndex  int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the task's scalar invariants.
func (t *Task) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("%w: task name is required", ErrValidationFailed)
	}
	if t.EndDate.Before(t.StartDate) {
		return fmt.Errorf("%w: task end date %s is before start date %s",
			ErrValidationFailed, t.EndDate.Format("2006-01-02"), t.StartDate.Format("2006-01-02"))
	}
	if t.Progress < 0 || t.Progress > 100 {
		return fmt.Errorf("%w: progress %d is outside [0,100]", ErrValidationFailed, t.Progress)
	}
	if t.EstimatedHours < 0 || t.ActualHours < 0 {
		return fmt.Errorf("%w: hours must not be negative", ErrValidationFailed)
	}
	return nil
}

// DurationDays returns the task's span in whole days.
func (t *Task) DurationDays() int {
	return int(t.EndDate.Sub(t.StartDate).Hours() / 24)
}

// SpansSingleDay reports whether start and end coincide, which renders
// as a milestone diamond on the chart.
func (t *Task) SpansSingleDay() bool {
	return t.StartDate.Equal(t.EndDate)
}
