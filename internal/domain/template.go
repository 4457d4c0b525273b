package domain

import (
	"fmt"
	"time"
)

// ProjectTemplate is a reusable project blueprint. Built-in templates ship
// with the application and are protected from deletion and structural edits.
type ProjectTemplate struct {
	ID                    string
	Name                  string
	Description           string
	Category              string
	EstimatedBudget       float64
	EstimatedDurationDays int
	Icon                  string
	IsActive              bool
	IsBuiltIn             bool
	UsageCount            int
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Validate checks the template's scalar invariants.
func (t *ProjectTemplate) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("%w: template name is required", ErrValidationFailed)
	}
	if t.EstimatedBudget < 0 {
		return fmt.Errorf("%w: estimated budget must not be negative", ErrValidationFailed)
	}
	if t.EstimatedDurationDays < 0 {
		return fmt.Errorf("%w: estimated duration must not be negative", ErrValidationFailed)
	}
	return nil
}
