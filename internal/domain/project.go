package domain

import (
	"fmt"
	"time"
)

type Project struct {
	ID          string
	Name        string
	Description string
	Manager     string
	StartDate   time.Time
	EndDate     time.Time
	Status      ProjectStatus
	Priority    Priority
	Budget      float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the project's scalar invariants.
func (p *Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: project name is required", ErrValidationFailed)
	}
	if !p.EndDate.IsZero() && p.EndDate.Before(p.StartDate) {
		return fmt.Errorf("%w: project end date %s is before start date %s",
			ErrValidationFailed, p.EndDate.Format("2006-01-02"), p.StartDate.Format("2006-01-02"))
	}
	if p.Budget < 0 {
		return fmt.Errorf("%w: budget must not be negative", ErrValidationFailed)
	}
	return nil
}

// DisplayID returns a short identifier for display, truncating the UUID.
func (p *Project) DisplayID() string {
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
