package domain

import "errors"

var (
	// ErrNotFound indicates a project, task, or template id did not resolve.
	ErrNotFound = errors.New("not found")

	// ErrInvalidEdge indicates a rejected dependency edge: self-loop,
	// endpoints owned by different projects/templates, or a cycle.
	ErrInvalidEdge = errors.New("invalid dependency edge")

	// ErrInvalidHierarchy indicates a rejected parent assignment: self,
	// descendant parent, or cross-owner.
	ErrInvalidHierarchy = errors.New("invalid hierarchy")

	// ErrBuiltInTemplateProtected indicates a structural mutation or delete
	// attempted on a built-in template.
	ErrBuiltInTemplateProtected = errors.New("built-in template is protected")

	// ErrValidationFailed indicates a scalar invariant violation, such as an
	// end date before the start date or progress outside [0,100].
	ErrValidationFailed = errors.New("validation failed")
)
