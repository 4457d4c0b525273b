package domain

// TaskDependency is an instance-graph edge: the dependent task cannot
// proceed until the prerequisite task is done. Instance edges carry no
// timing metadata; dates are fixed at materialization time.
type TaskDependency struct {
	DependentTaskID    string
	PrerequisiteTaskID string
}

// TemplateDependency is a template-graph edge with timing semantics.
// LagDays may be negative (lead time).
type TemplateDependency struct {
	DependentTaskTemplateID    string
	PrerequisiteTaskTemplateID string
	Type                       DependencyType
	LagDays                    int
}
