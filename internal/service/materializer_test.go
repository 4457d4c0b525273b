package service

import (
	"context"
	"testing"
	"time"

	"github.com/avehner/ganttform/internal/domain"
	"github.com/avehner/ganttform/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// TestMaterializer_WorkedExample pins the documented scenario: template tasks
// A(offset 0, duration 10) and B(offset 10, duration 30) with B depending on
// A, materialized from 2024-03-08.
func TestMaterializer_WorkedExample(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tpl := testutil.NewTestTemplate("Source Template", testutil.WithEstimates(50000, 40))
	require.NoError(t, env.templates.Create(ctx, tpl))

	a := testutil.NewTestTaskTemplate(tpl.ID, "A", testutil.WithSchedule(0, 10))
	b := testutil.NewTestTaskTemplate(tpl.ID, "B", testutil.WithSchedule(10, 30))
	require.NoError(t, env.taskTemplates.Create(ctx, a))
	require.NoError(t, env.taskTemplates.Create(ctx, b))
	require.NoError(t, env.templateDeps.Create(ctx, &domain.TemplateDependency{
		DependentTaskTemplateID:    b.ID,
		PrerequisiteTaskTemplateID: a.ID,
		Type:                       domain.FinishToStart,
		LagDays:                    1,
	}))

	res, err := env.materializer().CreateFromTemplate(ctx, tpl.ID, "Spring Launch", "morgan", day("2024-03-08"))
	require.NoError(t, err)
	require.Equal(t, 2, res.TaskCount)
	require.Equal(t, 1, res.DependencyCount)

	tasks, err := env.tasks.ListByProject(ctx, res.Project.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	byName := map[string]*domain.Task{}
	for _, task := range tasks {
		byName[task.Name] = task
	}

	assert.Equal(t, day("2024-03-08"), byName["A"].StartDate)
	assert.Equal(t, day("2024-03-18"), byName["A"].EndDate)
	assert.Equal(t, day("2024-03-18"), byName["B"].StartDate)
	assert.Equal(t, day("2024-04-17"), byName["B"].EndDate)

	// The single instance edge runs from B's new id to A's new id; type and
	// lag are not carried over.
	deps, err := env.deps.ListByProject(ctx, res.Project.ID)
	require.NoError(t, err)
	require.Len(t, deps, 1)
	assert.Equal(t, byName["B"].ID, deps[0].DependentTaskID)
	assert.Equal(t, byName["A"].ID, deps[0].PrerequisiteTaskID)

	got, err := env.templates.GetByID(ctx, tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.UsageCount, "usage count bumps by exactly one")
}

func TestMaterializer_CopiesScalarsAndResetsProgress(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tpl := testutil.NewTestTemplate("Kitchen Remodel", testutil.WithEstimates(12000, 21))
	require.NoError(t, env.templates.Create(ctx, tpl))

	tt := testutil.NewTestTaskTemplate(tpl.ID, "Demolition", testutil.WithSchedule(2, 3))
	tt.Description = "Remove cabinets and counters"
	tt.DefaultAssigneeRole = "contractor"
	tt.EstimatedHours = 24
	tt.Priority = domain.PriorityHigh
	require.NoError(t, env.taskTemplates.Create(ctx, tt))

	res, err := env.materializer().CreateFromTemplate(ctx, tpl.ID, "Elm St Remodel", "casey", day("2025-01-06"))
	require.NoError(t, err)

	assert.Equal(t, "Elm St Remodel", res.Project.Name)
	assert.Equal(t, "casey", res.Project.Manager)
	assert.Equal(t, 12000.0, res.Project.Budget)
	assert.Equal(t, day("2025-01-06"), res.Project.StartDate)
	assert.Equal(t, day("2025-01-27"), res.Project.EndDate, "end = start + estimated duration")

	tasks, err := env.tasks.ListByProject(ctx, res.Project.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	task := tasks[0]
	assert.Equal(t, "Demolition", task.Name)
	assert.Equal(t, "Remove cabinets and counters", task.Description)
	assert.Equal(t, "contractor", task.Assignee)
	assert.Equal(t, 24.0, task.EstimatedHours)
	assert.Equal(t, domain.PriorityHigh, task.Priority)
	assert.Equal(t, domain.TaskNotStarted, task.Status)
	assert.Equal(t, 0, task.Progress)
}

func TestMaterializer_RemapsHierarchy(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tpl, _ := env.seedTemplateWithTasks(t, 0)
	parent := testutil.NewTestTaskTemplate(tpl.ID, "Phase 1")
	require.NoError(t, env.taskTemplates.Create(ctx, parent))
	child := testutil.NewTestTaskTemplate(tpl.ID, "Step 1.1", testutil.WithTaskTemplateParent(parent.ID))
	require.NoError(t, env.taskTemplates.Create(ctx, child))
	grandchild := testutil.NewTestTaskTemplate(tpl.ID, "Step 1.1.1", testutil.WithTaskTemplateParent(child.ID))
	require.NoError(t, env.taskTemplates.Create(ctx, grandchild))

	res, err := env.materializer().CreateFromTemplate(ctx, tpl.ID, "Hier", "drew", day("2024-06-01"))
	require.NoError(t, err)
	assert.Equal(t, 2, res.HierarchyCount)

	tasks, err := env.tasks.ListByProject(ctx, res.Project.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 3)

	byName := map[string]*domain.Task{}
	ids := map[string]bool{}
	for _, task := range tasks {
		byName[task.Name] = task
		ids[task.ID] = true
	}
	require.Nil(t, byName["Phase 1"].ParentID)
	require.NotNil(t, byName["Step 1.1"].ParentID)
	assert.Equal(t, byName["Phase 1"].ID, *byName["Step 1.1"].ParentID)
	require.NotNil(t, byName["Step 1.1.1"].ParentID)
	assert.Equal(t, byName["Step 1.1"].ID, *byName["Step 1.1.1"].ParentID)

	// No instance may point at a template id: every endpoint must be one of
	// the freshly allocated tasks.
	for _, task := range tasks {
		if task.ParentID != nil {
			assert.True(t, ids[*task.ParentID], "parent id %s must be an instance id", *task.ParentID)
		}
	}
}

func TestMaterializer_EmptyTemplate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tpl, _ := env.seedTemplateWithTasks(t, 0)

	res, err := env.materializer().CreateFromTemplate(ctx, tpl.ID, "Empty", "sam", day("2024-01-01"))
	require.NoError(t, err, "a template with zero tasks is not an error")
	assert.Equal(t, 0, res.TaskCount)

	tasks, err := env.tasks.ListByProject(ctx, res.Project.ID)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	got, err := env.templates.GetByID(ctx, tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.UsageCount)
}

func TestMaterializer_TemplateNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.materializer().CreateFromTemplate(context.Background(), "no-such-id", "X", "y", day("2024-01-01"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMaterializer_OffsetsAreIndependentNotCumulative(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tpl, _ := env.seedTemplateWithTasks(t, 0)
	a := testutil.NewTestTaskTemplate(tpl.ID, "A", testutil.WithSchedule(0, 5))
	b := testutil.NewTestTaskTemplate(tpl.ID, "B", testutil.WithSchedule(3, 5))
	require.NoError(t, env.taskTemplates.Create(ctx, a))
	require.NoError(t, env.taskTemplates.Create(ctx, b))
	// B depends on A finishing, with lag; dates must ignore it.
	require.NoError(t, env.templateDeps.Create(ctx, &domain.TemplateDependency{
		DependentTaskTemplateID:    b.ID,
		PrerequisiteTaskTemplateID: a.ID,
		Type:                       domain.FinishToStart,
		LagDays:                    10,
	}))

	res, err := env.materializer().CreateFromTemplate(ctx, tpl.ID, "Offsets", "lee", day("2024-02-01"))
	require.NoError(t, err)

	tasks, err := env.tasks.ListByProject(ctx, res.Project.ID)
	require.NoError(t, err)
	for _, task := range tasks {
		if task.Name == "B" {
			assert.Equal(t, day("2024-02-04"), task.StartDate,
				"B starts at project start + its own offset, not after A plus lag")
		}
	}
}
