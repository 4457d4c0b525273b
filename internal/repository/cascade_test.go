package repository

import (
	"context"
	"testing"

	"github.com/avehner/ganttform/internal/domain"
	"github.com/avehner/ganttform/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProject(t *testing.T) (*SQLiteProjectRepo, *SQLiteTaskRepo, *SQLiteDependencyRepo, *domain.Project) {
	t.Helper()
	database := testutil.NewTestDB(t)
	projects := NewSQLiteProjectRepo(database)
	tasks := NewSQLiteTaskRepo(database)
	deps := NewSQLiteDependencyRepo(database)

	proj := testutil.NewTestProject("Cascade Project")
	require.NoError(t, projects.Create(context.Background(), proj))
	return projects, tasks, deps, proj
}

func TestDeleteProject_CascadesTasksAndEdges(t *testing.T) {
	ctx := context.Background()
	projects, tasks, deps, proj := seedProject(t)

	a := testutil.NewTestTask(proj.ID, "A")
	b := testutil.NewTestTask(proj.ID, "B")
	require.NoError(t, tasks.Create(ctx, a))
	require.NoError(t, tasks.Create(ctx, b))
	require.NoError(t, deps.Create(ctx, &domain.TaskDependency{DependentTaskID: b.ID, PrerequisiteTaskID: a.ID}))

	require.NoError(t, projects.Delete(ctx, proj.ID))

	_, err := tasks.GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	edges, err := deps.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Empty(t, edges)
}

func TestDeleteTask_CascadesSubtreeAndEdges(t *testing.T) {
	ctx := context.Background()
	_, tasks, deps, proj := seedProject(t)

	parent := testutil.NewTestTask(proj.ID, "Parent")
	require.NoError(t, tasks.Create(ctx, parent))
	child := testutil.NewTestTask(proj.ID, "Child", testutil.WithTaskParent(parent.ID))
	require.NoError(t, tasks.Create(ctx, child))
	grandchild := testutil.NewTestTask(proj.ID, "Grandchild", testutil.WithTaskParent(child.ID))
	require.NoError(t, tasks.Create(ctx, grandchild))
	outside := testutil.NewTestTask(proj.ID, "Outside")
	require.NoError(t, tasks.Create(ctx, outside))
	require.NoError(t, deps.Create(ctx, &domain.TaskDependency{DependentTaskID: outside.ID, PrerequisiteTaskID: grandchild.ID}))

	kids, err := tasks.ListChildren(ctx, parent.ID)
	require.NoError(t, err)
	require.Len(t, kids, 1)
	assert.Equal(t, child.ID, kids[0].ID)

	require.NoError(t, tasks.Delete(ctx, parent.ID))

	for _, id := range []string{parent.ID, child.ID, grandchild.ID} {
		_, err := tasks.GetByID(ctx, id)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	}

	_, err = tasks.GetByID(ctx, outside.ID)
	assert.NoError(t, err, "tasks outside the subtree survive")

	prereqs, err := deps.ListPrerequisites(ctx, outside.ID)
	require.NoError(t, err)
	assert.Empty(t, prereqs, "edges touching removed tasks are gone")
}

func TestDeleteTemplate_CascadesTaskTemplatesAndEdges(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	templates := NewSQLiteTemplateRepo(database)
	taskTemplates := NewSQLiteTaskTemplateRepo(database)
	templateDeps := NewSQLiteTemplateDependencyRepo(database)

	tpl := testutil.NewTestTemplate("Cascade Template")
	require.NoError(t, templates.Create(ctx, tpl))
	a := testutil.NewTestTaskTemplate(tpl.ID, "A")
	b := testutil.NewTestTaskTemplate(tpl.ID, "B")
	require.NoError(t, taskTemplates.Create(ctx, a))
	require.NoError(t, taskTemplates.Create(ctx, b))
	require.NoError(t, templateDeps.Create(ctx, &domain.TemplateDependency{
		DependentTaskTemplateID:    b.ID,
		PrerequisiteTaskTemplateID: a.ID,
		Type:                       domain.FinishToStart,
	}))

	require.NoError(t, templates.Delete(ctx, tpl.ID))

	_, err := taskTemplates.GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	edges, err := templateDeps.ListByTemplate(ctx, tpl.ID)
	require.NoError(t, err)
	assert.Empty(t, edges)
}

func TestDependencyRepo_DeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	_, tasks, deps, proj := seedProject(t)

	a := testutil.NewTestTask(proj.ID, "A")
	b := testutil.NewTestTask(proj.ID, "B")
	require.NoError(t, tasks.Create(ctx, a))
	require.NoError(t, tasks.Create(ctx, b))
	require.NoError(t, deps.Create(ctx, &domain.TaskDependency{DependentTaskID: b.ID, PrerequisiteTaskID: a.ID}))

	require.NoError(t, deps.Delete(ctx, b.ID, a.ID))
	require.NoError(t, deps.Delete(ctx, b.ID, a.ID))
}

func TestTemplateRepo_IncrementUsage(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	templates := NewSQLiteTemplateRepo(database)

	tpl := testutil.NewTestTemplate("Counted")
	require.NoError(t, templates.Create(ctx, tpl))

	require.NoError(t, templates.IncrementUsage(ctx, tpl.ID))
	require.NoError(t, templates.IncrementUsage(ctx, tpl.ID))
	require.NoError(t, templates.IncrementUsage(ctx, tpl.ID))

	got, err := templates.GetByID(ctx, tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.UsageCount)

	err = templates.IncrementUsage(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
