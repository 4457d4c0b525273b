package service

import (
	"context"
	"testing"

	"github.com/avehner/ganttform/internal/domain"
	"github.com/avehner/ganttform/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskHierarchy_SetAndClearParent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, tasks := env.seedProjectWithTasks(t, 2)

	svc := NewTaskHierarchyService(env.uow)
	require.NoError(t, svc.SetParent(ctx, tasks[1].ID, &tasks[0].ID))

	got, err := env.tasks.GetByID(ctx, tasks[1].ID)
	require.NoError(t, err)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, tasks[0].ID, *got.ParentID)

	require.NoError(t, svc.SetParent(ctx, tasks[1].ID, nil))
	got, err = env.tasks.GetByID(ctx, tasks[1].ID)
	require.NoError(t, err)
	assert.Nil(t, got.ParentID)
}

func TestTaskHierarchy_RejectsSelfParent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, tasks := env.seedProjectWithTasks(t, 1)

	svc := NewTaskHierarchyService(env.uow)
	err := svc.SetParent(ctx, tasks[0].ID, &tasks[0].ID)
	assert.ErrorIs(t, err, domain.ErrInvalidHierarchy)
}

func TestTaskHierarchy_RejectsDescendantParent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, tasks := env.seedProjectWithTasks(t, 3)

	svc := NewTaskHierarchyService(env.uow)
	// 0 <- 1 <- 2
	require.NoError(t, svc.SetParent(ctx, tasks[1].ID, &tasks[0].ID))
	require.NoError(t, svc.SetParent(ctx, tasks[2].ID, &tasks[1].ID))

	err := svc.SetParent(ctx, tasks[0].ID, &tasks[2].ID)
	require.ErrorIs(t, err, domain.ErrInvalidHierarchy)

	got, err2 := env.tasks.GetByID(ctx, tasks[0].ID)
	require.NoError(t, err2)
	assert.Nil(t, got.ParentID, "rejected reparent leaves the tree unchanged")
}

func TestTaskHierarchy_RejectsCrossProjectParent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, tasks := env.seedProjectWithTasks(t, 1)

	other := testutil.NewTestProject("Other Project")
	require.NoError(t, env.projects.Create(ctx, other))
	foreign := testutil.NewTestTask(other.ID, "Foreign")
	require.NoError(t, env.tasks.Create(ctx, foreign))

	svc := NewTaskHierarchyService(env.uow)
	err := svc.SetParent(ctx, tasks[0].ID, &foreign.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidHierarchy)
}

func TestTaskHierarchy_UnknownChildIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	svc := NewTaskHierarchyService(env.uow)
	err := svc.SetParent(context.Background(), "missing", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTaskHierarchy_DeleteSubtree(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, tasks := env.seedProjectWithTasks(t, 4)

	hier := NewTaskHierarchyService(env.uow)
	deps := NewDependencyService(env.db, env.uow)

	// 0 <- 1 <- 2, with 3 outside the subtree depending on 2.
	require.NoError(t, hier.SetParent(ctx, tasks[1].ID, &tasks[0].ID))
	require.NoError(t, hier.SetParent(ctx, tasks[2].ID, &tasks[1].ID))
	require.NoError(t, deps.AddDependency(ctx, tasks[3].ID, tasks[2].ID))

	require.NoError(t, hier.DeleteSubtree(ctx, tasks[1].ID))

	_, err := env.tasks.GetByID(ctx, tasks[1].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = env.tasks.GetByID(ctx, tasks[2].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "grandchild goes with the subtree")

	got, err := env.tasks.GetByID(ctx, tasks[0].ID)
	require.NoError(t, err)
	assert.Nil(t, got.ParentID)

	prereqs, err := deps.ListPrerequisites(ctx, tasks[3].ID)
	require.NoError(t, err)
	assert.Empty(t, prereqs, "edges touching removed tasks are gone")
}

func TestTemplateHierarchy_SetParentAndDeleteSubtree(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, steps := env.seedTemplateWithTasks(t, 3)

	svc := NewTemplateHierarchyService(env.uow)
	require.NoError(t, svc.SetParent(ctx, steps[1].ID, &steps[0].ID))
	require.NoError(t, svc.SetParent(ctx, steps[2].ID, &steps[1].ID))

	err := svc.SetParent(ctx, steps[0].ID, &steps[2].ID)
	assert.ErrorIs(t, err, domain.ErrInvalidHierarchy)

	require.NoError(t, svc.DeleteSubtree(ctx, steps[1].ID))
	_, err = env.taskTemplates.GetByID(ctx, steps[2].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTemplateHierarchy_BuiltInProtected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, steps := env.seedTemplateWithTasks(t, 2, testutil.WithBuiltIn())

	svc := NewTemplateHierarchyService(env.uow)
	err := svc.SetParent(ctx, steps[1].ID, &steps[0].ID)
	assert.ErrorIs(t, err, domain.ErrBuiltInTemplateProtected)

	err = svc.DeleteSubtree(ctx, steps[0].ID)
	assert.ErrorIs(t, err, domain.ErrBuiltInTemplateProtected)
}
