package service

import (
	"context"
	"errors"
	"testing"

	"github.com/avehner/ganttform/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMaterializer_FailureLeavesNoPartialProject injects a write failure
// midway through the persistence transaction and verifies nothing of the
// project survives and the usage counter stays untouched.
func TestMaterializer_FailureLeavesNoPartialProject(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tpl, _ := env.seedTemplateWithTasks(t, 3)

	injected := errors.New("disk full")
	failing := &testutil.FailOnNthExecUoW{DB: env.db, FailOn: 3, Err: injected}
	m := NewMaterializer(env.templates, env.taskTemplates, env.templateDeps, failing)

	_, err := m.CreateFromTemplate(ctx, tpl.ID, "Doomed", "sam", day("2024-05-01"))
	require.Error(t, err)
	assert.ErrorIs(t, err, injected)

	projects, err := env.projects.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects, "no partial project may be visible after rollback")

	got, err := env.templates.GetByID(ctx, tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.UsageCount, "failed materialization must not count as a use")
}

// TestMaterializer_FailOnEveryWritePosition sweeps the injection point across
// the whole transaction (project insert, each task insert) and checks the
// all-or-nothing guarantee at every position.
func TestMaterializer_FailOnEveryWritePosition(t *testing.T) {
	for failOn := int32(1); failOn <= 4; failOn++ {
		env := newTestEnv(t)
		ctx := context.Background()
		tpl, _ := env.seedTemplateWithTasks(t, 3)

		failing := &testutil.FailOnNthExecUoW{DB: env.db, FailOn: failOn, Err: errors.New("boom")}
		m := NewMaterializer(env.templates, env.taskTemplates, env.templateDeps, failing)

		_, err := m.CreateFromTemplate(ctx, tpl.ID, "Doomed", "sam", day("2024-05-01"))
		require.Error(t, err, "failOn=%d", failOn)

		projects, listErr := env.projects.List(ctx)
		require.NoError(t, listErr)
		assert.Empty(t, projects, "failOn=%d left a partial project", failOn)

		got, getErr := env.templates.GetByID(ctx, tpl.ID)
		require.NoError(t, getErr)
		assert.Equal(t, 0, got.UsageCount, "failOn=%d bumped usage", failOn)
	}
}
