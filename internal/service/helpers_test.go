package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/avehner/ganttform/internal/db"
	"github.com/avehner/ganttform/internal/domain"
	"github.com/avehner/ganttform/internal/repository"
	"github.com/avehner/ganttform/internal/testutil"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db            *sql.DB
	uow           db.UnitOfWork
	projects      *repository.SQLiteProjectRepo
	tasks         *repository.SQLiteTaskRepo
	deps          *repository.SQLiteDependencyRepo
	templates     *repository.SQLiteTemplateRepo
	taskTemplates *repository.SQLiteTaskTemplateRepo
	templateDeps  *repository.SQLiteTemplateDependencyRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &testEnv{
		db:            database,
		uow:           testutil.NewTestUoW(database),
		projects:      repository.NewSQLiteProjectRepo(database),
		tasks:         repository.NewSQLiteTaskRepo(database),
		deps:          repository.NewSQLiteDependencyRepo(database),
		templates:     repository.NewSQLiteTemplateRepo(database),
		taskTemplates: repository.NewSQLiteTaskTemplateRepo(database),
		templateDeps:  repository.NewSQLiteTemplateDependencyRepo(database),
	}
}

func (e *testEnv) materializer() Materializer {
	return NewMaterializer(e.templates, e.taskTemplates, e.templateDeps, e.uow)
}

// seedProjectWithTasks creates a project with n tasks and returns them.
func (e *testEnv) seedProjectWithTasks(t *testing.T, n int) (*domain.Project, []*domain.Task) {
	t.Helper()
	ctx := context.Background()
	proj := testutil.NewTestProject("Seed Project")
	require.NoError(t, e.projects.Create(ctx, proj))

	tasks := make([]*domain.Task, n)
	for i := range tasks {
		tasks[i] = testutil.NewTestTask(proj.ID, "Task "+string(rune('A'+i)))
		require.NoError(t, e.tasks.Create(ctx, tasks[i]))
	}
	return proj, tasks
}

// seedTemplateWithTasks creates a template with n task templates.
func (e *testEnv) seedTemplateWithTasks(t *testing.T, n int, opts ...testutil.TemplateOption) (*domain.ProjectTemplate, []*domain.TaskTemplate) {
	t.Helper()
	ctx := context.Background()
	tpl := testutil.NewTestTemplate("Seed Template", opts...)
	require.NoError(t, e.templates.Create(ctx, tpl))

	taskTemplates := make([]*domain.TaskTemplate, n)
	for i := range taskTemplates {
		taskTemplates[i] = testutil.NewTestTaskTemplate(tpl.ID, "Step "+string(rune('A'+i)))
		require.NoError(t, e.taskTemplates.Create(ctx, taskTemplates[i]))
	}
	return tpl, taskTemplates
}
