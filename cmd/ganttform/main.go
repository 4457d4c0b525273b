package main

import (
	"fmt"
	"os"

	"github.com/avehner/ganttform/internal/cli"
	"github.com/avehner/ganttform/internal/config"
	"github.com/avehner/ganttform/internal/db"
	"github.com/avehner/ganttform/internal/repository"
	"github.com/avehner/ganttform/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// lipgloss honors NO_COLOR through termenv.
	if !cfg.Color {
		os.Setenv("NO_COLOR", "1")
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	templateRepo := repository.NewSQLiteTemplateRepo(database)
	taskTemplateRepo := repository.NewSQLiteTaskTemplateRepo(database)
	templateDepRepo := repository.NewSQLiteTemplateDependencyRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogUseCases {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	templateSvc := service.NewTemplateService(templateRepo, taskTemplateRepo, uow, observer)

	app := &cli.App{
		Projects:     service.NewProjectService(projectRepo),
		Tasks:        service.NewTaskService(taskRepo, projectRepo),
		Deps:         service.NewDependencyService(database, uow, observer),
		TaskTree:     service.NewTaskHierarchyService(uow, observer),
		TemplateTree: service.NewTemplateHierarchyService(uow, observer),
		Templates:    templateSvc,
		Usage:        templateSvc,
		TemplateDeps: service.NewTemplateDependencyService(database, uow, observer),
		Materialize:  service.NewMaterializer(templateRepo, taskTemplateRepo, templateDepRepo, uow, observer),
	}

	// Detect interactive terminal for the wizard and board entrypoints.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
