package cli

import (
	"github.com/avehner/ganttform/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects     service.ProjectService
	Tasks        service.TaskService
	Deps         service.DependencyService
	TaskTree     service.HierarchyService
	TemplateTree service.HierarchyService
	Templates    service.TemplateService
	Usage        service.UsageTracker
	TemplateDeps service.TemplateDependencyService
	Materialize  service.Materializer

	// IsInteractive reports whether stdin is a terminal; wizards and the
	// board view require it.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "ganttform" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "ganttform",
		Short: "Gantt-style project planner with templates and dependencies",
	}

	root.AddCommand(
		newProjectCmd(app),
		newTaskCmd(app),
		newDepCmd(app),
		newTemplateCmd(app),
	)

	return root
}
