package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/avehner/ganttform/internal/cli/formatter"
	"github.com/avehner/ganttform/internal/domain"
	"github.com/spf13/cobra"
)

const dateFlagLayout = "2006-01-02"

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectInspectCmd(app),
		newProjectUpdateCmd(app),
		newProjectRemoveCmd(app),
		newProjectInitCmd(app),
		newProjectBoardCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name, desc, manager, start, end, priority string
	var budget float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := time.Parse(dateFlagLayout, start)
			if err != nil {
				return fmt.Errorf("invalid start date %q: %w", start, err)
			}

			p := &domain.Project{
				Name:        name,
				Description: desc,
				Manager:     manager,
				StartDate:   startDate,
				Budget:      budget,
			}
			if priority != "" {
				p.Priority = domain.Priority(priority)
			}
			if end != "" {
				endDate, err := time.Parse(dateFlagLayout, end)
				if err != nil {
					return fmt.Errorf("invalid end date %q: %w", end, err)
				}
				p.EndDate = endDate
			}

			if err := app.Projects.Create(context.Background(), p); err != nil {
				return err
			}

			fmt.Printf("Created project %s [%s]\n", p.Name, p.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&desc, "description", "", "Project description")
	cmd.Flags().StringVar(&manager, "manager", "", "Project manager")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (low|medium|high|critical)")
	cmd.Flags().Float64Var(&budget, "budget", 0, "Budget")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(context.Background())
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Println("No projects found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatProjectList(projects))
			return nil
		},
	}
}

func newProjectInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show project details and task chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			data, err := loadProjectInspect(ctx, app, projectID)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatProjectInspect(*data))
			return nil
		},
	}
}

func loadProjectInspect(ctx context.Context, app *App, projectID string) (*formatter.ProjectInspectData, error) {
	p, err := app.Projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	tasks, err := app.Tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	var edges []domain.TaskDependency
	for _, t := range tasks {
		prereqs, err := app.Deps.ListPrerequisites(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		for _, pre := range prereqs {
			edges = append(edges, domain.TaskDependency{DependentTaskID: t.ID, PrerequisiteTaskID: pre})
		}
	}

	return &formatter.ProjectInspectData{Project: p, Tasks: tasks, Dependencies: edges}, nil
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var name, desc, manager, end, status, priority string
	var budget float64

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, projectID)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				p.Name = name
			}
			if cmd.Flags().Changed("description") {
				p.Description = desc
			}
			if cmd.Flags().Changed("manager") {
				p.Manager = manager
			}
			if cmd.Flags().Changed("end") {
				endDate, err := time.Parse(dateFlagLayout, end)
				if err != nil {
					return fmt.Errorf("invalid end date %q: %w", end, err)
				}
				p.EndDate = endDate
			}
			if cmd.Flags().Changed("status") {
				p.Status = domain.ProjectStatus(status)
			}
			if cmd.Flags().Changed("priority") {
				p.Priority = domain.Priority(priority)
			}
			if cmd.Flags().Changed("budget") {
				p.Budget = budget
			}

			if err := app.Projects.Update(ctx, p); err != nil {
				return err
			}
			fmt.Printf("Updated project %s [%s]\n", p.Name, p.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&desc, "description", "", "Project description")
	cmd.Flags().StringVar(&manager, "manager", "", "Project manager")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&status, "status", "", "Status (planning|active|on_hold|completed|cancelled)")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (low|medium|high|critical)")
	cmd.Flags().Float64Var(&budget, "budget", 0, "Budget")

	return cmd
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a project and all its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Delete(ctx, projectID); err != nil {
				return err
			}
			fmt.Printf("Removed project %s\n", projectID)
			return nil
		},
	}
}

func newProjectInitCmd(app *App) *cobra.Command {
	var templateRef, name, manager, start string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a project from a template",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			// An interactive terminal with missing flags launches the wizard.
			if (templateRef == "" || name == "" || start == "") &&
				app.IsInteractive != nil && app.IsInteractive() {
				return runInitWizard(ctx, app, &templateRef, &name, &manager, &start)
			}

			templateID, err := resolveTemplateID(ctx, app, templateRef)
			if err != nil {
				return err
			}
			startDate, err := time.Parse(dateFlagLayout, start)
			if err != nil {
				return fmt.Errorf("invalid start date %q: %w", start, err)
			}

			result, err := app.Materialize.CreateFromTemplate(ctx, templateID, name, manager, startDate)
			if err != nil {
				return err
			}
			printInitResult(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&templateRef, "template", "", "Template ID")
	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&manager, "manager", "", "Project manager")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")

	return cmd
}
