package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/avehner/ganttform/internal/cli/formatter"
	"github.com/avehner/ganttform/internal/domain"
	"github.com/spf13/cobra"
)

func newTemplateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage project templates",
	}

	cmd.AddCommand(
		newTemplateAddCmd(app),
		newTemplateListCmd(app),
		newTemplateInspectCmd(app),
		newTemplateUpdateCmd(app),
		newTemplateRemoveCmd(app),
		newTemplateTaskCmd(app),
		newTemplateDepCmd(app),
	)

	return cmd
}

func newTemplateAddCmd(app *App) *cobra.Command {
	var name, desc, category, icon string
	var budget float64
	var duration int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new template",
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl := &domain.ProjectTemplate{
				Name:                  name,
				Description:           desc,
				Category:              category,
				Icon:                  icon,
				EstimatedBudget:       budget,
				EstimatedDurationDays: duration,
				IsActive:              true,
			}
			if err := app.Templates.Create(context.Background(), tpl); err != nil {
				return err
			}
			fmt.Printf("Created template %s [%s]\n", tpl.Name, tpl.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Template name")
	cmd.Flags().StringVar(&desc, "description", "", "Template description")
	cmd.Flags().StringVar(&category, "category", "", "Category")
	cmd.Flags().StringVar(&icon, "icon", "", "Display icon")
	cmd.Flags().Float64Var(&budget, "budget", 0, "Estimated budget")
	cmd.Flags().IntVar(&duration, "duration", 0, "Estimated duration in days")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newTemplateListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, err := app.Templates.List(context.Background(), !all)
			if err != nil {
				return err
			}
			if len(templates) == 0 {
				fmt.Println("No templates found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatTemplateList(templates))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include inactive templates")

	return cmd
}

func newTemplateInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show a template's task plan and dependencies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			templateID, err := resolveTemplateID(ctx, app, args[0])
			if err != nil {
				return err
			}
			tpl, err := app.Templates.GetByID(ctx, templateID)
			if err != nil {
				return err
			}
			tasks, err := app.Templates.ListTasks(ctx, templateID)
			if err != nil {
				return err
			}

			var edges []domain.TemplateDependency
			for _, tt := range tasks {
				prereqs, err := app.TemplateDeps.ListPrerequisites(ctx, tt.ID)
				if err != nil {
					return err
				}
				edges = append(edges, prereqs...)
			}

			fmt.Printf("%s\n", formatter.FormatTemplateInspect(formatter.TemplateInspectData{
				Template:     tpl,
				Tasks:        tasks,
				Dependencies: edges,
			}))
			return nil
		},
	}
}

func newTemplateUpdateCmd(app *App) *cobra.Command {
	var name, desc, category, icon, active string
	var budget float64
	var duration int

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a template's metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			templateID, err := resolveTemplateID(ctx, app, args[0])
			if err != nil {
				return err
			}
			tpl, err := app.Templates.GetByID(ctx, templateID)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				tpl.Name = name
			}
			if cmd.Flags().Changed("description") {
				tpl.Description = desc
			}
			if cmd.Flags().Changed("category") {
				tpl.Category = category
			}
			if cmd.Flags().Changed("icon") {
				tpl.Icon = icon
			}
			if cmd.Flags().Changed("budget") {
				tpl.EstimatedBudget = budget
			}
			if cmd.Flags().Changed("duration") {
				tpl.EstimatedDurationDays = duration
			}
			if cmd.Flags().Changed("active") {
				tpl.IsActive = strings.EqualFold(active, "true")
			}

			if err := app.Templates.Update(ctx, tpl); err != nil {
				return err
			}
			fmt.Printf("Updated template %s\n", tpl.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Template name")
	cmd.Flags().StringVar(&desc, "description", "", "Template description")
	cmd.Flags().StringVar(&category, "category", "", "Category")
	cmd.Flags().StringVar(&icon, "icon", "", "Display icon")
	cmd.Flags().Float64Var(&budget, "budget", 0, "Estimated budget")
	cmd.Flags().IntVar(&duration, "duration", 0, "Estimated duration in days")
	cmd.Flags().StringVar(&active, "active", "", "Set active flag (true|false)")

	return cmd
}

func newTemplateRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a template and its task plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			templateID, err := resolveTemplateID(ctx, app, args[0])
			if err != nil {
				return err
			}
			ok, err := app.Usage.CanDelete(ctx, templateID)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("template %s is built-in and cannot be removed", templateID[:8])
			}
			if err := app.Templates.Delete(ctx, templateID); err != nil {
				return err
			}
			fmt.Printf("Removed template %s\n", templateID[:8])
			return nil
		},
	}
}

func newTemplateTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage a template's task plan",
	}

	cmd.AddCommand(
		newTemplateTaskAddCmd(app),
		newTemplateTaskSetParentCmd(app),
		newTemplateTaskRemoveCmd(app),
	)

	return cmd
}

func newTemplateTaskAddCmd(app *App) *cobra.Command {
	var templateRef, name, desc, role, priority string
	var offset, duration, order int
	var hours float64
	var milestone, critical bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task to a template's plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			templateID, err := resolveTemplateID(ctx, app, templateRef)
			if err != nil {
				return err
			}

			t := &domain.TaskTemplate{
				TemplateID:            templateID,
				Name:                  name,
				Description:           desc,
				DefaultAssigneeRole:   role,
				StartOffsetDays:       offset,
				EstimatedDurationDays: duration,
				EstimatedHours:        hours,
				OrderIndex:            order,
				IsMilestone:           milestone,
				IsCriticalPath:        critical,
			}
			if priority != "" {
				t.Priority = domain.Priority(priority)
			}

			if err := app.Templates.AddTask(ctx, t); err != nil {
				return err
			}
			fmt.Printf("Added task %s to template [%s]\n", t.Name, templateID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&templateRef, "template", "", "Template ID")
	cmd.Flags().StringVar(&name, "name", "", "Task name")
	cmd.Flags().StringVar(&desc, "description", "", "Task description")
	cmd.Flags().StringVar(&role, "role", "", "Default assignee role")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (low|medium|high|critical)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Start offset in days from project start")
	cmd.Flags().IntVar(&duration, "duration", 0, "Duration in days")
	cmd.Flags().IntVar(&order, "order", 0, "Display order index")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Estimated hours")
	cmd.Flags().BoolVar(&milestone, "milestone", false, "Mark as milestone")
	cmd.Flags().BoolVar(&critical, "critical", false, "Mark as critical path")
	_ = cmd.MarkFlagRequired("template")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newTemplateTaskSetParentCmd(app *App) *cobra.Command {
	var templateRef, parentRef string
	var clear bool

	cmd := &cobra.Command{
		Use:   "set-parent ID",
		Short: "Nest a template task under another, or clear its parent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			templateID, err := resolveTemplateID(ctx, app, templateRef)
			if err != nil {
				return err
			}
			taskID, err := resolveTaskTemplateID(ctx, app, templateID, args[0])
			if err != nil {
				return err
			}

			if clear {
				if err := app.TemplateTree.SetParent(ctx, taskID, nil); err != nil {
					return err
				}
				fmt.Printf("Cleared parent of task %s\n", taskID[:8])
				return nil
			}

			parentID, err := resolveTaskTemplateID(ctx, app, templateID, parentRef)
			if err != nil {
				return err
			}
			if err := app.TemplateTree.SetParent(ctx, taskID, &parentID); err != nil {
				return err
			}
			fmt.Printf("Nested task %s under %s\n", taskID[:8], parentID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&templateRef, "template", "", "Template ID")
	cmd.Flags().StringVar(&parentRef, "parent", "", "Parent task template ID")
	cmd.Flags().BoolVar(&clear, "clear", false, "Clear the parent assignment")
	_ = cmd.MarkFlagRequired("template")

	return cmd
}

func newTemplateTaskRemoveCmd(app *App) *cobra.Command {
	var templateRef string

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a task from a template's plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			templateID, err := resolveTemplateID(ctx, app, templateRef)
			if err != nil {
				return err
			}
			taskID, err := resolveTaskTemplateID(ctx, app, templateID, args[0])
			if err != nil {
				return err
			}
			if err := app.TemplateTree.DeleteSubtree(ctx, taskID); err != nil {
				return err
			}
			fmt.Printf("Removed task %s and its subtree\n", taskID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&templateRef, "template", "", "Template ID")
	_ = cmd.MarkFlagRequired("template")

	return cmd
}

func newTemplateDepCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dep",
		Short: "Manage a template's dependency edges",
	}

	cmd.AddCommand(
		newTemplateDepAddCmd(app),
		newTemplateDepRemoveCmd(app),
	)

	return cmd
}

func newTemplateDepAddCmd(app *App) *cobra.Command {
	var templateRef, depType string
	var lag int

	cmd := &cobra.Command{
		Use:   "add DEPENDENT PREREQUISITE",
		Short: "Add a typed dependency edge between template tasks",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			templateID, err := resolveTemplateID(ctx, app, templateRef)
			if err != nil {
				return err
			}
			dependentID, err := resolveTaskTemplateID(ctx, app, templateID, args[0])
			if err != nil {
				return err
			}
			prerequisiteID, err := resolveTaskTemplateID(ctx, app, templateID, args[1])
			if err != nil {
				return err
			}

			err = app.TemplateDeps.AddDependency(ctx, dependentID, prerequisiteID, domain.DependencyType(depType), lag)
			if err != nil {
				return err
			}
			fmt.Printf("Task %s now follows %s (%s)\n", dependentID[:8], prerequisiteID[:8], depType)
			return nil
		},
	}

	cmd.Flags().StringVar(&templateRef, "template", "", "Template ID")
	cmd.Flags().StringVar(&depType, "type", string(domain.FinishToStart), "Dependency type (finish_to_start|start_to_start|finish_to_finish|start_to_finish)")
	cmd.Flags().IntVar(&lag, "lag", 0, "Lag in days (negative for lead)")
	_ = cmd.MarkFlagRequired("template")

	return cmd
}

func newTemplateDepRemoveCmd(app *App) *cobra.Command {
	var templateRef string

	cmd := &cobra.Command{
		Use:   "remove DEPENDENT PREREQUISITE",
		Short: "Remove a dependency edge between template tasks",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			templateID, err := resolveTemplateID(ctx, app, templateRef)
			if err != nil {
				return err
			}
			dependentID, err := resolveTaskTemplateID(ctx, app, templateID, args[0])
			if err != nil {
				return err
			}
			prerequisiteID, err := resolveTaskTemplateID(ctx, app, templateID, args[1])
			if err != nil {
				return err
			}

			if err := app.TemplateDeps.RemoveDependency(ctx, dependentID, prerequisiteID); err != nil {
				return err
			}
			fmt.Printf("Removed dependency %s → %s\n", dependentID[:8], prerequisiteID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&templateRef, "template", "", "Template ID")
	_ = cmd.MarkFlagRequired("template")

	return cmd
}
