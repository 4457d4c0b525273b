package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/avehner/ganttform/internal/cli/formatter"
	"github.com/avehner/ganttform/internal/domain"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks within a project",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskUpdateCmd(app),
		newTaskSetParentCmd(app),
		newTaskRemoveCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var projectRef, name, desc, assignee, start, end, priority string
	var hours float64
	var milestone bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task to a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, projectRef)
			if err != nil {
				return err
			}
			startDate, err := time.Parse(dateFlagLayout, start)
			if err != nil {
				return fmt.Errorf("invalid start date %q: %w", start, err)
			}
			endDate := startDate
			if end != "" {
				endDate, err = time.Parse(dateFlagLayout, end)
				if err != nil {
					return fmt.Errorf("invalid end date %q: %w", end, err)
				}
			}

			t := &domain.Task{
				ProjectID:      projectID,
				Name:           name,
				Description:    desc,
				Assignee:       assignee,
				StartDate:      startDate,
				EndDate:        endDate,
				EstimatedHours: hours,
				IsMilestone:    milestone,
			}
			if priority != "" {
				t.Priority = domain.Priority(priority)
			}

			if err := app.Tasks.Create(ctx, t); err != nil {
				return err
			}
			fmt.Printf("Added task %s [%s]\n", t.Name, t.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Project ID")
	cmd.Flags().StringVar(&name, "name", "", "Task name")
	cmd.Flags().StringVar(&desc, "description", "", "Task description")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assignee")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (low|medium|high|critical)")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Estimated hours")
	cmd.Flags().BoolVar(&milestone, "milestone", false, "Mark as milestone")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var projectRef string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, projectRef)
			if err != nil {
				return err
			}
			tasks, err := app.Tasks.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Println("No tasks found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatTaskList(tasks))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Project ID")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newTaskUpdateCmd(app *App) *cobra.Command {
	var projectRef, name, assignee, start, end, status, priority string
	var progress int
	var actualHours float64

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, projectRef)
			if err != nil {
				return err
			}
			taskID, err := resolveTaskID(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}
			t, err := app.Tasks.GetByID(ctx, taskID)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				t.Name = name
			}
			if cmd.Flags().Changed("assignee") {
				t.Assignee = assignee
			}
			if cmd.Flags().Changed("start") {
				t.StartDate, err = time.Parse(dateFlagLayout, start)
				if err != nil {
					return fmt.Errorf("invalid start date %q: %w", start, err)
				}
			}
			if cmd.Flags().Changed("end") {
				t.EndDate, err = time.Parse(dateFlagLayout, end)
				if err != nil {
					return fmt.Errorf("invalid end date %q: %w", end, err)
				}
			}
			if cmd.Flags().Changed("status") {
				t.Status = domain.TaskStatus(status)
			}
			if cmd.Flags().Changed("priority") {
				t.Priority = domain.Priority(priority)
			}
			if cmd.Flags().Changed("progress") {
				t.Progress = progress
			}
			if cmd.Flags().Changed("actual-hours") {
				t.ActualHours = actualHours
			}

			if err := app.Tasks.Update(ctx, t); err != nil {
				return err
			}
			fmt.Printf("Updated task %s\n", t.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Project ID")
	cmd.Flags().StringVar(&name, "name", "", "Task name")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assignee")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&status, "status", "", "Status (not_started|in_progress|completed|blocked|cancelled)")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (low|medium|high|critical)")
	cmd.Flags().IntVar(&progress, "progress", 0, "Progress percentage (0-100)")
	cmd.Flags().Float64Var(&actualHours, "actual-hours", 0, "Actual hours spent")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newTaskSetParentCmd(app *App) *cobra.Command {
	var projectRef, parentRef string
	var clear bool

	cmd := &cobra.Command{
		Use:   "set-parent ID",
		Short: "Nest a task under another, or clear its parent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, projectRef)
			if err != nil {
				return err
			}
			taskID, err := resolveTaskID(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}

			if clear {
				if err := app.TaskTree.SetParent(ctx, taskID, nil); err != nil {
					return err
				}
				fmt.Printf("Cleared parent of task %s\n", taskID[:8])
				return nil
			}

			parentID, err := resolveTaskID(ctx, app, projectID, parentRef)
			if err != nil {
				return err
			}
			if err := app.TaskTree.SetParent(ctx, taskID, &parentID); err != nil {
				return err
			}
			fmt.Printf("Nested task %s under %s\n", taskID[:8], parentID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Project ID")
	cmd.Flags().StringVar(&parentRef, "parent", "", "Parent task ID")
	cmd.Flags().BoolVar(&clear, "clear", false, "Clear the parent assignment")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	var projectRef string

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a task and its whole subtree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, projectRef)
			if err != nil {
				return err
			}
			taskID, err := resolveTaskID(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}
			if err := app.TaskTree.DeleteSubtree(ctx, taskID); err != nil {
				return err
			}
			fmt.Printf("Removed task %s and its subtree\n", taskID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Project ID")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}
