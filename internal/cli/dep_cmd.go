package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newDepCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dep",
		Short: "Manage task dependencies",
	}

	cmd.AddCommand(
		newDepAddCmd(app),
		newDepRemoveCmd(app),
		newDepListCmd(app),
	)

	return cmd
}

func depArgs(ctx context.Context, app *App, projectRef, dependentRef, prerequisiteRef string) (string, string, error) {
	projectID, err := resolveProjectID(ctx, app, projectRef)
	if err != nil {
		return "", "", err
	}
	dependentID, err := resolveTaskID(ctx, app, projectID, dependentRef)
	if err != nil {
		return "", "", err
	}
	prerequisiteID, err := resolveTaskID(ctx, app, projectID, prerequisiteRef)
	if err != nil {
		return "", "", err
	}
	return dependentID, prerequisiteID, nil
}

func newDepAddCmd(app *App) *cobra.Command {
	var projectRef string

	cmd := &cobra.Command{
		Use:   "add DEPENDENT PREREQUISITE",
		Short: "Record that one task must wait for another",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			dependentID, prerequisiteID, err := depArgs(ctx, app, projectRef, args[0], args[1])
			if err != nil {
				return err
			}
			if err := app.Deps.AddDependency(ctx, dependentID, prerequisiteID); err != nil {
				return err
			}
			fmt.Printf("Task %s now waits for %s\n", dependentID[:8], prerequisiteID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Project ID")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newDepRemoveCmd(app *App) *cobra.Command {
	var projectRef string

	cmd := &cobra.Command{
		Use:   "remove DEPENDENT PREREQUISITE",
		Short: "Remove a dependency edge",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			dependentID, prerequisiteID, err := depArgs(ctx, app, projectRef, args[0], args[1])
			if err != nil {
				return err
			}
			if err := app.Deps.RemoveDependency(ctx, dependentID, prerequisiteID); err != nil {
				return err
			}
			fmt.Printf("Removed dependency %s → %s\n", dependentID[:8], prerequisiteID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Project ID")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newDepListCmd(app *App) *cobra.Command {
	var projectRef string

	cmd := &cobra.Command{
		Use:   "list TASK",
		Short: "Show what a task waits for and what waits on it",
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

			prereqs, err := app.Deps.ListPrerequisites(ctx, taskID)
			if err != nil {
				return err
			}
			dependents, err := app.Deps.ListDependents(ctx, taskID)
			if err != nil {
				return err
			}

			printTaskRefs(ctx, app, "Waits for:", prereqs)
			printTaskRefs(ctx, app, "Blocks:", dependents)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Project ID")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func printTaskRefs(ctx context.Context, app *App, label string, ids []string) {
	fmt.Println(label)
	if len(ids) == 0 {
		fmt.Println("  (none)")
		return
	}
	for _, id := range ids {
		name := id
		if t, err := app.Tasks.GetByID(ctx, id); err == nil {
			name = fmt.Sprintf("%s [%s]", t.Name, id[:8])
		}
		fmt.Printf("  %s\n", name)
	}
}
