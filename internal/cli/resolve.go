package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolveID matches input against a set of candidate IDs: exact match
// first, then unique prefix.
func resolveID(kind, input string, ids []string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("%s ID is required", kind)
	}

	for _, id := range ids {
		if id == input {
			return id, nil
		}
	}

	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	projects, err := app.Projects.List(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	return resolveID("project", input, ids)
}

func resolveTemplateID(ctx context.Context, app *App, input string) (string, error) {
	templates, err := app.Templates.List(ctx, false)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(templates))
	for _, tpl := range templates {
		ids = append(ids, tpl.ID)
	}
	return resolveID("template", input, ids)
}

// resolveTaskID matches a task within one project.
func resolveTaskID(ctx context.Context, app *App, projectID, input string) (string, error) {
	tasks, err := app.Tasks.ListByProject(ctx, projectID)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	return resolveID("task", input, ids)
}

// resolveTaskTemplateID matches a task template within one template.
func resolveTaskTemplateID(ctx context.Context, app *App, templateID, input string) (string, error) {
	tasks, err := app.Templates.ListTasks(ctx, templateID)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	return resolveID("task template", input, ids)
}
