package formatter

import (
	"fmt"
	"strings"

	"github.com/avehner/ganttform/internal/domain"
)

// TemplateInspectData holds everything needed to render a template inspect view.
type TemplateInspectData struct {
	Template     *domain.ProjectTemplate
	Tasks        []*domain.TaskTemplate
	Dependencies []domain.TemplateDependency
}

// FormatTemplateList renders a styled template table inside a bordered box.
func FormatTemplateList(templates []*domain.ProjectTemplate) string {
	headers := []string{"ID", "NAME", "CATEGORY", "DURATION", "USED", "FLAGS"}
	rows := make([][]string, 0, len(templates))

	for _, tpl := range templates {
		category := tpl.Category
		if category == "" {
			category = Dim("--")
		} else {
			category = StylePurple.Render(category)
		}

		var flags []string
		if tpl.IsBuiltIn {
			flags = append(flags, StyleYellow.Render("built-in"))
		}
		if !tpl.IsActive {
			flags = append(flags, Dim("inactive"))
		}

		rows = append(rows, []string{
			TruncID(tpl.ID),
			Bold(tpl.Name),
			category,
			FormatDays(tpl.EstimatedDurationDays),
			fmt.Sprintf("%d×", tpl.UsageCount),
			strings.Join(flags, " "),
		})
	}
	return RenderBox("Templates", RenderTable(headers, rows))
}

// FormatTemplateInspect renders a template's metadata, task plan, and edges.
func FormatTemplateInspect(data TemplateInspectData) string {
	var b strings.Builder
	tpl := data.Template

	title := tpl.Name
	if tpl.Icon != "" {
		title = tpl.Icon + " " + title
	}
	b.WriteString(StyleBold.Render(title) + "\n")
	if tpl.Description != "" {
		b.WriteString(Dim(tpl.Description) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("DURATION"), StyleFg.Render(FormatDays(tpl.EstimatedDurationDays))))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("BUDGET  "), FormatBudget(tpl.EstimatedBudget)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("USED    "), StyleFg.Render(fmt.Sprintf("%d times", tpl.UsageCount))))
	if tpl.IsBuiltIn {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("POLICY  "), StyleYellow.Render("built-in, structure locked")))
	}
	b.WriteString("\n")

	b.WriteString(formatTaskTemplateTable(data.Tasks))

	if len(data.Dependencies) > 0 {
		names := make(map[string]string, len(data.Tasks))
		for _, t := range data.Tasks {
			names[t.ID] = t.Name
		}
		b.WriteString("\n" + Header("Dependencies") + "\n")
		for _, d := range data.Dependencies {
			lag := ""
			if d.LagDays != 0 {
				lag = Dim(fmt.Sprintf(" (%+dd lag)", d.LagDays))
			}
			b.WriteString(fmt.Sprintf("%s %s %s %s%s\n",
				StyleFg.Render(names[d.DependentTaskTemplateID]),
				Dim("after"),
				StyleFg.Render(names[d.PrerequisiteTaskTemplateID]),
				StylePurple.Render(string(d.Type)),
				lag))
		}
	}

	return RenderBox("", b.String())
}

func formatTaskTemplateTable(tasks []*domain.TaskTemplate) string {
	headers := []string{"NAME", "OFFSET", "DURATION", "PRI", "ROLE", "FLAGS"}
	rows := make([][]string, 0, len(tasks))

	for _, t := range tasks {
		name := t.Name
		if t.ParentID != nil {
			name = "└ " + name
		}
		role := t.DefaultAssigneeRole
		if role == "" {
			role = Dim("--")
		}

		var flags []string
		if t.IsMilestone {
			flags = append(flags, StylePurple.Render("milestone"))
		}
		if t.IsCriticalPath {
			flags = append(flags, StyleRed.Render("critical"))
		}

		rows = append(rows, []string{
			StyleFg.Render(name),
			fmt.Sprintf("+%dd", t.StartOffsetDays),
			FormatDays(t.EstimatedDurationDays),
			PriorityBadge(t.Priority),
			role,
			strings.Join(flags, " "),
		})
	}
	return RenderTable(headers, rows)
}
