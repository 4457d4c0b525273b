package formatter

import (
	"fmt"
	"strings"

	"github.com/avehner/ganttform/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// ProjectInspectData holds everything needed to render a project inspect view.
type ProjectInspectData struct {
	Project      *domain.Project
	Tasks        []*domain.Task
	Dependencies []domain.TaskDependency
}

// FormatProjectList renders a styled project table inside a bordered box.
func FormatProjectList(projects []*domain.Project) string {
	headers := []string{"ID", "NAME", "MANAGER", "STATUS", "PRI", "START", "END"}
	rows := make([][]string, 0, len(projects))

	for _, p := range projects {
		manager := p.Manager
		if manager == "" {
			manager = Dim("--")
		}
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(p.Name),
			manager,
			ProjectStatusPill(p.Status),
			PriorityBadge(p.Priority),
			ShortDate(p.StartDate),
			ShortDate(p.EndDate),
		})
	}
	return RenderBox("Projects", RenderTable(headers, rows))
}

// FormatProjectInspect renders metadata plus the task chart for a project.
func FormatProjectInspect(data ProjectInspectData) string {
	left := buildProjectPanel(data.Project, len(data.Tasks), len(data.Dependencies))
	right := RenderGantt(data.Project, data.Tasks, 48)
	combined := lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right)
	return RenderBox("", combined)
}

func buildProjectPanel(p *domain.Project, taskCount, depCount int) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(p.Name) + "\n")
	if p.Description != "" {
		b.WriteString(Dim(p.Description) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("STATUS "), ProjectStatusPill(p.Status)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("ID     "), TruncID(p.ID)))
	if p.Manager != "" {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("MANAGER"), StyleFg.Render(p.Manager)))
	}
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("DATES  "), StyleFg.Render(DateRange(p.StartDate, p.EndDate))))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("BUDGET "), FormatBudget(p.Budget)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("TASKS  "), StyleFg.Render(fmt.Sprintf("%d (%d dependencies)", taskCount, depCount))))

	return lipgloss.NewStyle().Width(42).Render(b.String())
}

// FormatTaskList renders a styled task table for one project.
func FormatTaskList(tasks []*domain.Task) string {
	headers := []string{"ID", "NAME", "STATUS", "PRI", "DATES", "PROGRESS", "ASSIGNEE"}
	rows := make([][]string, 0, len(tasks))

	for _, t := range tasks {
		name := t.Name
		if t.ParentID != nil {
			name = "└ " + name
		}
		if t.IsMilestone {
			name = name + " " + StylePurple.Render(ganttMilestone)
		}
		assignee := t.Assignee
		if assignee == "" {
			assignee = Dim("--")
		}
		rows = append(rows, []string{
			TruncID(t.ID),
			StyleFg.Render(name),
			TaskStatusPill(t.Status),
			PriorityBadge(t.Priority),
			DateRange(t.StartDate, t.EndDate),
			RenderProgress(t.Progress, 8),
			assignee,
		})
	}
	return RenderBox("Tasks", RenderTable(headers, rows))
}
