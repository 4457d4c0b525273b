package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/avehner/ganttform/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const (
	ganttBarBlock  = "█"
	ganttMilestone = "◆"
	ganttEmpty     = "·"
)

// RenderGantt renders a timeline chart for a project's tasks. Each task
// gets a row with a bar scaled to the project's date range; children are
// indented beneath their parents, milestones render as a single diamond.
func RenderGantt(p *domain.Project, tasks []*domain.Task, width int) string {
	if len(tasks) == 0 {
		return Dim("No tasks.")
	}
	if width < 20 {
		width = 20
	}

	start, end := chartRange(p, tasks)
	totalDays := int(end.Sub(start).Hours()/24) + 1

	nameWidth := 0
	ordered := orderForChart(tasks)
	for _, row := range ordered {
		w := lipgloss.Width(row.label)
		if w > nameWidth {
			nameWidth = w
		}
	}
	if nameWidth > 32 {
		nameWidth = 32
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", nameWidth+2))
	b.WriteString(Dim(ShortDate(start)))
	gap := width - lipgloss.Width(ShortDate(start)) - lipgloss.Width(ShortDate(end))
	if gap > 0 {
		b.WriteString(strings.Repeat(" ", gap))
	}
	b.WriteString(Dim(ShortDate(end)))
	b.WriteString("\n")

	for _, row := range ordered {
		label := row.label
		if lipgloss.Width(label) > nameWidth {
			label = label[:nameWidth-1] + "…"
		}
		pad := nameWidth - lipgloss.Width(label)
		if pad < 0 {
			pad = 0
		}
		b.WriteString(StyleFg.Render(label))
		b.WriteString(strings.Repeat(" ", pad+2))
		b.WriteString(renderBar(row.task, start, totalDays, width))
		b.WriteString("\n")
	}
	return b.String()
}

type chartRow struct {
	task  *domain.Task
	label string
}

// orderForChart groups children beneath their parents, each level sorted
// by order index then start date.
func orderForChart(tasks []*domain.Task) []chartRow {
	children := make(map[string][]*domain.Task)
	var roots []*domain.Task
	byID := make(map[string]*domain.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}
	for _, t := range tasks {
		if t.ParentID != nil && byID[*t.ParentID] != nil {
			children[*t.ParentID] = append(children[*t.ParentID], t)
		} else {
			roots = append(roots, t)
		}
	}
	sortTasks(roots)
	for _, c := range children {
		sortTasks(c)
	}

	var rows []chartRow
	var walk func(ts []*domain.Task, depth int)
	walk = func(ts []*domain.Task, depth int) {
		for _, t := range ts {
			rows = append(rows, chartRow{task: t, label: strings.Repeat("  ", depth) + t.Name})
			walk(children[t.ID], depth+1)
		}
	}
	walk(roots, 0)
	return rows
}

func sortTasks(ts []*domain.Task) {
	sort.SliceStable(ts, func(i, j int) bool {
		if ts[i].OrderIndex != ts[j].OrderIndex {
			return ts[i].OrderIndex < ts[j].OrderIndex
		}
		return ts[i].StartDate.Before(ts[j].StartDate)
	})
}

func chartRange(p *domain.Project, tasks []*domain.Task) (time.Time, time.Time) {
	start, end := p.StartDate, p.EndDate
	for _, t := range tasks {
		if t.StartDate.Before(start) {
			start = t.StartDate
		}
		if t.EndDate.After(end) {
			end = t.EndDate
		}
	}
	if end.Before(start) {
		end = start
	}
	return start, end
}

func renderBar(t *domain.Task, chartStart time.Time, totalDays, width int) string {
	startDay := int(t.StartDate.Sub(chartStart).Hours() / 24)
	endDay := int(t.EndDate.Sub(chartStart).Hours() / 24)

	startCol := startDay * width / totalDays
	endCol := endDay * width / totalDays
	if startCol < 0 {
		startCol = 0
	}
	if endCol >= width {
		endCol = width - 1
	}

	style := barStyle(t.Status)
	if t.IsMilestone || t.SpansSingleDay() {
		return Dim(strings.Repeat(ganttEmpty, startCol)) +
			style.Render(ganttMilestone) +
			Dim(strings.Repeat(ganttEmpty, width-startCol-1))
	}

	barLen := endCol - startCol + 1
	return Dim(strings.Repeat(ganttEmpty, startCol)) +
		style.Render(strings.Repeat(ganttBarBlock, barLen)) +
		Dim(strings.Repeat(ganttEmpty, width-startCol-barLen))
}

func barStyle(status domain.TaskStatus) lipgloss.Style {
	switch status {
	case domain.TaskCompleted:
		return StyleDim
	case domain.TaskInProgress:
		return StyleGreen
	case domain.TaskBlocked:
		return StyleRed
	case domain.TaskCancelled:
		return StyleDim
	default:
		return StyleBlue
	}
}

// GanttLegend returns the one-line legend printed beneath the chart.
func GanttLegend() string {
	return fmt.Sprintf("%s %s   %s %s   %s %s   %s %s",
		StyleBlue.Render(ganttBarBlock), Dim("planned"),
		StyleGreen.Render(ganttBarBlock), Dim("in progress"),
		StyleRed.Render(ganttBarBlock), Dim("blocked"),
		StyleFg.Render(ganttMilestone), Dim("milestone"))
}
