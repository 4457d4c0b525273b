package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/avehner/ganttform/internal/domain"
	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRenderGantt_EmptyProject(t *testing.T) {
	p := &domain.Project{Name: "Empty", StartDate: day(2026, 3, 1), EndDate: day(2026, 3, 31)}
	out := RenderGantt(p, nil, 40)
	assert.Contains(t, out, "No tasks")
}

func TestRenderGantt_OneRowPerTask(t *testing.T) {
	p := &domain.Project{Name: "P", StartDate: day(2026, 3, 1), EndDate: day(2026, 3, 31)}
	tasks := []*domain.Task{
		{ID: "a", Name: "Design", StartDate: day(2026, 3, 1), EndDate: day(2026, 3, 10)},
		{ID: "b", Name: "Build", StartDate: day(2026, 3, 10), EndDate: day(2026, 3, 31)},
	}

	out := RenderGantt(p, tasks, 40)
	assert.Contains(t, out, "Design")
	assert.Contains(t, out, "Build")
	assert.Contains(t, out, "2026-03-01")
	assert.Contains(t, out, "2026-03-31")
	assert.Contains(t, out, ganttBarBlock)
}

func TestRenderGantt_MilestoneRendersDiamond(t *testing.T) {
	p := &domain.Project{Name: "P", StartDate: day(2026, 3, 1), EndDate: day(2026, 3, 31)}
	tasks := []*domain.Task{
		{ID: "m", Name: "Launch", StartDate: day(2026, 3, 15), EndDate: day(2026, 3, 15), IsMilestone: true},
	}

	out := RenderGantt(p, tasks, 40)
	assert.Contains(t, out, ganttMilestone)
	assert.NotContains(t, out, ganttBarBlock)
}

func TestRenderGantt_ChildIndentedBeneathParent(t *testing.T) {
	p := &domain.Project{Name: "P", StartDate: day(2026, 3, 1), EndDate: day(2026, 3, 31)}
	parentID := "parent"
	tasks := []*domain.Task{
		{ID: "child", Name: "Child", ParentID: &parentID, StartDate: day(2026, 3, 2), EndDate: day(2026, 3, 5)},
		{ID: "parent", Name: "Parent", StartDate: day(2026, 3, 1), EndDate: day(2026, 3, 10)},
	}

	out := RenderGantt(p, tasks, 40)
	parentIdx := strings.Index(out, "Parent")
	childIdx := strings.Index(out, "  Child")
	assert.Greater(t, childIdx, parentIdx, "child row comes after its parent, indented")
}

func TestRenderGantt_TaskOutsideProjectRangeExtendsChart(t *testing.T) {
	p := &domain.Project{Name: "P", StartDate: day(2026, 3, 1), EndDate: day(2026, 3, 10)}
	tasks := []*domain.Task{
		{ID: "late", Name: "Overrun", StartDate: day(2026, 3, 5), EndDate: day(2026, 4, 20)},
	}

	out := RenderGantt(p, tasks, 40)
	assert.Contains(t, out, "2026-04-20")
}
