package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// ShortDate formats a date as YYYY-MM-DD.
func ShortDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// DateRange formats a start/end pair, collapsing single-day spans.
func DateRange(start, end time.Time) string {
	if start.Equal(end) {
		return ShortDate(start)
	}
	return ShortDate(start) + " → " + ShortDate(end)
}

// FormatHours renders an hour figure compactly, dropping trailing zeros.
func FormatHours(h float64) string {
	if h <= 0 {
		return Dim("--")
	}
	if h == float64(int(h)) {
		return fmt.Sprintf("%dh", int(h))
	}
	return fmt.Sprintf("%.1fh", h)
}

// FormatBudget renders a budget figure, or a dash when unset.
func FormatBudget(b float64) string {
	if b <= 0 {
		return Dim("--")
	}
	return fmt.Sprintf("$%.0f", b)
}

// FormatDays pluralizes a whole-day count.
func FormatDays(d int) string {
	if d == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", d)
}
