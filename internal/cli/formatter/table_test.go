package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable(
		[]string{"NAME", "STATUS"},
		[][]string{
			{"short", "ok"},
			{"a much longer name", "ok"},
		},
	)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4, "header, separator, two rows")
	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, lines[1], "─")
}

func TestRenderTable_EmptyHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, nil))
}

func TestRenderTable_ShortRowsPadded(t *testing.T) {
	out := RenderTable([]string{"A", "B", "C"}, [][]string{{"only"}})
	assert.Contains(t, out, "only")
}

func TestRenderProgress_Bounds(t *testing.T) {
	assert.Contains(t, RenderProgress(-5, 8), "  0%")
	assert.Contains(t, RenderProgress(250, 8), "100%")
	assert.Contains(t, RenderProgress(50, 8), " 50%")
}
