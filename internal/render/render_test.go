package render

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokinpui/mdv/internal/highlight"
	"github.com/sokinpui/mdv/internal/perf"
	"github.com/sokinpui/mdv/internal/virtual"
	"github.com/sokinpui/mdv/model"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func smallDiff() model.FileDiff {
	return model.FileDiff{
		OldPath: "deploy.yaml",
		NewPath: "deploy.yaml",
		Type:    model.FileModify,
		Hunks: []model.DiffHunk{{
			Content: "@@ -4,1 +4,1 @@",
			Changes: []model.Change{
				{Type: model.ChangeNormal, OldLine: 3, NewLine: 3, Content: "spec:"},
				{Type: model.ChangeDelete, OldLine: 4, Content: "  replicas: 1"},
				{Type: model.ChangeInsert, NewLine: 4, Content: "  replicas: 3"},
			},
		}},
	}
}

func largeDiff(n int) model.FileDiff {
	changes := make([]model.Change, n)
	for i := range changes {
		changes[i] = model.Change{Type: model.ChangeInsert, NewLine: i + 1, Content: fmt.Sprintf("key%d: %s", i, strings.Repeat("v", 500))}
	}
	return model.FileDiff{
		OldPath: "/dev/null",
		NewPath: "big.yaml",
		Type:    model.FileAdd,
		Hunks:   []model.DiffHunk{{Content: fmt.Sprintf("@@ -0,0 +1,%d @@", n), Changes: changes}},
	}
}

func TestSection_Small(t *testing.T) {
	c := virtual.New(smallDiff(), perf.DefaultLimits())
	lines := Section(c, highlight.Plain{}, Options{})

	require.Len(t, lines, 5)
	assert.Equal(t, "  ▾ deploy.yaml  +1 -1", lines[0])
	assert.Equal(t, "@@ -4,1 +4,1 @@", lines[1])
	assert.Equal(t, "    3     3  spec:", lines[2])
	assert.Equal(t, "    4       -  replicas: 1", lines[3])
	assert.Equal(t, "          4 +  replicas: 3", lines[4])
}

func TestSection_Collapsed(t *testing.T) {
	c := virtual.New(smallDiff(), perf.DefaultLimits())
	c.ToggleCollapse()

	lines := Section(c, highlight.Plain{}, Options{Selected: true})
	assert.Equal(t, []string{"> ▸ deploy.yaml  +1 -1"}, lines)
}

func TestSection_LargeShowsWarningAndLoadMore(t *testing.T) {
	c := virtual.New(largeDiff(250), perf.DefaultLimits())
	require.True(t, c.Info().IsLarge)

	lines := Section(c, highlight.Plain{}, Options{LoadMoreKey: "m"})

	assert.Contains(t, lines[0], "big.yaml")
	assert.Contains(t, lines[0], "(add)")
	assert.Contains(t, lines[1], "very large")
	// header, warning, hunk header, 200 change lines, load more
	require.Len(t, lines, 3+200+1)
	assert.Equal(t, "  Load More (50 lines remaining)  [m]", lines[len(lines)-1])

	require.True(t, c.LoadMore())
	lines = Section(c, highlight.Plain{}, Options{})
	require.Len(t, lines, 3+250)
	assert.NotContains(t, lines[len(lines)-1], "Load More")
}

func TestSection_Width(t *testing.T) {
	c := virtual.New(largeDiff(1), perf.DefaultLimits())
	for _, line := range Section(c, highlight.Plain{}, Options{Width: 40}) {
		assert.LessOrEqual(t, lipgloss.Width(line), 40)
	}
}

func TestSection_EmptyAndBinary(t *testing.T) {
	empty := virtual.New(model.FileDiff{OldPath: "a", NewPath: "a", Type: model.FileModify}, perf.DefaultLimits())
	assert.Equal(t, "  No changes.", Section(empty, highlight.Plain{}, Options{})[1])

	binary := virtual.New(model.FileDiff{OldPath: "a.png", NewPath: "a.png", Binary: true}, perf.DefaultLimits())
	assert.Equal(t, "  Binary file not shown.", Section(binary, highlight.Plain{}, Options{})[1])
}

func TestStats(t *testing.T) {
	added, removed := Stats(smallDiff())
	assert.Equal(t, 1, added)
	assert.Equal(t, 1, removed)
}
