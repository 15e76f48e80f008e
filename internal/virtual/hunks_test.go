package virtual

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokinpui/mdv/model"
)

func makeHunks(counts ...int) []model.DiffHunk {
	hunks := make([]model.DiffHunk, len(counts))
	line := 1
	for i, n := range counts {
		changes := make([]model.Change, n)
		for j := range changes {
			changes[j] = model.Change{Type: model.ChangeInsert, NewLine: line, Content: fmt.Sprintf("line %d", line)}
			line++
		}
		hunks[i] = model.DiffHunk{
			Content:  fmt.Sprintf("@@ -%d,0 +%d,%d @@", i+1, i+1, n),
			NewStart: i + 1,
			NewLines: n,
			Changes:  changes,
		}
	}
	return hunks
}

func cloneHunks(hunks []model.DiffHunk) []model.DiffHunk {
	out := make([]model.DiffHunk, len(hunks))
	for i, h := range hunks {
		out[i] = h
		out[i].Changes = append([]model.Change(nil), h.Changes...)
	}
	return out
}

func TestComputeVisibleHunks_PartialHunk(t *testing.T) {
	hunks := makeHunks(40, 40, 40)

	v := ComputeVisibleHunks(hunks, 1, true)

	require.Len(t, v.Hunks, 2)
	assert.Len(t, v.Hunks[0].Changes, 40)
	assert.Len(t, v.Hunks[1].Changes, 60)
	assert.Equal(t, hunks[1].Content, v.Hunks[1].Content)
	assert.Equal(t, hunks[1].NewStart, v.Hunks[1].NewStart)
	assert.True(t, v.HasMore)
	assert.Equal(t, 100, v.Lines)
	assert.Equal(t, 20, Remaining(120, 1, 100))
}

func TestComputeVisibleHunks_AllFit(t *testing.T) {
	hunks := makeHunks(40, 40, 40)

	v := ComputeVisibleHunks(hunks, 2, true)

	require.Len(t, v.Hunks, 3)
	for _, h := range v.Hunks {
		assert.Len(t, h.Changes, 40)
	}
	assert.False(t, v.HasMore)
	assert.Equal(t, 120, v.Lines)
	assert.Equal(t, 0, Remaining(120, 2, 100))
}

func TestComputeVisibleHunks_NotLarge(t *testing.T) {
	hunks := makeHunks(400, 400)

	for _, chunks := range []int{0, 1, 2, 100} {
		v := ComputeVisibleHunks(hunks, chunks, false)
		assert.Equal(t, hunks, v.Hunks)
		assert.False(t, v.HasMore)
	}
}

func TestComputeVisibleHunks_Empty(t *testing.T) {
	for _, large := range []bool{true, false} {
		v := ComputeVisibleHunks([]model.DiffHunk{}, 2, large)
		assert.Empty(t, v.Hunks)
		assert.False(t, v.HasMore)
	}
}

func TestComputeVisibleHunks_StopsAtFirstMisfit(t *testing.T) {
	// The budget runs out exactly at the end of the first hunk, so the
	// second hunk gets no partial and the small third hunk is not scanned.
	hunks := makeHunks(100, 150, 1)

	v := ComputeVisibleHunks(hunks, 1, true)

	require.Len(t, v.Hunks, 1)
	assert.True(t, v.HasMore)
	assert.Equal(t, 100, v.Lines)
}

func TestComputeVisibleHunks_DoesNotMutateInput(t *testing.T) {
	hunks := makeHunks(40, 90, 40)
	before := cloneHunks(hunks)

	first := ComputeVisibleHunks(hunks, 1, true)
	second := ComputeVisibleHunks(hunks, 1, true)

	assert.Equal(t, first, second)
	assert.Equal(t, before, hunks)

	// Writing to the partial hunk must not reach the caller's data.
	first.Hunks[1].Changes[0].Content = "changed"
	first.Hunks[1].Content = "changed"
	assert.Equal(t, before, hunks)
}

func TestComputeVisibleHunks_Monotonic(t *testing.T) {
	hunks := makeHunks(30, 70, 10, 250, 5, 60)
	total := 425

	prev := -1
	for chunks := 1; chunks <= 6; chunks++ {
		v := ComputeVisibleHunks(hunks, chunks, true)
		assert.GreaterOrEqual(t, v.Lines, prev)
		prev = v.Lines
		if chunks*100 >= total {
			assert.False(t, v.HasMore, "chunks=%d", chunks)
			assert.Equal(t, total, v.Lines)
		} else {
			assert.True(t, v.HasMore, "chunks=%d", chunks)
		}
	}
}

func TestRemaining_Floor(t *testing.T) {
	assert.Equal(t, 0, Remaining(10, 5, 100))
	assert.Equal(t, 0, Remaining(0, 1, 100))
	assert.Equal(t, 50, Remaining(250, 2, 100))
}
