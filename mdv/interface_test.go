package mdv_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokinpui/mdv/mdv"
)

func TestLibraryInterface(t *testing.T) {
	t.Run("parse and render a small diff", func(t *testing.T) {
		diffs, err := mdv.Parse(smallDiff, mdv.Config{})
		require.NoError(t, err)
		require.Len(t, diffs, 1)

		out := mdv.Render(diffs, mdv.Config{})
		assert.Contains(t, out, "-replicas: 1")
		assert.Contains(t, out, "+replicas: 3")
	})

	t.Run("custom limits shrink the window", func(t *testing.T) {
		limits := mdv.DefaultLimits()
		limits.WarningThreshold = 10
		limits.MaxSize = 20
		limits.LinesPerChunk = 1
		limits.InitialChunks = 1
		config := mdv.Config{Limits: limits}

		diffs, err := mdv.Parse(smallDiff, config)
		require.NoError(t, err)

		out := mdv.Render(diffs, config)
		assert.Contains(t, out, " name: web")
		assert.NotContains(t, out, "+replicas: 3")
		assert.Contains(t, out, "Load More (2 lines remaining)")
	})

	t.Run("blocks for the same file are all rendered", func(t *testing.T) {
		markdown := "Change in `deploy.yaml`:\n\n```diff\n@@ -1,1 +1,1 @@\n-replicas: 1\n+replicas: 2\n```\n\n" +
			"And in `deploy.yaml`:\n\n```diff\n@@ -5,1 +5,1 @@\n-image: v1\n+image: v2\n```\n"
		config := mdv.Config{Markdown: true}

		diffs, err := mdv.Parse(markdown, config)
		require.NoError(t, err)
		require.Len(t, diffs, 1)

		out := mdv.Render(diffs, config)
		assert.Contains(t, out, "+replicas: 2")
		assert.Contains(t, out, "+image: v2")
		assert.NotContains(t, out, "b/deploy.yaml")
	})

	t.Run("analyze performance", func(t *testing.T) {
		info := mdv.AnalyzePerformance(strings.Repeat("a", 60000), mdv.Config{})
		assert.True(t, info.IsLarge)
		assert.False(t, info.NeedsTruncation)
		assert.True(t, info.HasWarning())
	})
}
