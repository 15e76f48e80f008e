package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := ParseFlags(nil)
		require.NoError(t, err)
		assert.Equal(t, -1, cfg.Context)
		assert.Empty(t, cfg.Args)
		assert.False(t, cfg.Print)
	})

	t.Run("compare", func(t *testing.T) {
		cfg, err := ParseFlags([]string{"-c", "-U", "10", "live.yaml", "desired.yaml"})
		require.NoError(t, err)
		assert.True(t, cfg.Compare)
		assert.Equal(t, 10, cfg.Context)
		assert.Equal(t, []string{"live.yaml", "desired.yaml"}, cfg.Args)
	})

	t.Run("diff preferences", func(t *testing.T) {
		cfg, err := ParseFlags([]string{"-c", "-F", "--show-managed-fields", "live.yaml", "desired.yaml"})
		require.NoError(t, err)
		assert.True(t, cfg.Full)
		assert.True(t, cfg.ShowManagedFields)
	})

	t.Run("lookup dirs", func(t *testing.T) {
		cfg, err := ParseFlags([]string{"-l", "a,b", "--print", "x.diff"})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, cfg.LookupDirs)
		assert.True(t, cfg.Print)
	})

	invalid := map[string][]string{
		"compare needs two files":   {"-c", "only.yaml"},
		"compare and dump":          {"-c", "-d", "x.yaml", "a", "b"},
		"too many inputs":           {"a.diff", "b.diff"},
		"watch and print":           {"-w", "-p", "a.diff"},
		"watch needs a file":        {"-w"},
		"watch cannot follow stdin": {"-w", "-"},
		"unknown flag":              {"--nope"},
	}
	for name, args := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := ParseFlags(args)
			assert.Error(t, err)
		})
	}
}
