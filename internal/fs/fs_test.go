package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathResolver(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(second, "live.yaml"), []byte("kind: Pod\n"), 0644))

	r, err := NewPathResolver([]string{first, second})
	require.NoError(t, err)

	abs, content, err := r.ReadFile("live.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(second, "live.yaml"), abs)
	assert.Equal(t, "kind: Pod\n", content)

	got, err := r.Resolve(abs)
	require.NoError(t, err)
	assert.Equal(t, abs, got)

	_, err = r.Resolve("desired.yaml")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewPathResolver_DefaultsToWorkingDir(t *testing.T) {
	r, err := NewPathResolver(nil)
	require.NoError(t, err)
	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, []string{wd}, r.lookupDirs)
}

func TestHashString(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", HashString(""))
	assert.NotEqual(t, HashString("a"), HashString("b"))
}
