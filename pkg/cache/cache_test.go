package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_SetSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	c := Open(path)
	_, ok := c.Get("darkMode")
	assert.False(t, ok)

	require.NoError(t, c.Set("darkMode", "false"))
	v, ok := c.Get("darkMode")
	require.True(t, ok)
	assert.Equal(t, "false", v)

	reopened := Open(path)
	v, ok = reopened.Get("darkMode")
	require.True(t, ok)
	assert.Equal(t, "false", v)
}

func TestFile_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("::: not yaml :::\n\t- ["), 0o600))

	c := Open(path)
	_, ok := c.Get("darkMode")
	assert.False(t, ok)

	require.NoError(t, c.Set("darkMode", "true"))
	v, _ := Open(path).Get("darkMode")
	assert.Equal(t, "true", v)
}

func TestFile_SetKeepsValueWhenWriteFails(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	c := Open(filepath.Join(blocker, FileName))
	err := c.Set("darkMode", "true")
	require.Error(t, err)

	v, ok := c.Get("darkMode")
	require.True(t, ok)
	assert.Equal(t, "true", v)
}
