package provision

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendProfileBlock(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".bashrc")
	require.NoError(t, os.WriteFile(path, []byte("alias ll='ls -l'\n"), 0644))

	lines := []string{"export PATH=/usr/local/go/bin:$PATH"}
	require.NoError(t, AppendProfileBlock(path, lines))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "alias ll")
	assert.Contains(t, string(data), profileMarker)
	assert.Contains(t, string(data), lines[0])
}

func TestAppendProfileBlock_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".bashrc")
	lines := []string{"export PATH=/usr/local/go/bin:$PATH"}

	require.NoError(t, AppendProfileBlock(path, lines))
	require.NoError(t, AppendProfileBlock(path, lines))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), profileMarker))
}

func TestAppendProfileBlock_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".bashrc")

	require.NoError(t, AppendProfileBlock(path, []string{"export X=1"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), profileMarker))
}

func TestAppendProfileBlock_NoTrailingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".bashrc")
	require.NoError(t, os.WriteFile(path, []byte("alias ll='ls -l'"), 0644))

	require.NoError(t, AppendProfileBlock(path, []string{"export X=1"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ls -l'\n"+profileMarker)
}
