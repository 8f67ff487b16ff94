package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test,
// like t.Chdir, which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(prev))
	})
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "samples", cfg.SampleList)
	assert.Equal(t, "/data/sequencing", cfg.SearchRoot)
	assert.Equal(t, "fastq", cfg.OutputDir)
	assert.Equal(t, "_", cfg.Separator)
	assert.NotEmpty(t, cfg.Provision.RuntimeVersion)
	assert.NotEmpty(t, cfg.Provision.GoVersion)
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "seqops.yaml")
	content := `
search_root: /mnt/runs
separator: "-"
provision:
  runtime_version: 3.11.4
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/mnt/runs", cfg.SearchRoot)
	assert.Equal(t, "-", cfg.Separator)
	assert.Equal(t, "3.11.4", cfg.Provision.RuntimeVersion)

	// Unset fields keep defaults.
	assert.Equal(t, "fastq", cfg.OutputDir)
	assert.Equal(t, "samples", cfg.SampleList)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_Malformed(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search_root: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadOrDefault_NoFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOrDefault_WorkingDirFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, FileName), []byte("output_dir: reads"), 0644))
	chdir(t, tmpDir)

	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, "reads", cfg.OutputDir)
}
