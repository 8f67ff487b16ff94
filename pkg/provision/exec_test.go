package provision

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealExecutor_Run(t *testing.T) {
	exec := &RealExecutor{}

	err := exec.Run(context.Background(), "", "sh", "-c", "exit 0")
	assert.NoError(t, err)
}

func TestRealExecutor_Run_StderrInError(t *testing.T) {
	exec := &RealExecutor{}

	err := exec.Run(context.Background(), "", "sh", "-c", "echo boom >&2; exit 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestRealExecutor_Output(t *testing.T) {
	exec := &RealExecutor{}

	out, err := exec.Output(context.Background(), "", "sh", "-c", "echo hello")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)
}

func TestRealExecutor_RunInDir(t *testing.T) {
	exec := &RealExecutor{}
	dir := t.TempDir()

	out, err := exec.Output(context.Background(), dir, "pwd")
	require.NoError(t, err)
	assert.Contains(t, out, dir)
}

func TestRealExecutor_LookPath(t *testing.T) {
	exec := &RealExecutor{}

	_, err := exec.LookPath("sh")
	assert.NoError(t, err)

	_, err = exec.LookPath("definitely-not-a-real-binary")
	assert.Error(t, err)
}
