package doctor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFixer(t *testing.T) {
	fixer := NewFixer()
	assert.NotNil(t, fixer)
	assert.NotNil(t, fixer.executor)
}

func TestNewFixerWithExecutor(t *testing.T) {
	mockExec := &MockExecutor{}
	fixer := NewFixerWithExecutor(mockExec)
	assert.NotNil(t, fixer)
	assert.Equal(t, mockExec, fixer.executor)
}

func TestFixer_RunFix_Success(t *testing.T) {
	mockExec := &MockExecutor{
		RunFunc: func(name string, args ...string) (string, error) {
			assert.Equal(t, "sh", name)
			assert.Equal(t, []string{"-c", "echo hello"}, args)
			return "hello\n", nil
		},
	}

	fixer := NewFixerWithExecutor(mockExec)
	fix := &FixCommand{
		Command:     "echo hello",
		Description: "Test command",
	}

	err := fixer.RunFix(fix)
	assert.NoError(t, err)
}

func TestFixer_RunFix_Failure(t *testing.T) {
	mockExec := &MockExecutor{
		RunFunc: func(name string, args ...string) (string, error) {
			return "command not found", errors.New("exit status 127")
		},
	}

	fixer := NewFixerWithExecutor(mockExec)
	fix := &FixCommand{
		Command:     "nonexistent-command",
		Description: "Test command",
	}

	err := fixer.RunFix(fix)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "fix failed")
	assert.Contains(t, err.Error(), "command not found")
}

func TestFixer_RunFix_NilFix(t *testing.T) {
	fixer := NewFixer()

	err := fixer.RunFix(nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no fix command available")
}

func TestGetFixCommand_AllPlatforms(t *testing.T) {
	tests := []struct {
		toolID      string
		platform    string
		expectNil   bool
		expectSudo  bool
		containsCmd string
	}{
		// Git
		{IDGit, PlatformDarwin, false, false, "brew install git"},
		{IDGit, PlatformLinux, false, true, "apt-get install -y git"},
		{IDGit, "windows", true, false, ""},

		// Make (Linux only)
		{IDMake, PlatformDarwin, true, false, ""},
		{IDMake, PlatformLinux, false, true, "build-essential"},

		// GCC (Linux only)
		{IDGCC, PlatformDarwin, true, false, ""},
		{IDGCC, PlatformLinux, false, true, "build-essential"},

		// Go
		{IDGo, PlatformDarwin, false, false, "brew install go"},
		{IDGo, PlatformLinux, false, true, "seqops provision"},

		// mksquashfs (Linux only)
		{IDMksquashfs, PlatformDarwin, true, false, ""},
		{IDMksquashfs, PlatformLinux, false, true, "squashfs-tools"},

		// Singularity has no one-line fix
		{IDSingularity, PlatformLinux, true, false, ""},

		// Unknown tool
		{"unknown-tool", PlatformDarwin, true, false, ""},
		{"unknown-tool", PlatformLinux, true, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.toolID+"_"+tt.platform, func(t *testing.T) {
			fix := GetFixCommand(tt.toolID, tt.platform)

			if tt.expectNil {
				assert.Nil(t, fix)
			} else {
				assert.NotNil(t, fix)
				assert.Equal(t, tt.expectSudo, fix.Sudo)
				assert.Contains(t, fix.Command, tt.containsCmd)
				assert.NotEmpty(t, fix.Description)
				assert.Equal(t, tt.platform, fix.Platform)
			}
		})
	}
}

func TestFixCommand_Properties(t *testing.T) {
	fix := GetFixCommand(IDGit, PlatformDarwin)

	assert.NotNil(t, fix)
	assert.Equal(t, "Install via Homebrew", fix.Description)
	assert.Equal(t, "brew install git", fix.Command)
	assert.False(t, fix.Sudo)
	assert.Equal(t, PlatformDarwin, fix.Platform)
}

func TestFixCommand_LinuxSudo(t *testing.T) {
	fix := GetFixCommand(IDMksquashfs, PlatformLinux)

	assert.NotNil(t, fix)
	assert.True(t, fix.Sudo)
	assert.Contains(t, fix.Command, "sudo")
}
