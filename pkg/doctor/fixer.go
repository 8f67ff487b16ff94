package doctor

import (
	"fmt"
)

// Platform constants.
const (
	PlatformDarwin = "darwin"
	PlatformLinux  = "linux"
)

// fixCommands defines platform-specific fix commands for each tool.
var fixCommands = map[string]map[string]*FixCommand{
	IDGit: {
		PlatformDarwin: {
			Description: "Install via Homebrew",
			Command:     "brew install git",
			Sudo:        false,
			Platform:    PlatformDarwin,
		},
		PlatformLinux: {
			Description: "Install via apt",
			Command:     "sudo apt-get install -y git",
			Sudo:        true,
			Platform:    PlatformLinux,
		},
	},
	IDMake: {
		PlatformLinux: {
			Description: "Install build-essential",
			Command:     "sudo apt-get install -y build-essential",
			Sudo:        true,
			Platform:    PlatformLinux,
		},
	},
	IDGCC: {
		PlatformLinux: {
			Description: "Install build-essential",
			Command:     "sudo apt-get install -y build-essential",
			Sudo:        true,
			Platform:    PlatformLinux,
		},
	},
	IDGo: {
		PlatformDarwin: {
			Description: "Install via Homebrew",
			Command:     "brew install go",
			Sudo:        false,
			Platform:    PlatformDarwin,
		},
		PlatformLinux: {
			Description: "Install via seqops (downloads the pinned toolchain)",
			Command:     "seqops provision",
			Sudo:        true,
			Platform:    PlatformLinux,
		},
	},
	IDMksquashfs: {
		PlatformLinux: {
			Description: "Install squashfs-tools",
			Command:     "sudo apt-get install -y squashfs-tools",
			Sudo:        true,
			Platform:    PlatformLinux,
		},
	},
}

// GetFixCommand returns the fix command for a tool on the given platform.
func GetFixCommand(toolID, platform string) *FixCommand {
	toolFixes, ok := fixCommands[toolID]
	if !ok {
		return nil
	}

	fix, ok := toolFixes[platform]
	if !ok {
		return nil
	}

	return fix
}

// Fixer provides functionality to run fix commands.
type Fixer struct {
	executor CommandExecutor
}

// NewFixer creates a new Fixer.
func NewFixer() *Fixer {
	return &Fixer{
		executor: &RealExecutor{},
	}
}

// NewFixerWithExecutor creates a new Fixer with a custom executor.
func NewFixerWithExecutor(exec CommandExecutor) *Fixer {
	return &Fixer{
		executor: exec,
	}
}

// RunFix executes a fix command.
func (f *Fixer) RunFix(fix *FixCommand) error {
	if fix == nil {
		return fmt.Errorf("no fix command available")
	}

	// Run the command through the shell using the executor
	output, err := f.executor.Run("sh", "-c", fix.Command)
	if err != nil {
		return fmt.Errorf("fix failed: %w\nOutput: %s", err, output)
	}

	return nil
}
