package doctor

import (
	"bytes"
	"os"
	"os/exec"
	"regexp"
	"runtime"
)

// CommandExecutor is an interface for executing commands, allowing for testing.
type CommandExecutor interface {
	LookPath(file string) (string, error)
	Run(name string, args ...string) (string, error)
	FileExists(path string) bool
}

// RealExecutor is the default command executor that uses the real system.
type RealExecutor struct{}

// LookPath finds the path to an executable.
func (e *RealExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Run executes a command and returns its output.
func (e *RealExecutor) Run(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		// Some tools output version to stderr
		if stderr.Len() > 0 {
			return stderr.String(), err
		}
		return stdout.String(), err
	}
	// Prefer stdout, fall back to stderr (some tools output version to stderr)
	output := stdout.String()
	if output == "" {
		output = stderr.String()
	}
	return output, nil
}

// FileExists checks if a file exists.
func (e *RealExecutor) FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// checkTool checks if a tool is installed and gets its version.
func checkTool(exec CommandExecutor, id, name, desc string, versionArgs []string, versionRegex *regexp.Regexp, fixCmd *FixCommand) Check {
	check := Check{
		ID:          id,
		Name:        name,
		Description: desc,
		FixCommand:  fixCmd,
	}

	path, err := exec.LookPath(id)
	if err != nil {
		check.Status = StatusMissing
		check.Message = "not installed"
		return check
	}

	// Try to get version
	output, err := exec.Run(path, versionArgs...)
	if err != nil {
		// Tool exists but version check failed - still consider it OK
		check.Status = StatusOK
		check.Message = "installed (version unknown)"
		return check
	}

	version := extractVersion(output, versionRegex)
	if version != "" {
		check.Status = StatusOK
		check.Message = version
	} else {
		check.Status = StatusOK
		check.Message = "installed"
	}

	return check
}

// genericVersionRe matches a bare semver-ish token.
var genericVersionRe = regexp.MustCompile(`(\d+\.\d+(?:\.\d+)?(?:-\w+)?)`)

// extractVersion pulls the first capture group of regex out of output.
// A nil regex falls back to a generic version pattern.
func extractVersion(output string, regex *regexp.Regexp) string {
	if regex == nil {
		regex = genericVersionRe
	}

	matches := regex.FindStringSubmatch(output)
	if len(matches) >= 2 {
		return matches[1]
	}
	return ""
}

// CheckGit checks if git is installed.
func CheckGit(exec CommandExecutor) Check {
	return checkTool(
		exec,
		IDGit,
		"Git",
		"Fetches the pinned runtime release",
		[]string{"--version"},
		regexp.MustCompile(`git version (\d+\.\d+\.\d+)`),
		GetFixCommand(IDGit, runtime.GOOS),
	)
}

// CheckMake checks if make is installed.
func CheckMake(exec CommandExecutor) Check {
	return checkTool(
		exec,
		IDMake,
		"Make",
		"Drives the runtime build",
		[]string{"--version"},
		regexp.MustCompile(`GNU Make (\d+\.\d+(?:\.\d+)?)`),
		GetFixCommand(IDMake, runtime.GOOS),
	)
}

// CheckGCC checks if a C compiler is installed.
func CheckGCC(exec CommandExecutor) Check {
	return checkTool(
		exec,
		IDGCC,
		"GCC",
		"Compiles the runtime's C components",
		[]string{"--version"},
		regexp.MustCompile(`(\d+\.\d+\.\d+)`),
		GetFixCommand(IDGCC, runtime.GOOS),
	)
}

// CheckGo checks if the Go toolchain is installed.
func CheckGo(exec CommandExecutor) Check {
	return checkTool(
		exec,
		IDGo,
		"Go",
		"Compiles the runtime's Go components",
		[]string{"version"},
		regexp.MustCompile(`go version go(\d+\.\d+(?:\.\d+)?)`),
		GetFixCommand(IDGo, runtime.GOOS),
	)
}

// CheckSingularity checks if the container runtime is installed.
func CheckSingularity(exec CommandExecutor) Check {
	return checkTool(
		exec,
		IDSingularity,
		"Singularity",
		"Container runtime for analysis pipelines",
		[]string{"--version"},
		regexp.MustCompile(`(\d+\.\d+\.\d+)`),
		nil, // installed by `seqops provision`, not a one-liner
	)
}

// CheckMksquashfs checks if squashfs-tools is installed.
func CheckMksquashfs(exec CommandExecutor) Check {
	return checkTool(
		exec,
		IDMksquashfs,
		"mksquashfs",
		"Builds container image filesystems",
		[]string{"-version"},
		regexp.MustCompile(`version (\d+\.\d+(?:\.\d+)?)`),
		GetFixCommand(IDMksquashfs, runtime.GOOS),
	)
}

// CheckSearchRoot checks that the sequencing data directory is reachable.
func CheckSearchRoot(exec CommandExecutor, path string) Check {
	check := Check{
		ID:          IDSearchRoot,
		Name:        "Search Root",
		Description: "Directory tree searched for read files",
	}

	if exec.FileExists(path) {
		check.Status = StatusOK
		check.Message = path
	} else {
		check.Status = StatusMissing
		check.Message = "no directory at " + path
	}

	return check
}

// CheckSampleList checks that a sample list is present.
func CheckSampleList(exec CommandExecutor, path string) Check {
	check := Check{
		ID:          IDSampleList,
		Name:        "Sample List",
		Description: "Identifiers of the samples to locate",
	}

	if exec.FileExists(path) {
		check.Status = StatusOK
		check.Message = path
	} else {
		check.Status = StatusWarning
		check.Message = "no sample list at " + path
	}

	return check
}
