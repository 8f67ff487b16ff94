// Package provision installs the Singularity container runtime on
// Debian-family hosts: apt build dependencies, a Go toolchain when absent,
// then a pinned upstream release cloned and compiled from source. Every
// step either succeeds or aborts the run; there is no retry and no
// rollback.
package provision

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Stage identifies a provisioning step.
type Stage string

const (
	StageDetectOS  Stage = "detect-os"
	StagePackages  Stage = "packages"
	StageToolchain Stage = "toolchain"
	StageClone     Stage = "clone"
	StageBuild     Stage = "build"
	StageInstall   Stage = "install"
	StageProfile   Stage = "profile"
	StageComplete  Stage = "complete"
)

// DisplayName returns a human-readable name for the stage.
func (s Stage) DisplayName() string {
	switch s {
	case StageDetectOS:
		return "Detecting OS"
	case StagePackages:
		return "Installing Build Dependencies"
	case StageToolchain:
		return "Installing Go Toolchain"
	case StageClone:
		return "Fetching Source"
	case StageBuild:
		return "Compiling"
	case StageInstall:
		return "Installing"
	case StageProfile:
		return "Updating Shell Profile"
	case StageComplete:
		return "Complete"
	default:
		return string(s)
	}
}

// ProgressEvent reports the start of a provisioning stage.
type ProgressEvent struct {
	Stage     Stage
	Message   string
	Timestamp time.Time
}

// buildDeps are the apt packages needed to compile the runtime from source.
var buildDeps = []string{
	"build-essential",
	"libssl-dev",
	"uuid-dev",
	"libgpgme11-dev",
	"squashfs-tools",
	"libseccomp-dev",
	"wget",
	"pkg-config",
	"git",
	"cryptsetup",
}

// Options configures an install run.
type Options struct {
	RuntimeVersion string // pinned release tag, without the leading "v"
	GoVersion      string // toolchain version downloaded when go is absent
	GoSHA256       string // optional tarball checksum
	ProfilePath    string // shell profile receiving PATH edits; empty skips the stage
	OSReleasePath  string // defaults to /etc/os-release
	GoRoot         string // extraction target, defaults to /usr/local
	Sudo           bool   // prefix privileged commands with sudo
}

// RepoURL is the upstream source repository of the container runtime.
const RepoURL = "https://github.com/sylabs/singularity.git"

// Installer performs the provisioning sequence.
type Installer struct {
	opts     Options
	exec     Executor
	client   *http.Client
	progress func(ProgressEvent)
}

// NewInstaller creates an installer using the real command executor.
func NewInstaller(opts Options) *Installer {
	return &Installer{
		opts:   opts,
		exec:   &RealExecutor{},
		client: &http.Client{}, // no timeout, toolchain tarballs are large
	}
}

// NewInstallerWithExecutor creates an installer with a custom executor
// (for testing).
func NewInstallerWithExecutor(opts Options, exec Executor) *Installer {
	return &Installer{opts: opts, exec: exec, client: &http.Client{}}
}

// SetProgress registers a callback invoked as each stage begins.
func (in *Installer) SetProgress(fn func(ProgressEvent)) {
	in.progress = fn
}

func (in *Installer) report(stage Stage, format string, args ...any) {
	if in.progress != nil {
		in.progress(ProgressEvent{
			Stage:     stage,
			Message:   fmt.Sprintf(format, args...),
			Timestamp: time.Now(),
		})
	}
}

// Run executes the full provisioning sequence, aborting on the first
// failed step.
func (in *Installer) Run(ctx context.Context) error {
	osRelease, err := in.detectOS()
	if err != nil {
		return err
	}

	if err := in.installPackages(ctx); err != nil {
		return err
	}

	if err := in.ensureToolchain(ctx); err != nil {
		return err
	}

	srcDir, err := in.fetchSource(ctx)
	if err != nil {
		return err
	}

	if err := in.buildAndInstall(ctx, srcDir); err != nil {
		return err
	}

	if err := in.updateProfile(); err != nil {
		return err
	}

	in.report(StageComplete, "singularity %s installed on %s", in.opts.RuntimeVersion, osRelease.Name)
	return nil
}

// detectOS verifies the host is a Debian-family system.
func (in *Installer) detectOS() (*OSRelease, error) {
	path := in.opts.OSReleasePath
	if path == "" {
		path = "/etc/os-release"
	}

	in.report(StageDetectOS, "reading %s", path)

	osRelease, err := ReadOSRelease(path)
	if err != nil {
		return nil, err
	}

	if !osRelease.DebianFamily() {
		return nil, fmt.Errorf("unsupported distribution %q: only Debian-family systems are supported", osRelease.ID)
	}

	return osRelease, nil
}

// installPackages updates the apt cache and installs the build dependencies.
func (in *Installer) installPackages(ctx context.Context) error {
	in.report(StagePackages, "installing %d packages via apt-get", len(buildDeps))

	if err := in.run(ctx, "", true, "apt-get", "update"); err != nil {
		return fmt.Errorf("failed to update apt cache: %w", err)
	}

	args := append([]string{"install", "-y"}, buildDeps...)
	if err := in.run(ctx, "", true, "apt-get", args...); err != nil {
		return fmt.Errorf("failed to install build dependencies: %w", err)
	}

	return nil
}

// ensureToolchain installs the Go toolchain unless a working one is
// already on PATH.
func (in *Installer) ensureToolchain(ctx context.Context) error {
	if path, err := in.exec.LookPath("go"); err == nil {
		version, err := in.exec.Output(ctx, "", path, "version")
		if err == nil {
			in.report(StageToolchain, "found %s, skipping download", strings.TrimSpace(version))
			return nil
		}
		// go resolves but won't run; reinstall it
	}

	goRoot := in.opts.GoRoot
	if goRoot == "" {
		goRoot = "/usr/local"
	}

	tarball := fmt.Sprintf("go%s.linux-%s.tar.gz", in.opts.GoVersion, runtime.GOARCH)
	url := "https://go.dev/dl/" + tarball
	destPath := filepath.Join(os.TempDir(), tarball)

	in.report(StageToolchain, "downloading %s", url)

	err := Download(ctx, in.client, DownloadOptions{
		URL:      url,
		DestPath: destPath,
		SHA256:   in.opts.GoSHA256,
	})
	if err != nil {
		return fmt.Errorf("failed to download Go toolchain: %w", err)
	}
	defer os.Remove(destPath)

	if err := in.run(ctx, "", true, "tar", "-C", goRoot, "-xzf", destPath); err != nil {
		return fmt.Errorf("failed to extract Go toolchain: %w", err)
	}

	return nil
}

// fetchSource clones the pinned release into a uuid-suffixed staging
// directory under the system temp dir and returns its path.
func (in *Installer) fetchSource(ctx context.Context) (string, error) {
	srcDir := filepath.Join(os.TempDir(), "seqops-build-"+uuid.NewString())
	tag := "v" + strings.TrimPrefix(in.opts.RuntimeVersion, "v")

	in.report(StageClone, "cloning %s at %s", RepoURL, tag)

	if err := in.run(ctx, "", false, "git", "clone", "--depth", "1", "--branch", tag, RepoURL, srcDir); err != nil {
		return "", fmt.Errorf("failed to clone source: %w", err)
	}

	return srcDir, nil
}

// buildAndInstall configures, compiles, and installs the runtime.
func (in *Installer) buildAndInstall(ctx context.Context, srcDir string) error {
	in.report(StageBuild, "running mconfig in %s", srcDir)

	if err := in.run(ctx, srcDir, false, "./mconfig"); err != nil {
		return fmt.Errorf("configure failed: %w", err)
	}

	if err := in.run(ctx, srcDir, false, "make", "-C", "builddir"); err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	in.report(StageInstall, "installing from %s", srcDir)

	if err := in.run(ctx, srcDir, true, "make", "-C", "builddir", "install"); err != nil {
		return fmt.Errorf("install failed: %w", err)
	}

	return nil
}

// updateProfile appends PATH exports to the shell profile, once.
func (in *Installer) updateProfile() error {
	if in.opts.ProfilePath == "" {
		return nil
	}

	in.report(StageProfile, "updating %s", in.opts.ProfilePath)

	return AppendProfileBlock(in.opts.ProfilePath, []string{
		`export PATH=/usr/local/go/bin:$PATH`,
		`export PATH=/usr/local/singularity/bin:$PATH`,
	})
}

// run executes a command, prefixing with sudo when the step needs
// privileges and the installer is configured to use it.
func (in *Installer) run(ctx context.Context, dir string, privileged bool, name string, args ...string) error {
	if privileged && in.opts.Sudo {
		args = append([]string{name}, args...)
		name = "sudo"
	}
	return in.exec.Run(ctx, dir, name, args...)
}
