package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/seqops/seqops/pkg/config"
	"github.com/seqops/seqops/pkg/provision"
	"github.com/seqops/seqops/pkg/style"
)

// newProvisionCmd creates the provision subcommand
func newProvisionCmd(configPath *string) *cobra.Command {
	var runtimeVersion, goVersion, profile string
	var noSudo bool

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Install the Singularity container runtime",
		Long: `Install the Singularity container runtime from a pinned upstream release:
apt build dependencies, a Go toolchain when none is on PATH, then a
source clone compiled and installed via mconfig/make.

Only Debian-family systems are supported. Every step either succeeds or
the run aborts; re-running after a failure picks up from scratch.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(*configPath)
			if err != nil {
				return err
			}

			if runtimeVersion == "" {
				runtimeVersion = cfg.Provision.RuntimeVersion
			}
			if goVersion == "" {
				goVersion = cfg.Provision.GoVersion
			}
			if profile == "" {
				profile = cfg.Provision.ProfilePath
			}
			if profile == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return fmt.Errorf("could not resolve home directory: %w", err)
				}
				profile = filepath.Join(home, ".bashrc")
			}

			installer := provision.NewInstaller(provision.Options{
				RuntimeVersion: runtimeVersion,
				GoVersion:      goVersion,
				GoSHA256:       cfg.Provision.GoSHA256,
				ProfilePath:    profile,
				Sudo:           !noSudo,
			})

			installer.SetProgress(func(e provision.ProgressEvent) {
				fmt.Printf("%s %s\n", style.InfoStyle.Render("["+e.Stage.DisplayName()+"]"), e.Message)
			})

			if err := installer.Run(cmd.Context()); err != nil {
				return err
			}

			fmt.Println()
			fmt.Println(style.SuccessStyle.Render("Provisioning complete."))
			fmt.Printf("Restart your shell or run: source %s\n", profile)
			return nil
		},
	}

	cmd.Flags().StringVar(&runtimeVersion, "runtime-version", "", "Singularity release to install (default from config)")
	cmd.Flags().StringVar(&goVersion, "go-version", "", "Go toolchain version to download when go is absent")
	cmd.Flags().StringVar(&profile, "profile", "", "Shell profile to receive PATH exports (default ~/.bashrc)")
	cmd.Flags().BoolVar(&noSudo, "no-sudo", false, "Run privileged steps without sudo (already root)")

	return cmd
}
