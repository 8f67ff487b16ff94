// Package main provides the seqops CLI tool for sequencing-lab operations.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// version is set via -ldflags during build
var version = "dev"

func main() {
	rootCmd := newRootCmd()

	// Cobra handles error printing
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd creates the root command for seqops
func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "seqops",
		Short: "Sequencing Lab Operations CLI",
		Long: `seqops is a CLI tool for the operational chores around a sequencing lab:
collecting FASTQ read files for a list of samples and provisioning the
container runtime the analysis pipelines run in.

It supports:
  - Locating and collecting read files by sample identifier
  - Installing the Singularity container runtime from a pinned release
  - Checking build and runtime prerequisites`,
		Version: version,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (defaults to ./seqops.yaml if present)")

	rootCmd.AddCommand(
		newLocateCmd(&configPath),
		newProvisionCmd(&configPath),
		newDoctorCmd(&configPath),
	)

	return rootCmd
}
