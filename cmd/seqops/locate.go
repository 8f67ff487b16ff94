package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seqops/seqops/pkg/config"
	"github.com/seqops/seqops/pkg/locate"
	"github.com/seqops/seqops/pkg/samples"
	"github.com/seqops/seqops/pkg/style"
)

// newLocateCmd creates the locate subcommand
func newLocateCmd(configPath *string) *cobra.Command {
	var input, searchRoot, output, separator string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "locate",
		Short: "Locate and collect read files for a sample list",
		Long: `Read a list of sample identifiers, search the sequencing data tree for
FASTQ files named after each sample, and copy the matches into a flat
output directory.

A file matches a sample when its name contains the identifier followed by
the separator and carries a FASTQ-style extension (.fastq, .fq, .fastq.gz, ...).
With --dry-run, matches are counted and reported but nothing is copied.

The normalized sample list is written to <output>/samples.txt on every run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(*configPath)
			if err != nil {
				return err
			}

			if input == "" {
				input = cfg.SampleList
			}
			if searchRoot == "" {
				searchRoot = cfg.SearchRoot
			}
			if output == "" {
				output = cfg.OutputDir
			}
			if separator == "" {
				separator = cfg.Separator
			}

			return runLocate(cmd, locate.Options{
				SearchRoot: searchRoot,
				OutputDir:  output,
				Separator:  separator,
				ReportOnly: dryRun,
			}, input)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Sample list file (default \"samples\")")
	cmd.Flags().StringVarP(&searchRoot, "search-root", "f", "", "Directory tree to search (default \"/data/sequencing\")")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output directory for copied files (default \"fastq\")")
	cmd.Flags().StringVarP(&separator, "separator", "s", "", "Separator expected after the sample id (default \"_\")")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "Report matches without copying")

	return cmd
}

// runLocate loads the sample list, runs the search, and renders the report.
func runLocate(cmd *cobra.Command, opts locate.Options, input string) error {
	list, err := samples.Load(input)
	if err != nil {
		return err
	}

	fmt.Printf("Searching %s for %d sample(s)...\n\n", opts.SearchRoot, len(list))

	report, err := locate.Run(cmd.Context(), opts, list, func(e locate.Entry) {
		line := e.String()
		if e.Matches == 0 {
			line = style.WarningStyle.Render(line)
		}
		fmt.Println(line)
	})
	if err != nil {
		return err
	}

	fmt.Println()
	if report.AllFound() {
		fmt.Println(style.SuccessStyle.Render(report.Summary()))
	} else {
		fmt.Println(style.WarningStyle.Render(report.Summary()))
	}

	return nil
}
