package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seqops/seqops/pkg/config"
	"github.com/seqops/seqops/pkg/doctor"
	"github.com/seqops/seqops/pkg/style"
)

// newDoctorCmd creates the doctor subcommand
func newDoctorCmd(configPath *string) *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check build and runtime prerequisites",
		Long: `Check that the tools needed to build and run the container runtime are
installed, and that the sequencing data paths are reachable.

With --fix, run the suggested install command for each missing tool.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(*configPath)
			if err != nil {
				return err
			}

			checker := doctor.NewChecker()
			checker.SetDataPaths(cfg.SearchRoot, cfg.SampleList)
			groups := checker.CheckAll()

			for _, group := range groups {
				fmt.Println(style.TitleStyle.Render(group.Name))
				for _, check := range group.Checks {
					printCheck(check)
					if fix && check.Status == doctor.StatusMissing && check.FixCommand != nil {
						fmt.Printf("    running fix: %s\n", check.FixCommand.Command)
						if err := doctor.NewFixer().RunFix(check.FixCommand); err != nil {
							fmt.Println(style.ErrorStyle.Render("    " + err.Error()))
						}
					}
				}
				fmt.Println()
			}

			summary := checker.GetSummary(groups)
			fmt.Printf("%d checks: %d ok, %d missing, %d warnings, %d errors\n",
				summary.Total, summary.OK, summary.Missing, summary.Warnings, summary.Errors)

			if checker.HasIssues(groups) {
				return fmt.Errorf("%d prerequisite(s) need attention", summary.Missing+summary.Errors)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Attempt to install missing tools")

	return cmd
}

// printCheck renders a single check result line.
func printCheck(check doctor.Check) {
	var status string
	switch check.Status {
	case doctor.StatusOK:
		status = style.SuccessStyle.Render("ok")
	case doctor.StatusMissing:
		status = style.ErrorStyle.Render("missing")
	case doctor.StatusWarning:
		status = style.WarningStyle.Render("warning")
	default:
		status = style.ErrorStyle.Render(check.Status.String())
	}

	fmt.Printf("  [%s] %s: %s\n", status, check.Name, check.Message)

	if check.Status == doctor.StatusMissing && check.FixCommand != nil {
		fmt.Printf("        fix: %s\n", check.FixCommand.Command)
	}
}
