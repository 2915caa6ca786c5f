package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ormasoftchile/retrofit/pkg/report"
)

var (
	checkRules string
	checkDiff  bool
)

var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Dry run: report which files the rule set would rewrite",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	runner, err := buildRunner(checkRules, args)
	if err != nil {
		return err
	}
	sum, pending, err := runner.Preview()
	if err != nil {
		return err
	}
	if checkDiff {
		for _, p := range pending {
			text, err := report.UnifiedDiff(p)
			if err != nil {
				return err
			}
			fmt.Fprint(os.Stdout, text)
		}
	}
	fmt.Print(report.Summary(sum))
	if n := sum.Changed(); n > 0 {
		return fmt.Errorf("%d file(s) need retrofitting", n)
	}
	return nil
}

func init() {
	checkCmd.Flags().StringVar(&checkRules, "rules", "", "path to a rule-set YAML file (default: built-in rule set)")
	checkCmd.Flags().BoolVar(&checkDiff, "diff", false, "print a unified diff for each pending change")
	rootCmd.AddCommand(checkCmd)
}
