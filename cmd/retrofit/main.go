package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ormasoftchile/retrofit/pkg/patch"
	"github.com/ormasoftchile/retrofit/pkg/rewrite"
	"github.com/ormasoftchile/retrofit/pkg/rules"
)

// Version is set at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "retrofit",
	Short: "Patch generated test sources to match an evolved data model",
	Long:  "retrofit — a table-driven patcher that rewrites generated test sources in place when the data structures they exercise change shape.",
}

// --- fix ---

var (
	fixRules       string
	fixInteractive bool
)

var fixCmd = &cobra.Command{
	Use:   "fix [dir]",
	Short: "Apply the rule set, rewriting changed files in place",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFix,
}

func runFix(cmd *cobra.Command, args []string) error {
	runner, err := buildRunner(fixRules, args)
	if err != nil {
		return err
	}
	if fixInteractive {
		return runInteractiveFix(runner)
	}
	runner.Out = os.Stdout
	sum, err := runner.Run()
	if err != nil {
		return err
	}
	fmt.Printf("%d of %d file(s) updated\n", sum.Changed(), sum.Scanned)
	return nil
}

// buildRunner resolves the rule set (file or built-in), applies the optional
// positional directory override, and compiles the pipeline.
func buildRunner(rulesPath string, args []string) (*patch.Runner, error) {
	rs, err := loadRules(rulesPath)
	if err != nil {
		return nil, err
	}
	dir := rs.Target.Dir
	if len(args) == 1 {
		dir = args[0]
	}
	pipeline, err := rewrite.NewPipeline(rs)
	if err != nil {
		return nil, err
	}
	return &patch.Runner{
		Dir:      dir,
		Suffix:   rs.Target.Suffix,
		Pipeline: pipeline,
	}, nil
}

// loadRules returns the built-in rule set when no path is given, otherwise
// the validated file, printing any validation errors to stderr.
func loadRules(path string) (*rules.RuleSet, error) {
	if path == "" {
		return rules.Default(), nil
	}
	rs, errs := rules.ValidateFile(path)
	if len(errs) > 0 {
		count := 0
		for _, e := range errs {
			if e.Severity != "warning" {
				fmt.Fprintf(os.Stderr, "  [%s] %s\n", e.Phase, e.Message)
				count++
			}
		}
		if count > 0 {
			return nil, fmt.Errorf("rule set validation failed with %d error(s)", count)
		}
	}
	return rs, nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("retrofit %s (%s)\n", version, commit)
	},
}

func init() {
	fixCmd.Flags().StringVar(&fixRules, "rules", "", "path to a rule-set YAML file (default: built-in rule set)")
	fixCmd.Flags().BoolVarP(&fixInteractive, "interactive", "i", false, "confirm each file before writing")
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(versionCmd)
}
