package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ormasoftchile/retrofit/pkg/ecosystem/tui"
)

var reviewRules string

var reviewCmd = &cobra.Command{
	Use:   "review [dir]",
	Short: "Review pending rewrites interactively and apply them selectively",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runReview,
}

func runReview(cmd *cobra.Command, args []string) error {
	runner, err := buildRunner(reviewRules, args)
	if err != nil {
		return err
	}
	_, pending, err := runner.Preview()
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewModel(pending), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run review: %w", err)
	}
	m, ok := final.(tui.Model)
	if !ok {
		return nil
	}
	if err := m.Err(); err != nil {
		return err
	}
	fmt.Printf("%d of %d file(s) updated\n", m.Applied(), len(pending))
	return nil
}

func init() {
	reviewCmd.Flags().StringVar(&reviewRules, "rules", "", "path to a rule-set YAML file (default: built-in rule set)")
	rootCmd.AddCommand(reviewCmd)
}
