package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/ormasoftchile/retrofit/pkg/rules"
)

var (
	rulesFile   string
	rulesRender bool
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show the resolved rule table",
	RunE:  runRules,
}

func runRules(cmd *cobra.Command, args []string) error {
	rs, err := loadRules(rulesFile)
	if err != nil {
		return err
	}
	doc := rulesMarkdown(rs)
	if rulesRender {
		doc = renderMarkdown(doc)
	}
	fmt.Println(doc)
	return nil
}

// rulesMarkdown documents a rule set as markdown.
func rulesMarkdown(rs *rules.RuleSet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", rs.Meta.Name)
	if rs.Meta.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", rs.Meta.Description)
	}
	fmt.Fprintf(&b, "Target: `%s` (files ending in `%s`)\n\n", rs.Target.Dir, rs.Target.Suffix)
	for _, r := range rs.Rules {
		fmt.Fprintf(&b, "## %s (`%s`)\n\n", r.ID, r.Kind)
		if r.Description != "" {
			fmt.Fprintf(&b, "%s\n\n", r.Description)
		}
		switch r.Kind {
		case rules.KindInsertFields:
			fmt.Fprintf(&b, "- literal: `%s`, anchored after `%s`", r.Literal, r.After)
			if r.Before != "" {
				fmt.Fprintf(&b, ", before `%s`", r.Before)
			}
			b.WriteString("\n")
			for _, a := range r.Insert {
				fmt.Fprintf(&b, "- inserts `%s: %s`\n", a.Field, a.Value)
			}
		case rules.KindWrapSequence:
			fmt.Fprintf(&b, "- wraps `%s: Some(%s ...)` in a one-element `vec![]`\n", r.Field, r.Type)
		case rules.KindReplace:
			fmt.Fprintf(&b, "- `%s` → `%s`\n", r.From, r.To)
		case rules.KindStripNested:
			fmt.Fprintf(&b, "- strips `%s` from `%s.%s`\n", strings.Join(r.Strip, "`, `"), r.Literal, r.Field)
		}
		if r.When != "" {
			fmt.Fprintf(&b, "- when: `%s`\n", r.When)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderMarkdown converts markdown to styled terminal output, falling back
// to the raw input if glamour is unavailable or rendering fails.
func renderMarkdown(md string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

// --- validate ---

var validateCmd = &cobra.Command{
	Use:   "validate [retrofit.yaml]",
	Short: "Validate a rule-set YAML file against the schema",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	rs, err := loadRules(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("✓ %s is valid (%d rules)\n", rs.Meta.Name, len(rs.Rules))
	return nil
}

// --- schema ---

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Export the rule-set JSON Schema (Draft 2020-12)",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := rules.GenerateJSONSchema()
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	rulesCmd.Flags().StringVar(&rulesFile, "rules", "", "path to a rule-set YAML file (default: built-in rule set)")
	rulesCmd.Flags().BoolVar(&rulesRender, "render", false, "render the rule documentation for the terminal")
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(schemaCmd)
}
