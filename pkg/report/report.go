// Package report renders run summaries and per-file diffs for the CLI
// surfaces.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/ormasoftchile/retrofit/pkg/patch"
)

var (
	colorGreen  = lipgloss.Color("42")
	colorYellow = lipgloss.Color("214")
	colorDim    = lipgloss.Color("240")

	changedStyle = lipgloss.NewStyle().Foreground(colorYellow)
	cleanStyle   = lipgloss.NewStyle().Foreground(colorDim)
	writtenStyle = lipgloss.NewStyle().Foreground(colorGreen)
)

// Summary renders a per-file table for a finished (or dry) run, columns
// padded with runewidth so glyphs and wide names line up.
func Summary(sum *patch.Summary) string {
	var b strings.Builder
	nameWidth := 0
	for _, r := range sum.Results {
		if w := runewidth.StringWidth(r.Name); w > nameWidth {
			nameWidth = w
		}
	}
	for _, r := range sum.Results {
		name := runewidth.FillRight(r.Name, nameWidth)
		switch {
		case r.Written:
			b.WriteString("  " + writtenStyle.Render("✓ "+name) + "  " + strings.Join(r.Passes, ", ") + "\n")
		case r.Changed:
			b.WriteString("  " + changedStyle.Render("± "+name) + "  " + strings.Join(r.Passes, ", ") + "\n")
		default:
			b.WriteString("  " + cleanStyle.Render("= "+name) + "\n")
		}
	}
	b.WriteString(fmt.Sprintf("\n  %d scanned, %d changed\n", sum.Scanned, sum.Changed()))
	return b.String()
}

// UnifiedDiff renders the pending change for one file as a unified diff.
func UnifiedDiff(p patch.Pending) (string, error) {
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(p.Old),
		B:        difflib.SplitLines(p.New),
		FromFile: p.Name,
		ToFile:   p.Name + " (retrofitted)",
		Context:  3,
	})
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", p.Name, err)
	}
	return text, nil
}
