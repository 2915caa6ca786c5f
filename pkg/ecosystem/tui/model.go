// Package tui implements the interactive review surface: pending rewrites
// are listed per file, the selected file's diff is shown in a viewport,
// and changes are written only when the user applies them.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ormasoftchile/retrofit/pkg/patch"
	"github.com/ormasoftchile/retrofit/pkg/report"
)

// keyMap binds the review actions.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Apply    key.Binding
	ApplyAll key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k")),
	Down:     key.NewBinding(key.WithKeys("down", "j")),
	Apply:    key.NewBinding(key.WithKeys("enter", "a")),
	ApplyAll: key.NewBinding(key.WithKeys("A")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c")),
}

// Model is the Bubble Tea model for retrofit review.
type Model struct {
	pending  []patch.Pending
	applied  []bool
	diffs    []string
	selected int
	vp       viewport.Model
	width    int
	height   int
	ready    bool
	err      error
}

// NewModel builds a review model over the pending changes of one run.
func NewModel(pending []patch.Pending) Model {
	diffs := make([]string, len(pending))
	for i, p := range pending {
		d, err := report.UnifiedDiff(p)
		if err != nil {
			d = fmt.Sprintf("diff unavailable: %v", err)
		}
		diffs[i] = d
	}
	return Model{
		pending: pending,
		applied: make([]bool, len(pending)),
		diffs:   diffs,
	}
}

// Applied counts the changes written so far.
func (m Model) Applied() int {
	n := 0
	for _, a := range m.applied {
		if a {
			n++
		}
	}
	return n
}

// Err returns the first write error, if any.
func (m Model) Err() error { return m.err }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			if m.selected > 0 {
				m.selected--
				m.setDiff()
			}
		case key.Matches(msg, keys.Down):
			if m.selected < len(m.pending)-1 {
				m.selected++
				m.setDiff()
			}
		case key.Matches(msg, keys.Apply):
			m.apply(m.selected)
		case key.Matches(msg, keys.ApplyAll):
			for i := range m.pending {
				m.apply(i)
			}
		default:
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		listHeight := len(m.pending) + 6
		vpHeight := m.height - listHeight
		if vpHeight < 3 {
			vpHeight = 3
		}
		if !m.ready {
			m.vp = viewport.New(m.width, vpHeight)
			m.ready = true
		} else {
			m.vp.Width = m.width
			m.vp.Height = vpHeight
		}
		m.setDiff()
	}

	return m, nil
}

func (m *Model) apply(i int) {
	if i < 0 || i >= len(m.pending) || m.applied[i] {
		return
	}
	if err := patch.WriteFile(m.pending[i].Path, m.pending[i].New); err != nil {
		m.err = err
		return
	}
	m.applied[i] = true
}

func (m *Model) setDiff() {
	if !m.ready || len(m.diffs) == 0 {
		return
	}
	m.vp.SetContent(m.diffs[m.selected])
	m.vp.GotoTop()
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51"))
	appliedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("  retrofit review — %d pending", len(m.pending))))
	b.WriteString("\n\n")

	if len(m.pending) == 0 {
		b.WriteString(dimStyle.Render("  Nothing to do — all files are up to date."))
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("  q: quit"))
		return b.String()
	}

	for i, p := range m.pending {
		icon := "±"
		style := lipgloss.NewStyle()
		if m.applied[i] {
			icon = "✓"
			style = appliedStyle
		}
		line := fmt.Sprintf("%s %s  %s", icon, p.Name, dimStyle.Render(strings.Join(p.Passes, ", ")))
		if i == m.selected {
			b.WriteString(selectedStyle.Render("▸ ") + style.Render(line))
		} else {
			b.WriteString("  " + style.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.ready {
		b.WriteString(m.vp.View())
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(errStyle.Render(fmt.Sprintf("  ✗ %v", m.err)))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("  enter/a: apply  A: apply all  ↑/↓: navigate  q: quit"))
	return b.String()
}
