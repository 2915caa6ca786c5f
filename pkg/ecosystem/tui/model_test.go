package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ormasoftchile/retrofit/pkg/patch"
)

func pendingFixture(t *testing.T) []patch.Pending {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "a.rs")
	if err := os.WriteFile(path, []byte("old\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return []patch.Pending{{
		Name:   "a.rs",
		Path:   path,
		Old:    "old\n",
		New:    "new\n",
		Passes: []string{"rename"},
	}}
}

// TestModel_InitFromPending builds one row per pending change.
func TestModel_InitFromPending(t *testing.T) {
	m := NewModel(pendingFixture(t))
	if len(m.pending) != 1 {
		t.Fatalf("pending = %d, want 1", len(m.pending))
	}
	if m.Applied() != 0 {
		t.Errorf("applied = %d, want 0", m.Applied())
	}
	if !strings.Contains(m.diffs[0], "+new") {
		t.Errorf("diff not precomputed: %q", m.diffs[0])
	}
}

// TestModel_ApplyWritesFile: the apply key writes the new content.
func TestModel_ApplyWritesFile(t *testing.T) {
	pending := pendingFixture(t)
	m := NewModel(pending)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	if m.Applied() != 1 {
		t.Fatalf("applied = %d, want 1", m.Applied())
	}
	content, err := os.ReadFile(pending[0].Path)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "new\n" {
		t.Errorf("file content = %q, want new", content)
	}

	// a second apply on the same row is a no-op
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if m.Applied() != 1 {
		t.Errorf("applied = %d after re-apply, want 1", m.Applied())
	}
}

// TestModel_ApplyAll writes every pending change.
func TestModel_ApplyAll(t *testing.T) {
	pending := pendingFixture(t)
	m := NewModel(pending)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'A'}})
	m = updated.(Model)
	if m.Applied() != len(pending) {
		t.Errorf("applied = %d, want %d", m.Applied(), len(pending))
	}
}

// TestModel_QuitReturnsQuitCmd.
func TestModel_QuitReturnsQuitCmd(t *testing.T) {
	m := NewModel(nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected tea.Quit command")
	}
}

// TestModel_ViewEmptyCorpus renders the nothing-to-do message.
func TestModel_ViewEmptyCorpus(t *testing.T) {
	m := NewModel(nil)
	if !strings.Contains(m.View(), "Nothing to do") {
		t.Errorf("view = %q", m.View())
	}
}

// TestModel_ViewListsFiles shows file names and rule ids.
func TestModel_ViewListsFiles(t *testing.T) {
	m := NewModel(pendingFixture(t))
	view := m.View()
	for _, w := range []string{"a.rs", "rename", "retrofit review"} {
		if !strings.Contains(view, w) {
			t.Errorf("view missing %q:\n%s", w, view)
		}
	}
}
