package picker

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

type fakeSource struct {
	names    []string
	namesErr error
	previews map[string]string
	asked    []string
}

func (f *fakeSource) Names(_ context.Context, _ bool) ([]string, error) {
	return f.names, f.namesErr
}

func (f *fakeSource) PreviewString(_ context.Context, name string) (string, error) {
	f.asked = append(f.asked, name)
	return f.previews[name], nil
}

// newTestModel returns a model that has already received its names.
func newTestModel(t *testing.T, src *fakeSource) *pickerModel {
	t.Helper()
	m := newModel(context.Background(), src, false, DarkTheme())
	m.width, m.height = 100, 30
	// no blink ticks while typing
	m.filter.Cursor.SetMode(cursor.CursorStatic)
	_, cmd := m.Update(namesMsg{names: src.names})
	runPreview(m, cmd)
	return m
}

// runPreview executes cmd and feeds a resulting preview back into m.
func runPreview(m *pickerModel, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case previewMsg:
		m.Update(msg)
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if pm, ok := c().(previewMsg); ok {
				m.Update(pm)
			}
		}
	}
}

func typeText(m *pickerModel, s string) {
	for _, r := range s {
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		runPreview(m, cmd)
	}
}

func testSource() *fakeSource {
	return &fakeSource{
		names: []string{"Default", "project1", "project2", "notes"},
		previews: map[string]string{
			"Default":  "home$ ",
			"project1": "p1$ ",
			"project2": "p2$ ",
			"notes":    "Workspace notes is not running\n",
		},
	}
}

func TestNamesLoaded_PreviewsFirst(t *testing.T) {
	src := testSource()
	m := newTestModel(t, src)

	if m.loading {
		t.Error("loading should be cleared after names arrive")
	}
	if m.current() != "Default" {
		t.Errorf("current() = %q, want Default", m.current())
	}
	if m.preview != "home$ " {
		t.Errorf("preview = %q, want %q", m.preview, "home$ ")
	}
}

func TestNamesError_Quits(t *testing.T) {
	src := &fakeSource{namesErr: errors.New("no current client")}
	m := newModel(context.Background(), src, true, DarkTheme())

	_, cmd := m.Update(namesMsg{err: src.namesErr})
	if m.err == nil {
		t.Fatal("expected error to be kept on the model")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestNavigation(t *testing.T) {
	m := newTestModel(t, testSource())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	runPreview(m, cmd)
	if m.current() != "project1" || m.preview != "p1$ " {
		t.Errorf("after down: current=%q preview=%q", m.current(), m.preview)
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	runPreview(m, cmd)
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	runPreview(m, cmd)
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0 (clamped)", m.cursor)
	}

	for i := 0; i < 10; i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cursor != 3 {
		t.Errorf("cursor = %d, want 3 (clamped)", m.cursor)
	}
}

func TestFilterKeepsOrder(t *testing.T) {
	m := newTestModel(t, testSource())

	typeText(m, "proj")
	if got := strings.Join(m.filtered, ","); got != "project1,project2" {
		t.Errorf("filtered = %s, want project1,project2", got)
	}
	if m.current() != "project1" {
		t.Errorf("current() = %q, want project1", m.current())
	}
	if m.preview != "p1$ " {
		t.Errorf("preview = %q, want p1 preview", m.preview)
	}
}

func TestFilterNoMatch_EnterDoesNothing(t *testing.T) {
	m := newTestModel(t, testSource())
	typeText(m, "zzz")

	if len(m.filtered) != 0 {
		t.Fatalf("filtered = %v, want none", m.filtered)
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("enter with no match should not quit")
	}
	if m.selected != "" {
		t.Errorf("selected = %q, want empty", m.selected)
	}
}

func TestEnterSelects(t *testing.T) {
	m := newTestModel(t, testSource())
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.selected != "project2" {
		t.Errorf("selected = %q, want project2", m.selected)
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestEscapeCancels(t *testing.T) {
	for _, key := range []tea.KeyMsg{{Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		m := newTestModel(t, testSource())
		_, cmd := m.Update(key)
		if m.selected != "" {
			t.Errorf("%s: selected = %q, want empty", key.String(), m.selected)
		}
		if cmd == nil {
			t.Fatalf("%s: expected quit command", key.String())
		}
	}
}

func TestStalePreviewIgnored(t *testing.T) {
	m := newTestModel(t, testSource())
	m.Update(tea.KeyMsg{Type: tea.KeyDown}) // requests project1, result not delivered

	m.Update(previewMsg{name: "Default", content: "stale"})
	if m.preview == "stale" {
		t.Error("preview for a different workspace must be ignored")
	}
	m.Update(previewMsg{name: "project1", content: "fresh"})
	if m.preview != "fresh" {
		t.Errorf("preview = %q, want fresh", m.preview)
	}
}

func TestPreviewNotRepeated(t *testing.T) {
	src := testSource()
	m := newTestModel(t, src)

	if cmd := m.loadPreview(); cmd != nil {
		t.Error("preview of the shown workspace should not be requested again")
	}
	if len(src.asked) != 1 {
		t.Errorf("asked = %v, want one request", src.asked)
	}
}

func TestView(t *testing.T) {
	m := newTestModel(t, testSource())
	out := m.View()

	for _, want := range []string{"tmw", "Default", "project1", "home$", "4/4 workspaces"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestView_BeforeSize(t *testing.T) {
	m := newModel(context.Background(), testSource(), false, LightTheme())
	if m.View() != "Loading..." {
		t.Errorf("View() = %q, want Loading...", m.View())
	}
}

func TestFilterNames(t *testing.T) {
	names := []string{"Default", "project1", "Project-Two", "notes"}
	tests := []struct {
		query string
		want  string
	}{
		{"", "Default,project1,Project-Two,notes"},
		{"PROJ", "project1,Project-Two"},
		{"proj two", "Project-Two"},
		{"  ", "Default,project1,Project-Two,notes"},
		{"x", ""},
	}
	for _, tt := range tests {
		if got := strings.Join(filterNames(names, tt.query), ","); got != tt.want {
			t.Errorf("filterNames(%q) = %s, want %s", tt.query, got, tt.want)
		}
	}
}

func TestThemeByName(t *testing.T) {
	if ThemeByName("light").Primary != LightTheme().Primary {
		t.Error("light theme not selected")
	}
	if ThemeByName("unknown").Primary != DarkTheme().Primary {
		t.Error("unknown theme should fall back to dark")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("workspace", 6); got != "wor..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("ws", 6); got != "ws" {
		t.Errorf("truncate = %q", got)
	}
}
