// Package picker is an interactive workspace chooser with a live preview of
// the highlighted workspace's session.
package picker

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Source supplies workspace names and previews. *workspace.Orchestrator
// satisfies it.
type Source interface {
	Names(ctx context.Context, excludeActive bool) ([]string, error)
	PreviewString(ctx context.Context, name string) (string, error)
}

// Picker runs the chooser.
type Picker struct {
	Source        Source
	ExcludeActive bool
	Theme         Theme
}

// messages
type namesMsg struct {
	names []string
	err   error
}

type previewMsg struct {
	name    string
	content string
	err     error
}

type pickerModel struct {
	src           Source
	ctx           context.Context
	excludeActive bool
	st            styles

	names    []string // all workspaces, declaration order
	filtered []string // names matching the filter, same order
	cursor   int
	filter   textinput.Model

	// preview of previewFor; a response for any other name is stale
	previewFor string
	preview    string
	previewErr error

	loading bool
	err     error

	selected string

	width  int
	height int
}

// Run shows the picker and returns the chosen workspace name, or "" when
// the user cancelled.
func (p *Picker) Run(ctx context.Context) (string, error) {
	m := newModel(ctx, p.Source, p.ExcludeActive, p.Theme)
	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := prog.Run()
	if err != nil {
		return "", err
	}
	fm := final.(*pickerModel)
	if fm.err != nil {
		return "", fm.err
	}
	return fm.selected, nil
}

func newModel(ctx context.Context, src Source, excludeActive bool, theme Theme) *pickerModel {
	ti := textinput.New()
	ti.Placeholder = "filter workspaces"
	ti.Prompt = "> "
	ti.CharLimit = 256
	ti.Width = 40
	ti.Focus()

	st := newStyles(theme)
	ti.PromptStyle = st.prompt

	return &pickerModel{
		src:           src,
		ctx:           ctx,
		excludeActive: excludeActive,
		st:            st,
		filter:        ti,
		loading:       true,
	}
}

func (m *pickerModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadNames())
}

func (m *pickerModel) loadNames() tea.Cmd {
	src, ctx, exclude := m.src, m.ctx, m.excludeActive
	return func() tea.Msg {
		names, err := src.Names(ctx, exclude)
		return namesMsg{names: names, err: err}
	}
}

// loadPreview requests the preview for the current selection, or nil when
// it is already shown.
func (m *pickerModel) loadPreview() tea.Cmd {
	name := m.current()
	if name == "" || name == m.previewFor {
		return nil
	}
	m.previewFor = name
	m.preview = ""
	m.previewErr = nil

	src, ctx := m.src, m.ctx
	return func() tea.Msg {
		content, err := src.PreviewString(ctx, name)
		return previewMsg{name: name, content: content, err: err}
	}
}

// current returns the highlighted workspace name, or "" when nothing matches.
func (m *pickerModel) current() string {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return ""
	}
	return m.filtered[m.cursor]
}

// applyFilter recomputes the visible names, keeping the cursor on the same
// workspace when it is still visible.
func (m *pickerModel) applyFilter() {
	prev := m.current()
	m.filtered = filterNames(m.names, m.filter.Value())
	m.cursor = 0
	for i, n := range m.filtered {
		if n == prev {
			m.cursor = i
			break
		}
	}
}

func (m *pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case namesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.names = msg.names
		m.applyFilter()
		m.previewFor = ""
		return m, m.loadPreview()

	case previewMsg:
		if msg.name != m.previewFor {
			return m, nil
		}
		m.preview = msg.content
		m.previewErr = msg.err
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	return m, cmd
}

func (m *pickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.selected = ""
		return m, tea.Quit

	case "enter":
		m.selected = m.current()
		if m.selected == "" {
			return m, nil
		}
		return m, tea.Quit

	case "up", "ctrl+p", "shift+tab":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, m.loadPreview()

	case "down", "ctrl+n", "tab":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
		return m, m.loadPreview()

	case "ctrl+r":
		m.loading = true
		return m, m.loadNames()
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, tea.Batch(cmd, m.loadPreview())
}

func (m *pickerModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.st.title.Render("tmw"))
	b.WriteString("  ")
	b.WriteString(m.hints())
	if m.loading {
		b.WriteString("  ")
		b.WriteString(m.st.loading.Render("loading..."))
	}
	b.WriteString("\n")
	b.WriteString(m.filter.View())
	b.WriteString("\n")

	bodyHeight := m.height - 3
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	listWidth := 20
	for _, n := range m.names {
		if w := lipgloss.Width(n) + 4; w > listWidth {
			listWidth = w
		}
	}
	if limit := m.width / 3; listWidth > limit && limit > 10 {
		listWidth = limit
	}
	previewWidth := m.width - listWidth - 3
	if previewWidth < 10 {
		previewWidth = 10
	}

	list := lipgloss.NewStyle().Width(listWidth).Height(bodyHeight).
		Render(m.renderList(listWidth, bodyHeight))
	preview := m.st.preview.Render(
		lipgloss.NewStyle().MaxWidth(previewWidth).MaxHeight(bodyHeight).
			Render(m.renderPreview()))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list, preview))
	b.WriteString("\n")

	b.WriteString(m.st.dim.Render(fmt.Sprintf("  %d/%d workspaces", len(m.filtered), len(m.names))))
	return b.String()
}

func (m *pickerModel) hints() string {
	pairs := [][2]string{
		{"↑↓", "move"},
		{"enter", "switch"},
		{"ctrl+r", "reload"},
		{"esc", "quit"},
	}
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, m.st.hintKey.Render(p[0])+" "+m.st.hintDesc.Render(p[1]))
	}
	return strings.Join(parts, "  ")
}

func (m *pickerModel) renderList(width, height int) string {
	if len(m.filtered) == 0 {
		if m.loading {
			return ""
		}
		return m.st.dim.Render("  no match")
	}

	// keep the cursor inside the visible window
	start := 0
	if m.cursor >= height {
		start = m.cursor - height + 1
	}
	end := start + height
	if end > len(m.filtered) {
		end = len(m.filtered)
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		name := truncate(m.filtered[i], width-2)
		if i == m.cursor {
			lines = append(lines, m.st.selected.Render("> "+name))
		} else {
			lines = append(lines, m.st.text.Render("  "+name))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *pickerModel) renderPreview() string {
	if m.previewErr != nil {
		return m.st.err.Render(fmt.Sprintf("preview failed: %v", m.previewErr))
	}
	return strings.TrimRight(m.preview, "\n")
}

// filterNames keeps names containing every whitespace separated term of
// query, case-insensitively, in their original order.
func filterNames(names []string, query string) []string {
	terms := strings.Fields(strings.ToLower(query))
	out := make([]string, 0, len(names))
	for _, n := range names {
		lower := strings.ToLower(n)
		match := true
		for _, t := range terms {
			if !strings.Contains(lower, t) {
				match = false
				break
			}
		}
		if match {
			out = append(out, n)
		}
	}
	return out
}

// truncate cuts a string to at most maxLen runes.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
