package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/regscope/regscope/pkg/keypath"
	"github.com/regscope/regscope/pkg/projection"
	"github.com/regscope/regscope/pkg/registry"
)

var (
	styleTitle    = lipgloss.NewStyle().Bold(true).Reverse(true).Padding(0, 1)
	styleScaffold = lipgloss.NewStyle().Faint(true)
	styleTarget   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	styleExposed  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	styleCursor   = lipgloss.NewStyle().Reverse(true)
	styleStatus   = lipgloss.NewStyle().Faint(true)
	styleError    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

type browseKeys struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Values  key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func defaultBrowseKeys() browseKeys {
	return browseKeys{
		Up:      key.NewBinding(key.WithKeys("up", "k")),
		Down:    key.NewBinding(key.WithKeys("down", "j")),
		Toggle:  key.NewBinding(key.WithKeys("enter", " ")),
		Values:  key.NewBinding(key.WithKeys("v")),
		Refresh: key.NewBinding(key.WithKeys("r")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c", "esc")),
	}
}

// browseRow is one visible line of the flattened tree.
type browseRow struct {
	node     *projection.Node
	depth    int
	expanded bool
}

type browseModel struct {
	app  *app
	keys browseKeys

	rows   []browseRow
	cursor int

	// values of the currently inspected key, when v was pressed
	valuesFor keypath.KeyPath
	values    []registry.Value

	status      string
	statusIsErr bool

	width  int
	height int
}

func newBrowseModel(a *app) *browseModel {
	m := &browseModel{app: a, keys: defaultBrowseKeys()}
	for _, root := range a.projector.Roots() {
		m.rows = append(m.rows, browseRow{node: root})
	}
	return m
}

func (m *browseModel) Init() tea.Cmd { return nil }

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Toggle):
			m.toggle()
		case key.Matches(msg, m.keys.Values):
			m.loadValues()
		case key.Matches(msg, m.keys.Refresh):
			m.refresh()
		}
	}
	return m, nil
}

// toggle expands or collapses the key under the cursor.
func (m *browseModel) toggle() {
	if len(m.rows) == 0 {
		return
	}
	row := &m.rows[m.cursor]
	if row.expanded {
		m.collapse(m.cursor)
		return
	}
	children, err := m.app.projector.Expand(row.node)
	if err != nil {
		m.setError(err)
		return
	}
	row.expanded = true
	inserted := make([]browseRow, len(children))
	for i, child := range children {
		inserted[i] = browseRow{node: child, depth: row.depth + 1}
	}
	rest := make([]browseRow, len(m.rows[m.cursor+1:]))
	copy(rest, m.rows[m.cursor+1:])
	m.rows = append(append(m.rows[:m.cursor+1], inserted...), rest...)
	m.clearStatus()
}

// collapse removes every row below i that is deeper than row i.
func (m *browseModel) collapse(i int) {
	row := &m.rows[i]
	end := i + 1
	for end < len(m.rows) && m.rows[end].depth > row.depth {
		end++
	}
	m.rows = append(m.rows[:i+1], m.rows[end:]...)
	row.expanded = false
	m.clearStatus()
}

// loadValues reads the values of the selected key, if it is on the edit
// surface.
func (m *browseModel) loadValues() {
	if len(m.rows) == 0 {
		return
	}
	node := m.rows[m.cursor].node
	if !node.Editable() {
		m.status = "values are only shown for configured keys and their children"
		m.statusIsErr = false
		m.values = nil
		return
	}
	path := m.app.projector.ResolveEditable(node)
	values, err := m.app.provider.Values(path)
	if err != nil {
		m.setError(err)
		return
	}
	m.valuesFor = path
	m.values = values
	m.clearStatus()
}

// refresh discards the cached children of the selected key; the next
// expand re-reads the store.
func (m *browseModel) refresh() {
	if len(m.rows) == 0 {
		return
	}
	if m.rows[m.cursor].expanded {
		m.collapse(m.cursor)
	}
	m.app.projector.Refresh(m.rows[m.cursor].node)
	m.status = "refreshed " + m.rows[m.cursor].node.Path.String()
	m.statusIsErr = false
}

func (m *browseModel) setError(err error) {
	m.status = err.Error()
	m.statusIsErr = true
}

func (m *browseModel) clearStatus() {
	m.status = ""
	m.statusIsErr = false
}

func (m *browseModel) View() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("regscope") + "\n")

	treeHeight := m.height - 3 - len(m.valueLines())
	if treeHeight < 1 {
		treeHeight = 1
	}
	start := 0
	if m.cursor >= treeHeight {
		start = m.cursor - treeHeight + 1
	}
	for i := start; i < len(m.rows) && i < start+treeHeight; i++ {
		b.WriteString(m.renderRow(i) + "\n")
	}

	for _, line := range m.valueLines() {
		b.WriteString(line + "\n")
	}

	help := "enter expand · v values · r refresh · q quit"
	if m.status != "" {
		if m.statusIsErr {
			help = styleError.Render(m.status)
		} else {
			help = m.status
		}
	}
	b.WriteString(styleStatus.Render(help))
	return b.String()
}

func (m *browseModel) renderRow(i int) string {
	row := m.rows[i]
	prefix := "  "
	if row.node.Kind != projection.ExposedChild {
		if row.expanded {
			prefix = "▾ "
		} else {
			prefix = "▸ "
		}
	}
	label := strings.Repeat("  ", row.depth) + prefix + row.node.Name

	var style lipgloss.Style
	switch row.node.Kind {
	case projection.Target:
		style = styleTarget
	case projection.ExposedChild:
		style = styleExposed
	default:
		style = styleScaffold
	}
	if i == m.cursor {
		style = styleCursor
	}
	return style.Render(label)
}

func (m *browseModel) valueLines() []string {
	if m.values == nil {
		return nil
	}
	lines := []string{styleTitle.Render("values of " + m.valuesFor.String())}
	if len(m.values) == 0 {
		lines = append(lines, styleStatus.Render("(no values)"))
	}
	for _, v := range m.values {
		lines = append(lines, fmt.Sprintf("%s  %s  %s",
			displayName(v.Name), v.Type, registry.FormatData(v)))
	}
	return lines
}
