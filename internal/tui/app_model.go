package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/pagedtable/internal/source"
	listview "github.com/rshade/pagedtable/internal/tui/list"
)

// ViewState is the screen the app is showing.
type ViewState int

// View states.
const (
	ViewStatePicker ViewState = iota
	ViewStateTable
	ViewStateQuitting
)

const pickerChrome = 4

// TableFactory builds the table model for a resource.
type TableFactory func(res source.Resource) TableModel

// AppModel lets the user pick a resource and browse it. esc in the table
// returns to the picker.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type AppModel struct {
	state    ViewState
	picker   *listview.Model[source.Resource]
	newTable TableFactory
	table    TableModel
	keys     KeyMap
	width    int
	height   int
}

// NewAppModel returns an app showing resources in the picker.
func NewAppModel(resources []source.Resource, newTable TableFactory) AppModel {
	return AppModel{
		state:    ViewStatePicker,
		picker:   listview.New(resources, defaultHeight-pickerChrome, renderResource),
		newTable: newTable,
		keys:     DefaultKeyMap(),
		width:    defaultWidth,
		height:   defaultHeight,
	}
}

// NewAppModelAt returns an app that opens res directly. The picker is still
// reachable with esc.
func NewAppModelAt(resources []source.Resource, res source.Resource, newTable TableFactory) AppModel {
	m := NewAppModel(resources, newTable)
	for i, r := range resources {
		if r.Name == res.Name {
			m.picker.Select(i)
		}
	}
	m.state = ViewStateTable
	m.table = newTable(res)
	return m
}

// Init implements tea.Model.
func (m AppModel) Init() tea.Cmd {
	if m.state == ViewStateTable {
		return m.table.Init()
	}
	return nil
}

// Update implements tea.Model.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = size.Width, size.Height
		m.picker.SetHeight(size.Height - pickerChrome)
		if m.state == ViewStateTable {
			return m.updateTable(msg)
		}
		return m, nil
	}

	switch m.state {
	case ViewStatePicker:
		return m.updatePicker(msg)
	case ViewStateTable:
		return m.updateTable(msg)
	case ViewStateQuitting:
		return m, nil
	}
	return m, nil
}

func (m AppModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit), key.Matches(keyMsg, m.keys.Cancel):
		m.state = ViewStateQuitting
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Commit):
		res, found := m.picker.SelectedItem()
		if !found {
			return m, nil
		}
		m.state = ViewStateTable
		m.table = m.newTable(res)
		sized, _ := m.table.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		m.table, _ = sized.(TableModel)
		return m, m.table.Init()
	}

	m.picker.Update(keyMsg)
	return m, nil
}

func (m AppModel) updateTable(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && !m.table.Editing() && key.Matches(keyMsg, m.keys.Cancel) {
		m.state = ViewStatePicker
		return m, nil
	}

	next, cmd := m.table.Update(msg)
	if tm, ok := next.(TableModel); ok {
		m.table = tm
	}
	return m, cmd
}

// View implements tea.Model.
func (m AppModel) View() string {
	switch m.state {
	case ViewStateTable:
		return m.table.View()
	case ViewStateQuitting:
		return ""
	default:
		var b strings.Builder
		b.WriteString(TitleStyle.Render("pagedtable"))
		b.WriteString("\n")
		b.WriteString(SubtleStyle.Render("Choose a resource"))
		b.WriteString("\n\n")
		b.WriteString(m.picker.View())
		b.WriteString("\n")
		b.WriteString(SubtleStyle.Render("↑/↓ move · enter open · q quit"))
		return b.String()
	}
}

// State returns the current view state.
func (m AppModel) State() ViewState {
	return m.state
}

// Table returns the active table model.
func (m AppModel) Table() TableModel {
	return m.table
}

func renderResource(res source.Resource, selected bool) string {
	line := fmt.Sprintf("%-10s %s", res.Title, SubtleStyle.Render(res.Description))
	if selected {
		return SelectedStyle.Render("▸ ") + line
	}
	return "  " + line
}
