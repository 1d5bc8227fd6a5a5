package listview

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// RenderFunc renders one item. selected is true for the item under the cursor.
type RenderFunc[T any] func(item T, selected bool) string

// KeyMap holds the list navigation bindings.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
}

// DefaultKeyMap returns arrow, vim and paging bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Home:     key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "top")),
		End:      key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "bottom")),
	}
}

// Model is a scrolling selection list. The zero value is not usable; build
// one with New.
type Model[T any] struct {
	items  []T
	render RenderFunc[T]
	keys   KeyMap

	cursor int
	// offset is the index of the first visible item.
	offset int
	height int
}

// New returns a list showing height rows at a time.
func New[T any](items []T, height int, render RenderFunc[T]) *Model[T] {
	m := &Model[T]{
		items:  items,
		render: render,
		keys:   DefaultKeyMap(),
		height: max(height, 1),
	}
	m.scroll()
	return m
}

// Init implements tea.Model.
func (m *Model[T]) Init() tea.Cmd {
	return nil
}

// Update moves the cursor on key presses and tracks the window height.
func (m *Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Up):
			m.Select(m.cursor - 1)
		case key.Matches(msg, m.keys.Down):
			m.Select(m.cursor + 1)
		case key.Matches(msg, m.keys.PageUp):
			m.Select(m.cursor - m.height)
		case key.Matches(msg, m.keys.PageDown):
			m.Select(m.cursor + m.height)
		case key.Matches(msg, m.keys.Home):
			m.Select(0)
		case key.Matches(msg, m.keys.End):
			m.Select(len(m.items) - 1)
		}
	case tea.WindowSizeMsg:
		m.SetHeight(msg.Height)
	}
	return m, nil
}

// View renders the visible window, one item per line.
func (m *Model[T]) View() string {
	if len(m.items) == 0 {
		return ""
	}
	end := min(m.offset+m.height, len(m.items))
	lines := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.render(m.items[i], i == m.cursor))
	}
	return strings.Join(lines, "\n")
}

// Select moves the cursor to index, clamped to the list bounds.
func (m *Model[T]) Select(index int) {
	if len(m.items) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = min(max(index, 0), len(m.items)-1)
	m.scroll()
}

// SetHeight changes the number of visible rows.
func (m *Model[T]) SetHeight(height int) {
	m.height = max(height, 1)
	m.scroll()
}

// Cursor returns the selected index.
func (m *Model[T]) Cursor() int {
	return m.cursor
}

// Offset returns the index of the first visible item.
func (m *Model[T]) Offset() int {
	return m.offset
}

// Len returns the number of items.
func (m *Model[T]) Len() int {
	return len(m.items)
}

// SelectedItem returns the item under the cursor.
func (m *Model[T]) SelectedItem() (T, bool) {
	var zero T
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return zero, false
	}
	return m.items[m.cursor], true
}

// scroll keeps the cursor inside the window with minimal movement.
func (m *Model[T]) scroll() {
	switch {
	case m.cursor < m.offset:
		m.offset = m.cursor
	case m.cursor >= m.offset+m.height:
		m.offset = m.cursor - m.height + 1
	}
	m.offset = max(min(m.offset, len(m.items)-m.height), 0)
}
