package listview

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(item int, selected bool) string {
	if selected {
		return fmt.Sprintf("> %d", item)
	}
	return fmt.Sprintf("  %d", item)
}

func newList(n, height int) *Model[int] {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return New(items, height, render)
}

func press(m *Model[int], keys ...tea.KeyMsg) {
	for _, k := range keys {
		m.Update(k)
	}
}

func TestModel_Navigation(t *testing.T) {
	m := newList(10, 3)
	down := tea.KeyMsg{Type: tea.KeyDown}
	up := tea.KeyMsg{Type: tea.KeyUp}

	press(m, up)
	assert.Equal(t, 0, m.Cursor(), "cursor stops at the top")

	press(m, down, down, down)
	assert.Equal(t, 3, m.Cursor())
	assert.Equal(t, 1, m.Offset(), "window follows the cursor")

	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 2, m.Cursor())
	assert.Equal(t, 1, m.Offset())

	press(m, tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, 9, m.Cursor())
	assert.Equal(t, 7, m.Offset())

	press(m, tea.KeyMsg{Type: tea.KeyPgUp})
	assert.Equal(t, 6, m.Cursor())

	press(m, tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, 0, m.Cursor())
	assert.Equal(t, 0, m.Offset())

	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}, tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, 4, m.Cursor())
}

func TestModel_View(t *testing.T) {
	m := newList(5, 2)
	m.Select(3)

	lines := strings.Split(m.View(), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"  2", "> 3"}, lines)

	item, ok := m.SelectedItem()
	require.True(t, ok)
	assert.Equal(t, 3, item)
}

func TestModel_HeightChanges(t *testing.T) {
	m := newList(5, 2)
	m.Select(4)
	assert.Equal(t, 3, m.Offset())

	m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	assert.Equal(t, 0, m.Offset(), "everything fits")
	assert.Len(t, strings.Split(m.View(), "\n"), 5)

	m.SetHeight(0)
	assert.Len(t, strings.Split(m.View(), "\n"), 1)
}

func TestModel_Empty(t *testing.T) {
	m := New[int](nil, 5, render)
	press(m, tea.KeyMsg{Type: tea.KeyDown})

	assert.Empty(t, m.View())
	assert.Zero(t, m.Len())
	_, ok := m.SelectedItem()
	assert.False(t, ok)
}
