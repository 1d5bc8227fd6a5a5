package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/pagedtable/internal/source"
	"github.com/rshade/pagedtable/internal/table"
)

// fakeLoader serves total rows named "row N" and records every query.
type fakeLoader struct {
	total   int
	err     error
	queries []source.Query
}

func (f *fakeLoader) Load(_ context.Context, q source.Query) (source.Result, error) {
	f.queries = append(f.queries, q)
	if f.err != nil {
		return source.Result{}, f.err
	}
	size := q.Pagination.PageSize
	var rows []table.Row
	for i := q.Pagination.Offset(); i < min(q.Pagination.Offset()+size, f.total); i++ {
		rows = append(rows, table.Row{"id": float64(i), "name": fmt.Sprintf("row %d", i), "email": "x@example.com"})
	}
	return source.Result{Rows: rows, TotalCount: f.total, TotalPageCount: table.PageCount(f.total, size)}, nil
}

func testResource() source.Resource {
	return source.Resource{
		Name:  "things",
		Title: "Things",
		Columns: []table.Column{
			{ID: "id", Label: "ID", DefaultWidth: 6},
			{ID: "name", Label: "Name", DefaultWidth: 12},
			{ID: "email", Label: "Email", DefaultWidth: 20},
		},
	}
}

func newTestTable(loader source.Loader, mode table.FilterMode, strict bool) TableModel {
	return NewTableModel(context.Background(), TableOptions{
		Resource:        testResource(),
		Loader:          loader,
		PageSize:        10,
		PageSizeOptions: []int{5, 10, 20},
		FilterMode:      mode,
		MinColumnWidth:  4,
		StrictOrdering:  strict,
	})
}

// collect runs cmd and every command batched inside it, returning the
// PageLoadedMsgs produced.
func collect(cmd tea.Cmd) []PageLoadedMsg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		var out []PageLoadedMsg
		for _, c := range msg {
			out = append(out, collect(c)...)
		}
		return out
	case PageLoadedMsg:
		return []PageLoadedMsg{msg}
	default:
		return nil
	}
}

func update(t *testing.T, m TableModel, msg tea.Msg) (TableModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	tm, ok := next.(TableModel)
	require.True(t, ok)
	return tm, cmd
}

// deliver applies every load produced by cmd, following reconciliation
// fetches until none remain.
func deliver(t *testing.T, m TableModel, cmd tea.Cmd) TableModel {
	t.Helper()
	for pending := collect(cmd); len(pending) > 0; {
		msg := pending[0]
		pending = pending[1:]
		var next tea.Cmd
		m, next = update(t, m, msg)
		pending = append(pending, collect(next)...)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTableModel_InitialLoad(t *testing.T) {
	loader := &fakeLoader{total: 25}
	m := newTestTable(loader, table.FilterModeLive, false)

	m = deliver(t, m, m.Init())

	require.Len(t, loader.queries, 1)
	assert.Equal(t, table.PaginationState{PageIndex: 0, PageSize: 10}, loader.queries[0].Pagination)
	assert.Equal(t, "things", loader.queries[0].Resource)
	assert.False(t, m.Loading())
	assert.Equal(t, 3, m.Controller().TotalPageCount())

	view := m.View()
	assert.Contains(t, view, "Page 1 of 3")
	assert.Contains(t, view, "row 9")
	assert.Contains(t, view, "25 rows")
}

func TestTableModel_Navigation(t *testing.T) {
	loader := &fakeLoader{total: 25}
	m := newTestTable(loader, table.FilterModeLive, false)
	m = deliver(t, m, m.Init())

	var cmd tea.Cmd
	m, cmd = update(t, m, runes("n"))
	m = deliver(t, m, cmd)
	assert.Equal(t, 1, m.Controller().Pagination().PageIndex)

	m, cmd = update(t, m, runes("G"))
	m = deliver(t, m, cmd)
	assert.Equal(t, 2, m.Controller().Pagination().PageIndex)

	m, cmd = update(t, m, runes("n"))
	assert.Nil(t, cmd, "no fetch past the last page")

	m, cmd = update(t, m, runes("+"))
	m = deliver(t, m, cmd)
	assert.Equal(t, table.PaginationState{PageIndex: 0, PageSize: 20}, m.Controller().Pagination())

	m, cmd = update(t, m, runes("-"))
	m = deliver(t, m, cmd)
	m, cmd = update(t, m, runes("-"))
	m = deliver(t, m, cmd)
	assert.Equal(t, 5, m.Controller().Pagination().PageSize)
	assert.Contains(t, m.View(), "Page 1 of 5")

	assert.Len(t, loader.queries, 6)
}

func TestTableModel_ReloadReconcilesShrinkingData(t *testing.T) {
	loader := &fakeLoader{total: 25}
	m := newTestTable(loader, table.FilterModeLive, false)
	m = deliver(t, m, m.Init())

	var cmd tea.Cmd
	m, cmd = update(t, m, runes("G"))
	m = deliver(t, m, cmd)
	require.Equal(t, 2, m.Controller().Pagination().PageIndex)

	loader.total = 12
	loader.queries = nil
	m, cmd = update(t, m, runes("r"))
	m = deliver(t, m, cmd)

	require.Len(t, loader.queries, 2, "reload plus one corrective fetch")
	assert.Equal(t, 2, loader.queries[0].Pagination.PageIndex)
	assert.Equal(t, 1, loader.queries[1].Pagination.PageIndex)
	assert.Equal(t, 1, m.Controller().Pagination().PageIndex)
	assert.Contains(t, m.View(), "Page 2 of 2")
	assert.Contains(t, m.View(), "row 11")
}

func TestTableModel_ResponseOrdering(t *testing.T) {
	tests := []struct {
		name     string
		strict   bool
		wantPage string
	}{
		{name: "last write wins", strict: false, wantPage: "row 10"},
		{name: "strict ordering", strict: true, wantPage: "row 20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := &fakeLoader{total: 25}
			m := newTestTable(loader, table.FilterModeLive, tt.strict)
			m = deliver(t, m, m.Init())

			var first, second tea.Cmd
			m, first = update(t, m, runes("n"))
			m, second = update(t, m, runes("n"))
			firstMsgs, secondMsgs := collect(first), collect(second)
			require.Len(t, firstMsgs, 1)
			require.Len(t, secondMsgs, 1)

			// Newer response arrives first, the stale one last.
			m, _ = update(t, m, secondMsgs[0])
			m, _ = update(t, m, firstMsgs[0])

			assert.Contains(t, m.View(), tt.wantPage)
			assert.False(t, m.Loading())
			assert.Equal(t, 2, m.Controller().Pagination().PageIndex)
		})
	}
}

func TestTableModel_LoadErrorKeepsPageCount(t *testing.T) {
	loader := &fakeLoader{total: 25}
	m := newTestTable(loader, table.FilterModeLive, false)
	m = deliver(t, m, m.Init())

	loader.err = errors.New("connection refused")
	var cmd tea.Cmd
	m, cmd = update(t, m, runes("n"))
	m = deliver(t, m, cmd)

	require.Error(t, m.Err())
	assert.Equal(t, 3, m.Controller().TotalPageCount())
	assert.Equal(t, 1, m.Controller().Pagination().PageIndex)
	view := m.View()
	assert.Contains(t, view, "error: connection refused")
	assert.Contains(t, view, EmptyMessage)

	loader.err = nil
	m, cmd = update(t, m, runes("r"))
	m = deliver(t, m, cmd)
	assert.NoError(t, m.Err())
}

func TestTableModel_EmptyResult(t *testing.T) {
	m := newTestTable(&fakeLoader{total: 0}, table.FilterModeLive, false)
	m = deliver(t, m, m.Init())

	view := m.View()
	assert.Contains(t, view, EmptyMessage)
	assert.Contains(t, view, "Page 1 of 1")
	assert.Equal(t, 0, m.Controller().Pagination().PageIndex)
}

func TestTableModel_StagedFilter(t *testing.T) {
	loader := &fakeLoader{total: 25}
	m := newTestTable(loader, table.FilterModeStaged, false)
	m = deliver(t, m, m.Init())
	loader.queries = nil

	var cmd tea.Cmd
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = update(t, m, runes("/"))
	require.True(t, m.Editing())

	for _, r := range "abc" {
		m, cmd = update(t, m, runes(string(r)))
		assert.Empty(t, collect(cmd), "drafts never fetch")
	}
	assert.Equal(t, table.FilterState{"name": "abc"}, m.Controller().Filters())
	assert.Contains(t, m.View(), "filters not applied")

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.Editing())
	m = deliver(t, m, cmd)

	require.Len(t, loader.queries, 1)
	assert.Equal(t, table.FilterState{"name": "abc"}, loader.queries[0].Filters)
	assert.Equal(t, 0, loader.queries[0].Pagination.PageIndex)
	assert.NotContains(t, m.View(), "filters not applied")
}

func TestTableModel_LiveFilter(t *testing.T) {
	loader := &fakeLoader{total: 25}
	m := newTestTable(loader, table.FilterModeLive, false)
	m = deliver(t, m, m.Init())
	loader.queries = nil

	var cmd tea.Cmd
	m, _ = update(t, m, runes("/"))
	m, cmd = update(t, m, runes("4"))
	m = deliver(t, m, cmd)
	m, cmd = update(t, m, runes("2"))
	m = deliver(t, m, cmd)

	require.Len(t, loader.queries, 2, "every keystroke fetches")
	assert.Equal(t, table.FilterState{"id": "42"}, loader.queries[1].Filters)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.Editing())
	assert.Equal(t, table.FilterState{"id": "42"}, m.Controller().Filters(), "esc keeps the filter")

	m, cmd = update(t, m, runes("x"))
	m = deliver(t, m, cmd)
	assert.True(t, m.Controller().Filters().IsEmpty())
	assert.Len(t, loader.queries, 3)
}

func TestTableModel_FilterTypingDoesNotTriggerShortcuts(t *testing.T) {
	loader := &fakeLoader{total: 25}
	m := newTestTable(loader, table.FilterModeStaged, false)
	m = deliver(t, m, m.Init())

	var cmd tea.Cmd
	m, _ = update(t, m, runes("/"))
	m, cmd = update(t, m, runes("q"))
	assert.Empty(t, collect(cmd))
	m, _ = update(t, m, runes("n"))
	assert.Equal(t, 0, m.Controller().Pagination().PageIndex)
	assert.Equal(t, "qn", m.Controller().Filters().Get("id"))
}

func TestTableModel_MouseResize(t *testing.T) {
	loader := &fakeLoader{total: 25}
	m := newTestTable(loader, table.FilterModeLive, false)
	m = deliver(t, m, m.Init())
	loader.queries = nil
	before := m.Controller().Pagination()

	border := m.Controller().ColumnWidth("id")
	m, _ = update(t, m, tea.MouseMsg{X: border, Y: headerLine, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.True(t, m.Controller().Resizing())

	m, _ = update(t, m, tea.MouseMsg{X: border + 5, Y: headerLine, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	assert.Equal(t, 11, m.Controller().ColumnWidth("id"))

	m, _ = update(t, m, tea.MouseMsg{X: border - 10, Y: headerLine, Action: tea.MouseActionRelease})
	assert.False(t, m.Controller().Resizing())
	assert.Equal(t, 4, m.Controller().ColumnWidth("id"), "clamped to the minimum width")

	assert.Empty(t, loader.queries, "resizing never fetches")
	assert.Equal(t, before, m.Controller().Pagination())

	// A press away from any border does nothing.
	m, _ = update(t, m, tea.MouseMsg{X: 1, Y: headerLine, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.False(t, m.Controller().Resizing())
}

func TestTableModel_KeyboardResize(t *testing.T) {
	m := newTestTable(&fakeLoader{total: 25}, table.FilterModeLive, false)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m, cmd := update(t, m, runes(">"))

	assert.Nil(t, cmd)
	assert.Equal(t, 22, m.Controller().ColumnWidth("email"))
}

func TestTableModel_IgnoresOtherTables(t *testing.T) {
	loader := &fakeLoader{total: 25}
	other := newTestTable(loader, table.FilterModeLive, false)
	msgs := collect(other.Init())
	require.Len(t, msgs, 1)

	m := newTestTable(loader, table.FilterModeLive, false)
	_ = collect(m.Init())
	m, _ = update(t, m, msgs[0])
	assert.True(t, m.Loading())
	assert.Empty(t, m.Controller().Props().Data)
}

func TestTableModel_ViewLayout(t *testing.T) {
	m := newTestTable(&fakeLoader{total: 3}, table.FilterModeLive, false)
	m = deliver(t, m, m.Init())

	lines := strings.Split(m.View(), "\n")
	require.Greater(t, len(lines), headerLine)
	assert.Contains(t, lines[headerLine], "ID")
	assert.Contains(t, lines[headerLine], "Email")
}

func TestFitCell(t *testing.T) {
	assert.Equal(t, "abc   ", fitCell("abc", 6))
	assert.Equal(t, "abcd…", fitCell("abcdefgh", 5))
	assert.Equal(t, "a b   ", fitCell("a\nb", 6))
	assert.Empty(t, fitCell("abc", 0))
}

func TestOutputMode(t *testing.T) {
	assert.Equal(t, OutputModePlain, DetectOutputMode(true, false))
	assert.Equal(t, OutputModePlain, DetectOutputMode(false, true))
	assert.Equal(t, "interactive", OutputModeInteractive.String())
	assert.Equal(t, "styled", OutputModeStyled.String())
	assert.Equal(t, "plain", OutputModePlain.String())
	assert.Positive(t, TerminalWidth())
}
