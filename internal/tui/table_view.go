package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/pagedtable/internal/table"
)

const (
	// headerLine is the screen row of the column headers.
	headerLine = 1

	cellSeparator  = "│"
	separatorWidth = 1
	ellipsis       = "…"

	// EmptyMessage is shown when a page has no rows.
	EmptyMessage = "No data available"
)

// View renders the model (Bubble Tea interface).
func (m TableModel) View() string {
	clip := lipgloss.NewStyle().MaxWidth(m.width)
	lines := []string{
		m.renderTitle(),
		m.renderHeader(),
		m.renderFilterRow(),
		SubtleStyle.Render(strings.Repeat("─", m.tableWidth())),
	}
	lines = append(lines, m.renderRows()...)
	lines = append(lines, "", m.renderFooter(), m.renderInputOrHelp())

	for i, l := range lines {
		lines[i] = clip.Render(l)
	}
	return strings.Join(lines, "\n")
}

func (m TableModel) renderTitle() string {
	title := TitleStyle.Render(m.resource.Title)
	badge := BadgeStyle.Render(string(m.ctrl.Mode()) + " filters")
	if m.seq.Loading() {
		return title + badge + m.spinner.View()
	}
	return title + badge
}

func (m TableModel) renderHeader() string {
	cells := make([]string, 0, len(m.ctrl.Columns()))
	for i, col := range m.ctrl.Columns() {
		text := fitCell(col.Label, m.ctrl.ColumnWidth(col.ID))
		if i == m.focus {
			cells = append(cells, FocusedHeaderStyle.Render(text))
			continue
		}
		cells = append(cells, TableHeaderStyle.Render(text))
	}
	return strings.Join(cells, SubtleStyle.Render(cellSeparator)) + SubtleStyle.Render(cellSeparator)
}

func (m TableModel) renderFilterRow() string {
	drafts := m.ctrl.Filters()
	cells := make([]string, 0, len(m.ctrl.Columns()))
	for _, col := range m.ctrl.Columns() {
		text := ""
		if v := drafts.Get(col.ID); v != "" {
			text = "⌕ " + v
		}
		cells = append(cells, FilterCellStyle.Render(fitCell(text, m.ctrl.ColumnWidth(col.ID))))
	}
	return strings.Join(cells, SubtleStyle.Render(cellSeparator)) + SubtleStyle.Render(cellSeparator)
}

func (m TableModel) renderRows() []string {
	rows := m.ctrl.Props().Data
	if len(rows) == 0 {
		if m.seq.Loading() {
			return []string{SubtleStyle.Render("Loading…")}
		}
		return []string{SubtleStyle.Render(EmptyMessage)}
	}

	out := make([]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, 0, len(m.ctrl.Columns()))
		for _, col := range m.ctrl.Columns() {
			cells = append(cells, fitCell(col.Value(row), m.ctrl.ColumnWidth(col.ID)))
		}
		out = append(out, strings.Join(cells, cellSeparator)+cellSeparator)
	}
	return out
}

func (m TableModel) renderFooter() string {
	p := message.NewPrinter(language.English)
	parts := []string{
		ValueStyle.Render(m.ctrl.PageLabel()),
		LabelStyle.Render(p.Sprintf("%d per page", m.ctrl.Pagination().PageSize)),
	}
	if m.totalCount >= 0 {
		parts = append(parts, LabelStyle.Render(p.Sprintf("%d rows", m.totalCount)))
	}
	if m.ctrl.Mode() == table.FilterModeStaged && !m.ctrl.Filters().Equal(m.ctrl.AppliedFilters()) {
		parts = append(parts, WarningStyle.Render("filters not applied, press enter"))
	}

	switch {
	case m.err != nil:
		parts = append(parts, ErrorStyle.Render("error: "+m.err.Error()))
	case m.seq.Loading():
		parts = append(parts, InfoStyle.Render("loading"))
	case m.lastLoad > 0:
		parts = append(parts, SubtleStyle.Render(fmt.Sprintf("loaded in %dms", m.lastLoad.Milliseconds())))
	}
	return strings.Join(parts, SubtleStyle.Render(" · "))
}

func (m TableModel) renderInputOrHelp() string {
	if m.editing {
		col, _ := m.focusedColumn()
		return LabelStyle.Render(col.Label+" ") + m.input.View()
	}
	return m.help.View(m.keys)
}

// tableWidth is the rendered width of one table line.
func (m TableModel) tableWidth() int {
	w := 0
	for _, col := range m.ctrl.Columns() {
		w += m.ctrl.ColumnWidth(col.ID) + separatorWidth
	}
	return w
}

// fitCell flattens s to one line and pads or truncates it to exactly w cells.
func fitCell(s string, w int) string {
	if w <= 0 {
		return ""
	}
	s = strings.Join(strings.Fields(s), " ")
	if lipgloss.Width(s) > w {
		s = ansi.Truncate(s, w, ellipsis)
	}
	return s + strings.Repeat(" ", max(w-lipgloss.Width(s), 0))
}
