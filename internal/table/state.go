package table

import "maps"

// PaginationState identifies the requested page. PageIndex is 0-based.
type PaginationState struct {
	PageIndex int `json:"page_index" yaml:"page_index"`
	PageSize  int `json:"page_size"  yaml:"page_size"`
}

// Offset returns the index of the first row of the page.
func (p PaginationState) Offset() int {
	return p.PageIndex * p.PageSize
}

// PageCount returns ceil(rows/pageSize), or 0 when there are no rows.
func PageCount(rows, pageSize int) int {
	if rows <= 0 || pageSize <= 0 {
		return 0
	}
	return (rows + pageSize - 1) / pageSize
}

// FilterState maps a column ID to its filter text. A missing key and an empty
// string both mean "no filter"; With never stores empty strings.
//
// FilterState values are treated as immutable: every method that changes the
// filters returns a new map.
type FilterState map[string]string

// With returns a copy of f with the filter for col set to text.
// Empty text removes the filter.
func (f FilterState) With(col, text string) FilterState {
	next := f.Clone()
	if text == "" {
		delete(next, col)
		return next
	}
	next[col] = text
	return next
}

// Get returns the filter text for col.
func (f FilterState) Get(col string) string {
	return f[col]
}

// Clone returns an independent copy. The copy is never nil.
func (f FilterState) Clone() FilterState {
	next := make(FilterState, len(f))
	maps.Copy(next, f)
	return next
}

// Equal reports whether both filter sets hold the same non-empty entries.
func (f FilterState) Equal(other FilterState) bool {
	return maps.Equal(f.active(), other.active())
}

// IsEmpty reports whether no filter is set.
func (f FilterState) IsEmpty() bool {
	return len(f.active()) == 0
}

func (f FilterState) active() map[string]string {
	out := make(map[string]string, len(f))
	for k, v := range f {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// ColumnWidths maps a column ID to its width in display cells.
type ColumnWidths map[string]int

// With returns a copy of w with col set to width.
func (w ColumnWidths) With(col string, width int) ColumnWidths {
	next := make(ColumnWidths, len(w)+1)
	maps.Copy(next, w)
	next[col] = width
	return next
}

// Width returns the width of col, or fallback when col has no entry.
func (w ColumnWidths) Width(col string, fallback int) int {
	if v, ok := w[col]; ok {
		return v
	}
	return fallback
}

// State is the complete table state.
//
// Filters holds the text the user sees in the filter inputs. Applied holds the
// filters that are sent with every fetch. In live filter mode both are always
// equal; in staged mode Applied only changes when a search is committed.
type State struct {
	Pagination PaginationState
	Filters    FilterState
	Applied    FilterState
	Widths     ColumnWidths
}

// NewState returns the initial state for the given page size and column widths.
func NewState(pageSize int, widths ColumnWidths) State {
	if pageSize < 1 {
		pageSize = 1
	}
	if widths == nil {
		widths = ColumnWidths{}
	}
	return State{
		Pagination: PaginationState{PageIndex: 0, PageSize: pageSize},
		Filters:    FilterState{},
		Applied:    FilterState{},
		Widths:     widths,
	}
}

// WithPageIndex returns a copy of s pointing at index. Negative indexes become 0;
// the upper bound is not known here and is enforced by the Controller.
func (s State) WithPageIndex(index int) State {
	s.Pagination.PageIndex = max(index, 0)
	return s
}

// WithPageSize returns a copy of s with the given page size and the page index
// reset to 0, so the next request can never point past the end of the data.
func (s State) WithPageSize(size int) State {
	s.Pagination = PaginationState{PageIndex: 0, PageSize: max(size, 1)}
	return s
}

// WithFilter returns a copy of s with the draft filter for col set to text.
func (s State) WithFilter(col, text string) State {
	s.Filters = s.Filters.With(col, text)
	return s
}

// WithFilters returns a copy of s with all draft filters replaced.
func (s State) WithFilters(filters FilterState) State {
	s.Filters = filters.Clone()
	return s
}

// WithAppliedFilters returns a copy of s whose applied filters equal the drafts.
func (s State) WithAppliedFilters() State {
	s.Applied = s.Filters.Clone()
	return s
}

// WithColumnWidth returns a copy of s with col set to width.
func (s State) WithColumnWidth(col string, width int) State {
	s.Widths = s.Widths.With(col, width)
	return s
}

// Equal compares two states by value.
func (s State) Equal(other State) bool {
	return s.Pagination == other.Pagination &&
		s.Filters.Equal(other.Filters) &&
		s.Applied.Equal(other.Applied) &&
		maps.Equal(s.Widths, other.Widths)
}
