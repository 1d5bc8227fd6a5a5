package table

// Store holds the current State. The state is replaced wholesale by the named
// operations below; each reports whether the state actually changed.
type Store struct {
	state State
}

// NewStore creates a store seeded with initial.
func NewStore(initial State) *Store {
	return &Store{state: initial}
}

// State returns the current state value.
func (s *Store) State() State {
	return s.state
}

// SetPageIndex moves to index (never below 0).
func (s *Store) SetPageIndex(index int) bool {
	return s.replace(s.state.WithPageIndex(index))
}

// SetPageSize changes the page size and resets the page index.
func (s *Store) SetPageSize(size int) bool {
	return s.replace(s.state.WithPageSize(size))
}

// SetFilter changes the draft filter of col.
func (s *Store) SetFilter(col, text string) bool {
	return s.replace(s.state.WithFilter(col, text))
}

// ReplaceFilters replaces every draft filter.
func (s *Store) ReplaceFilters(filters FilterState) bool {
	return s.replace(s.state.WithFilters(filters))
}

// ApplyFilters promotes the draft filters to applied filters.
func (s *Store) ApplyFilters() bool {
	return s.replace(s.state.WithAppliedFilters())
}

// SetColumnWidth changes the width of col.
func (s *Store) SetColumnWidth(col string, width int) bool {
	return s.replace(s.state.WithColumnWidth(col, width))
}

func (s *Store) replace(next State) bool {
	if next.Equal(s.state) {
		return false
	}
	s.state = next
	return true
}
