package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterState_WithIsImmutable(t *testing.T) {
	base := FilterState{"name": "a"}
	next := base.With("email", "b")

	assert.Equal(t, FilterState{"name": "a"}, base)
	assert.Equal(t, FilterState{"name": "a", "email": "b"}, next)

	cleared := next.With("name", "")
	assert.Equal(t, FilterState{"email": "b"}, cleared)
	assert.Equal(t, "a", next.Get("name"))
}

func TestFilterState_Equal(t *testing.T) {
	assert.True(t, FilterState{}.Equal(nil))
	assert.True(t, FilterState{"a": ""}.Equal(FilterState{}))
	assert.False(t, FilterState{"a": "x"}.Equal(FilterState{"a": "y"}))
	assert.True(t, FilterState{"a": ""}.IsEmpty())
}

func TestState_Transitions(t *testing.T) {
	s := NewState(0, nil)
	require.Equal(t, 1, s.Pagination.PageSize)

	moved := s.WithPageIndex(-3)
	assert.Equal(t, 0, moved.Pagination.PageIndex)

	moved = s.WithPageIndex(5)
	assert.Equal(t, 5, moved.Pagination.PageIndex)
	assert.Equal(t, 0, s.Pagination.PageIndex, "original state is unchanged")

	resized := moved.WithPageSize(25)
	assert.Equal(t, PaginationState{PageIndex: 0, PageSize: 25}, resized.Pagination)

	drafted := resized.WithFilter("name", "x")
	assert.True(t, resized.Filters.IsEmpty())
	assert.True(t, drafted.Applied.IsEmpty())
	applied := drafted.WithAppliedFilters()
	assert.Equal(t, FilterState{"name": "x"}, applied.Applied)

	widened := applied.WithColumnWidth("name", 30)
	assert.Equal(t, 30, widened.Widths.Width("name", 0))
	assert.Equal(t, 7, applied.Widths.Width("name", 7))
	assert.False(t, widened.Equal(applied))
}

func TestStore_ReportsChanges(t *testing.T) {
	s := NewStore(NewState(10, ColumnWidths{"a": 10}))

	assert.False(t, s.SetPageIndex(0))
	assert.True(t, s.SetPageIndex(2))
	assert.False(t, s.SetColumnWidth("a", 10))
	assert.True(t, s.SetColumnWidth("a", 11))
	assert.True(t, s.SetFilter("a", "q"))
	assert.False(t, s.SetFilter("a", "q"))
	assert.True(t, s.ApplyFilters())
	assert.False(t, s.ApplyFilters())
	assert.True(t, s.ReplaceFilters(FilterState{}))
	assert.True(t, s.SetPageSize(20))
	assert.Equal(t, PaginationState{PageIndex: 0, PageSize: 20}, s.State().Pagination)
}

func TestPaginationState_Offset(t *testing.T) {
	assert.Equal(t, 30, PaginationState{PageIndex: 3, PageSize: 10}.Offset())
	assert.Equal(t, 0, PaginationState{PageIndex: 0, PageSize: 10}.Offset())
}

func TestParseFilterMode(t *testing.T) {
	tests := []struct {
		in      string
		want    FilterMode
		wantErr bool
	}{
		{in: "", want: FilterModeLive},
		{in: "live", want: FilterModeLive},
		{in: " Staged ", want: FilterModeStaged},
		{in: "lazy", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFilterMode(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidFilterMode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColumn_Value(t *testing.T) {
	row := Row{
		"id":      float64(7),
		"score":   1.5,
		"name":    "Leanne",
		"active":  true,
		"company": map[string]any{"name": "Romaguera"},
		"missing": nil,
	}

	tests := []struct {
		col  Column
		want string
	}{
		{col: Column{ID: "id"}, want: "7"},
		{col: Column{ID: "score"}, want: "1.5"},
		{col: Column{ID: "name"}, want: "Leanne"},
		{col: Column{ID: "active"}, want: "true"},
		{col: Column{ID: "company.name"}, want: "Romaguera"},
		{col: Column{ID: "company.catchPhrase"}, want: ""},
		{col: Column{ID: "name.first"}, want: ""},
		{col: Column{ID: "missing"}, want: ""},
		{
			col:  Column{ID: "shout", Accessor: func(r Row) string { return FormatValue(r["name"]) + "!" }},
			want: "Leanne!",
		},
	}
	for _, tt := range tests {
		t.Run(tt.col.ID, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.col.Value(row))
		})
	}
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		rows, size, want int
	}{
		{rows: 0, size: 10, want: 0},
		{rows: 1, size: 10, want: 1},
		{rows: 10, size: 10, want: 1},
		{rows: 11, size: 10, want: 2},
		{rows: 500, size: 30, want: 17},
		{rows: 5, size: 0, want: 0},
		{rows: -3, size: 10, want: 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PageCount(tt.rows, tt.size), "rows=%d size=%d", tt.rows, tt.size)
	}
}
