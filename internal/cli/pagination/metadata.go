package pagination

import (
	"github.com/rshade/pagedtable/internal/table"
)

// Meta describes a fetched page for JSON and YAML output. CurrentPage is
// 1-based.
type Meta struct {
	CurrentPage int  `json:"current_page" yaml:"current_page"`
	PageSize    int  `json:"page_size"    yaml:"page_size"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
}

// NewMeta builds page metadata from the requested state and the counts the
// loader reported. A negative totalItems means the source did not report
// one and is replaced by 0.
func NewMeta(state table.PaginationState, totalPages, totalItems int) Meta {
	current := state.PageIndex + 1
	return Meta{
		CurrentPage: current,
		PageSize:    state.PageSize,
		TotalPages:  max(totalPages, 0),
		TotalItems:  max(totalItems, 0),
		HasPrevious: current > 1,
		HasNext:     current < totalPages,
	}
}
