package pagination

import (
	"errors"
	"fmt"

	"github.com/rshade/pagedtable/internal/table"
)

// Flag defaults and limits.
const (
	DefaultPage = 1
	MinPage     = 1
	MinPageSize = 1
	MaxPageSize = 1000
)

// Validation errors.
var (
	ErrInvalidPage     = errors.New("page must be >= 1")
	ErrInvalidPageSize = fmt.Errorf("page-size must be between %d and %d", MinPageSize, MaxPageSize)
)

// Params holds the --page and --page-size flags.
type Params struct {
	// Page is 1-based.
	Page     int
	PageSize int
}

// NewParams returns params for the first page of pageSize rows.
func NewParams(pageSize int) Params {
	return Params{Page: DefaultPage, PageSize: pageSize}
}

// Validate reports flag values a loader cannot serve.
func (p Params) Validate() error {
	if p.Page < MinPage {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, p.Page)
	}
	if p.PageSize < MinPageSize || p.PageSize > MaxPageSize {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, p.PageSize)
	}
	return nil
}

// ToState converts validated params to the 0-based controller state.
func (p Params) ToState() table.PaginationState {
	return table.PaginationState{PageIndex: p.Page - 1, PageSize: p.PageSize}
}

// CalculateTotalPages returns how many pages totalResults rows span.
func (p Params) CalculateTotalPages(totalResults int) int {
	return table.PageCount(totalResults, p.PageSize)
}
