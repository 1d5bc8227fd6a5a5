package source

import (
	"context"
	"errors"

	"github.com/rshade/pagedtable/internal/table"
)

// Errors returned by loaders.
var (
	ErrUnknownResource = errors.New("unknown resource")
	ErrDecode          = errors.New("decoding response")
)

// UnknownCount marks a Result whose source did not report a row total.
const UnknownCount = -1

// Query asks for one page of a resource.
type Query struct {
	Resource   string
	Pagination table.PaginationState
	// Filters are the applied filters, keyed by column ID.
	Filters table.FilterState
}

// Result is one loaded page.
type Result struct {
	Rows []table.Row `json:"rows"`
	// TotalCount is the number of rows matching the filters across all
	// pages, or UnknownCount.
	TotalCount     int `json:"total_count"`
	TotalPageCount int `json:"total_page_count"`
}

// Loader loads pages of data.
type Loader interface {
	Load(ctx context.Context, q Query) (Result, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, q Query) (Result, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, q Query) (Result, error) {
	return f(ctx, q)
}
