package table

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// FilterMode selects when edited filter text reaches the fetch callback.
type FilterMode string

// Supported filter modes.
const (
	// FilterModeLive applies every edit immediately and fetches on each change.
	FilterModeLive FilterMode = "live"
	// FilterModeStaged keeps edits as drafts until CommitSearch is called.
	FilterModeStaged FilterMode = "staged"
)

// Defaults used when Options leaves a field unset.
const (
	DefaultPageSize       = 10
	DefaultMinColumnWidth = 20
)

// ErrInvalidFilterMode is returned by ParseFilterMode for unknown modes.
var ErrInvalidFilterMode = errors.New("filter mode must be 'live' or 'staged'")

// DefaultPageSizeOptions returns the page sizes offered when none are configured.
func DefaultPageSizeOptions() []int {
	return []int{10, 20, 30, 40, 50}
}

// ParseFilterMode converts a configuration string into a FilterMode.
// An empty string selects live mode.
func ParseFilterMode(s string) (FilterMode, error) {
	switch FilterMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", FilterModeLive:
		return FilterModeLive, nil
	case FilterModeStaged:
		return FilterModeStaged, nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrInvalidFilterMode, s)
	}
}

// PaginationChangeFunc is invoked whenever the table needs a new page of data.
// filters are the applied filters; the map is a copy owned by the callee.
type PaginationChangeFunc func(pagination PaginationState, filters FilterState)

// FiltersChangeFunc is invoked when staged filters are committed.
type FiltersChangeFunc func(filters FilterState)

// Options configures a Controller.
type Options struct {
	// Columns are the table columns in display order.
	Columns []Column

	// InitialPageSize is the page size at construction (DefaultPageSize when < 1).
	InitialPageSize int

	// PageSizeOptions are the page sizes CyclePageSize walks through.
	PageSizeOptions []int

	// FilterMode selects live or staged filtering (live when empty).
	FilterMode FilterMode

	// InitialFilters are applied at construction in either mode.
	InitialFilters FilterState

	// MinColumnWidth is the smallest width a resize can produce
	// (DefaultMinColumnWidth when < 1).
	MinColumnWidth int

	// OnPaginationChange receives every fetch request.
	OnPaginationChange PaginationChangeFunc

	// OnFiltersChange receives committed filters in staged mode.
	OnFiltersChange FiltersChangeFunc

	// Logger receives debug output for every transition. Defaults to a no-op logger.
	Logger *zerolog.Logger
}

func (o Options) withDefaults() Options {
	if o.InitialPageSize < 1 {
		o.InitialPageSize = DefaultPageSize
	}
	if len(o.PageSizeOptions) == 0 {
		o.PageSizeOptions = DefaultPageSizeOptions()
	}
	if o.FilterMode == "" {
		o.FilterMode = FilterModeLive
	}
	if o.MinColumnWidth < 1 {
		o.MinColumnWidth = DefaultMinColumnWidth
	}
	if o.Logger == nil {
		nop := zerolog.Nop()
		o.Logger = &nop
	}
	return o
}
