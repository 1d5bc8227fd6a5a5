package table

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog"
)

// Props are the inbound facts the caller supplies after every load.
type Props struct {
	Data           []Row
	TotalPageCount int
	IsLoading      bool
}

// Controller dispatches user intents onto the Store, decides which of them need
// a fetch, and reconciles the page index against the total page count reported
// by the caller.
type Controller struct {
	opts    Options
	log     zerolog.Logger
	store   *Store
	resizer *Resizer

	props          Props
	totalPageCount int
	observed       bool
}

// New creates a Controller. Column widths are seeded from each column's
// DefaultWidth (MinColumnWidth when unset).
func New(opts Options) *Controller {
	opts = opts.withDefaults()

	widths := make(ColumnWidths, len(opts.Columns))
	for _, col := range opts.Columns {
		w := col.DefaultWidth
		if w < 1 {
			w = opts.MinColumnWidth
		}
		widths[col.ID] = w
	}

	c := &Controller{
		opts:    opts,
		log:     opts.Logger.With().Str("component", "table").Logger(),
		store:   NewStore(NewState(opts.InitialPageSize, widths).WithFilters(opts.InitialFilters).WithAppliedFilters()),
		resizer: NewResizer(opts.MinColumnWidth),
	}
	c.opts.PageSizeOptions = slices.Clone(opts.PageSizeOptions)
	return c
}

// State returns the current state value.
func (c *Controller) State() State {
	return c.store.State()
}

// Pagination returns the current pagination.
func (c *Controller) Pagination() PaginationState {
	return c.store.State().Pagination
}

// Filters returns the filter text shown to the user (drafts in staged mode).
func (c *Controller) Filters() FilterState {
	return c.store.State().Filters.Clone()
}

// AppliedFilters returns the filters sent with fetches.
func (c *Controller) AppliedFilters() FilterState {
	return c.store.State().Applied.Clone()
}

// Mode returns the configured filter mode.
func (c *Controller) Mode() FilterMode {
	return c.opts.FilterMode
}

// Columns returns the configured columns.
func (c *Controller) Columns() []Column {
	return c.opts.Columns
}

// PageSizeOptions returns the configured page sizes.
func (c *Controller) PageSizeOptions() []int {
	return slices.Clone(c.opts.PageSizeOptions)
}

// ColumnWidth returns the current width of col.
func (c *Controller) ColumnWidth(col string) int {
	return c.store.State().Widths.Width(col, c.opts.MinColumnWidth)
}

// Props returns the props last passed to Receive.
func (c *Controller) Props() Props {
	return c.props
}

// TotalPageCount returns the last observed total page count.
func (c *Controller) TotalPageCount() int {
	return c.totalPageCount
}

// DisplayPageCount is the page count used for display and clamping. It is at
// least 1 so an empty result still shows "page 1 of 1".
func (c *Controller) DisplayPageCount() int {
	return max(c.totalPageCount, 1)
}

// CanPrevious reports whether a previous page exists.
func (c *Controller) CanPrevious() bool {
	return c.Pagination().PageIndex > 0
}

// CanNext reports whether a next page exists.
func (c *Controller) CanNext() bool {
	return c.Pagination().PageIndex < c.DisplayPageCount()-1
}

// PageLabel renders the 1-based position, e.g. "Page 2 of 5".
func (c *Controller) PageLabel() string {
	return fmt.Sprintf("Page %d of %d", c.Pagination().PageIndex+1, c.DisplayPageCount())
}

// GoToPage jumps to page n, clamped into the known page range, and fetches.
func (c *Controller) GoToPage(n int) bool {
	target := min(max(n, 0), c.DisplayPageCount()-1)
	c.store.SetPageIndex(target)
	c.fetch("go_to_page")
	return true
}

// NextPage advances one page. It is a no-op at the last page.
func (c *Controller) NextPage() bool {
	if !c.CanNext() {
		return false
	}
	return c.GoToPage(c.Pagination().PageIndex + 1)
}

// PreviousPage goes back one page. It is a no-op at the first page.
func (c *Controller) PreviousPage() bool {
	if !c.CanPrevious() {
		return false
	}
	return c.GoToPage(c.Pagination().PageIndex - 1)
}

// FirstPage jumps to the first page unless already there.
func (c *Controller) FirstPage() bool {
	if !c.CanPrevious() {
		return false
	}
	return c.GoToPage(0)
}

// LastPage jumps to the last known page unless already there.
func (c *Controller) LastPage() bool {
	if !c.CanNext() {
		return false
	}
	return c.GoToPage(c.DisplayPageCount() - 1)
}

// SetPageSize changes the page size, returns to the first page and fetches.
func (c *Controller) SetPageSize(size int) bool {
	c.store.SetPageSize(size)
	c.fetch("page_size")
	return true
}

// CyclePageSize moves step entries through PageSizeOptions (positive for larger,
// negative for smaller). It does nothing at either end of the list.
func (c *Controller) CyclePageSize(step int) bool {
	if step == 0 {
		return false
	}
	current := c.Pagination().PageSize
	options := c.opts.PageSizeOptions

	next, found := 0, false
	if i := slices.Index(options, current); i >= 0 {
		j := i + step
		if j >= 0 && j < len(options) {
			next, found = options[j], true
		}
	} else {
		// Current size is not an option: take the nearest option in the step direction.
		for _, o := range options {
			if (step > 0 && o > current && (!found || o < next)) ||
				(step < 0 && o < current && (!found || o > next)) {
				next, found = o, true
			}
		}
	}
	if !found {
		return false
	}
	return c.SetPageSize(next)
}

// EditFilter sets the filter text of col. In live mode a changed filter is
// applied and fetched immediately; in staged mode it stays a draft.
func (c *Controller) EditFilter(col, text string) bool {
	changed := c.store.SetFilter(col, text)
	if c.opts.FilterMode == FilterModeStaged || !changed {
		return false
	}
	c.store.ApplyFilters()
	c.fetch("filter")
	return true
}

// CommitSearch applies the staged filters, returns to the first page, fetches
// and notifies OnFiltersChange. In live mode filters are already applied and
// nothing happens.
func (c *Controller) CommitSearch() bool {
	if c.opts.FilterMode != FilterModeStaged {
		return false
	}
	c.store.ApplyFilters()
	c.store.SetPageIndex(0)
	c.fetch("commit_search")
	if c.opts.OnFiltersChange != nil {
		c.opts.OnFiltersChange(c.AppliedFilters())
	}
	return true
}

// ClearFilters removes every filter. Live mode fetches when something was
// cleared; staged mode only clears the drafts until the next commit.
func (c *Controller) ClearFilters() bool {
	changed := c.store.ReplaceFilters(FilterState{})
	if c.opts.FilterMode == FilterModeStaged || !changed {
		return false
	}
	c.store.ApplyFilters()
	c.fetch("clear_filters")
	return true
}

// Refresh fetches the current page again.
func (c *Controller) Refresh() {
	c.fetch("refresh")
}

// ResizeColumn sets the width of col, clamped to the minimum width. It never fetches.
func (c *Controller) ResizeColumn(col string, width int) int {
	width = c.resizer.Clamp(width)
	c.store.SetColumnWidth(col, width)
	return width
}

// BeginResize starts a drag on col at pointer position x.
func (c *Controller) BeginResize(col string, x int) {
	c.resizer.Begin(col, c.ColumnWidth(col), x)
}

// MoveResize updates the dragged column for pointer position x.
func (c *Controller) MoveResize(x int) bool {
	width, ok := c.resizer.Move(x)
	if !ok {
		return false
	}
	return c.store.SetColumnWidth(c.resizer.Column(), width)
}

// EndResize finishes the current drag.
func (c *Controller) EndResize() bool {
	col, width, ok := c.resizer.End()
	if !ok {
		return false
	}
	c.store.SetColumnWidth(col, width)
	c.log.Debug().Str("column", col).Int("width", width).Msg("column resized")
	return true
}

// Resizing reports whether a drag is in progress.
func (c *Controller) Resizing() bool {
	return c.resizer.Active()
}

func (c *Controller) fetch(reason string) {
	state := c.store.State()
	c.log.Debug().
		Str("reason", reason).
		Int("page_index", state.Pagination.PageIndex).
		Int("page_size", state.Pagination.PageSize).
		Int("filters", len(state.Applied)).
		Msg("requesting page")
	if c.opts.OnPaginationChange != nil {
		c.opts.OnPaginationChange(state.Pagination, state.Applied.Clone())
	}
}
