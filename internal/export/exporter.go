package export

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/pagedtable/internal/logging"
	"github.com/rshade/pagedtable/internal/source"
	"github.com/rshade/pagedtable/internal/table"
)

// Limits and defaults.
const (
	DefaultPageSize    = 100
	MinPageSize        = 1
	MaxPageSize        = 1000
	DefaultConcurrency = 4
	MaxConcurrency     = 16
)

// Export errors.
var (
	ErrInvalidPageSize    = fmt.Errorf("export page size must be between %d and %d", MinPageSize, MaxPageSize)
	ErrInvalidConcurrency = fmt.Errorf("export concurrency must be between 1 and %d", MaxConcurrency)
	ErrNilEmit            = errors.New("export emit callback cannot be nil")
)

// EmitFunc receives every exported row in collection order.
type EmitFunc func(row table.Row) error

// ProgressFunc is called after each page is loaded.
type ProgressFunc func(s Snapshot)

// Options configures an Exporter.
type Options struct {
	// PageSize is the number of rows requested per page.
	PageSize int
	// Concurrency is the number of pages loaded at once, which is also the
	// batch size.
	Concurrency int
	// OnProgress is optional. Calls are serialized.
	OnProgress ProgressFunc
}

// Summary describes a finished export.
type Summary struct {
	Resource string
	Pages    int
	Rows     int
	Duration time.Duration
}

// Exporter copies whole collections out of a Loader.
type Exporter struct {
	loader source.Loader
	opts   Options

	mu sync.Mutex
}

// New validates opts and returns an Exporter. Zero values select the defaults.
func New(loader source.Loader, opts Options) (*Exporter, error) {
	if opts.PageSize == 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Concurrency == 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.PageSize < MinPageSize || opts.PageSize > MaxPageSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPageSize, opts.PageSize)
	}
	if opts.Concurrency < 1 || opts.Concurrency > MaxConcurrency {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidConcurrency, opts.Concurrency)
	}
	return &Exporter{loader: loader, opts: opts}, nil
}

// Run loads every page of resource under filters and passes each row to
// emit. The first page determines the page count; later pages are loaded in
// batches of Concurrency pages. Processing stops at the first error.
func (e *Exporter) Run(ctx context.Context, resource string, filters table.FilterState, emit EmitFunc) (Summary, error) {
	if emit == nil {
		return Summary{}, ErrNilEmit
	}
	log := logging.FromContext(ctx)
	start := time.Now()

	first, err := e.load(ctx, resource, filters, 0)
	if err != nil {
		return Summary{}, err
	}
	totalPages := max(first.TotalPageCount, 1)
	progress := NewProgress(totalPages)

	summary := Summary{Resource: resource}
	flush := func(results []source.Result) error {
		for _, res := range results {
			for _, row := range res.Rows {
				if emitErr := emit(row); emitErr != nil {
					return emitErr
				}
			}
			summary.Pages++
			summary.Rows += len(res.Rows)
		}
		return nil
	}

	e.report(progress, len(first.Rows))
	if err = flush([]source.Result{first}); err != nil {
		return summary, err
	}

	for _, b := range Batches(1, totalPages, e.opts.Concurrency) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return summary, ctxErr
		}

		results := make([]source.Result, b[1]-b[0])
		g, gctx := errgroup.WithContext(ctx)
		for i := range results {
			index := b[0] + i
			g.Go(func() error {
				res, loadErr := e.load(gctx, resource, filters, index)
				if loadErr != nil {
					return loadErr
				}
				results[i] = res
				e.report(progress, len(res.Rows))
				return nil
			})
		}
		if err = g.Wait(); err != nil {
			return summary, err
		}
		if err = flush(results); err != nil {
			return summary, err
		}

		log.Debug().
			Str("resource", resource).
			Int("from_page", b[0]).
			Int("to_page", b[1]).
			Int("rows", summary.Rows).
			Msg("export batch done")
	}

	summary.Duration = time.Since(start)
	return summary, nil
}

func (e *Exporter) load(ctx context.Context, resource string, filters table.FilterState, index int) (source.Result, error) {
	res, err := e.loader.Load(ctx, source.Query{
		Resource:   resource,
		Pagination: table.PaginationState{PageIndex: index, PageSize: e.opts.PageSize},
		Filters:    filters,
	})
	if err != nil {
		return source.Result{}, fmt.Errorf("page %d failed: %w", index+1, err)
	}
	return res, nil
}

func (e *Exporter) report(p *Progress, rows int) {
	p.AddPage(rows)
	if e.opts.OnProgress != nil {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.opts.OnProgress(p.Snapshot())
	}
}

// Batches splits the page indexes [from, to) into consecutive [start, end)
// ranges of at most size pages.
func Batches(from, to, size int) [][2]int {
	if size < 1 || to <= from {
		return nil
	}
	out := make([][2]int, 0, (to-from+size-1)/size)
	for start := from; start < to; start += size {
		out = append(out, [2]int{start, min(start+size, to)})
	}
	return out
}
