package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rshade/pagedtable/internal/logging"
	"github.com/rshade/pagedtable/internal/source"
	"github.com/rshade/pagedtable/internal/table"
)

// Filter parsing errors.
var (
	ErrInvalidFilter = errors.New("filter must have the form column=text")
	ErrUnknownColumn = errors.New("unknown column")
)

// ParseFilters turns "column=text" expressions into a FilterState for res.
//
// All expressions are validated before any is applied: an expression without
// "=", with an empty column, or naming a column res does not have fails the
// whole set. Empty expressions are skipped and a later expression for the
// same column wins. Empty text clears the column.
func ParseFilters(ctx context.Context, res source.Resource, exprs []string) (table.FilterState, error) {
	log := logging.FromContext(ctx)

	filters := table.FilterState{}
	for _, expr := range exprs {
		if strings.TrimSpace(expr) == "" {
			continue
		}
		col, text, ok := strings.Cut(expr, "=")
		col = strings.TrimSpace(col)
		if !ok || col == "" {
			log.Warn().Ctx(ctx).
				Str("operation", "parse_filters").
				Str("filter", expr).
				Msg("invalid filter expression")
			return nil, fmt.Errorf("%w: %q", ErrInvalidFilter, expr)
		}
		if !res.HasColumn(col) {
			return nil, fmt.Errorf("%w %q for %s (columns: %s)",
				ErrUnknownColumn, col, res.Name, strings.Join(res.ColumnIDs(), ", "))
		}
		filters = filters.With(col, text)
	}

	log.Debug().Ctx(ctx).
		Str("operation", "parse_filters").
		Str("resource", res.Name).
		Int("filters", len(filters)).
		Msg("parsed filters")
	return filters, nil
}
