package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/rshade/pagedtable/internal/cli/pagination"
	"github.com/rshade/pagedtable/internal/config"
	"github.com/rshade/pagedtable/internal/logging"
	"github.com/rshade/pagedtable/internal/source"
	"github.com/rshade/pagedtable/internal/table"
	"github.com/rshade/pagedtable/internal/tui"
)

// Output formats accepted by --output.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// ErrInvalidOutputFormat is returned for an unknown --output value.
var ErrInvalidOutputFormat = errors.New("output must be table, json or yaml")

// FetchOptions holds the flags of the fetch command.
type FetchOptions struct {
	Page     int
	PageSize int
	Filters  []string
	Output   string
}

// PageOutput is the JSON and YAML document written by fetch.
type PageOutput struct {
	Resource   string            `json:"resource"          yaml:"resource"`
	Filters    table.FilterState `json:"filters,omitempty" yaml:"filters,omitempty"`
	Pagination pagination.Meta   `json:"pagination"        yaml:"pagination"`
	Rows       []table.Row       `json:"rows"              yaml:"rows"`
}

// NewFetchCmd creates the fetch command, which prints one page without
// taking over the terminal.
func NewFetchCmd() *cobra.Command {
	var opts FetchOptions

	cmd := &cobra.Command{
		Use:       "fetch <resource>",
		Short:     "Print one page of a resource",
		Args:      cobra.ExactArgs(1),
		ValidArgs: source.Names(),
		Example: `  # Second page of comments, 20 per page
  pagedtable fetch comments --page 2 --page-size 20

  # Filter on a column and emit YAML
  pagedtable fetch people --filter fullName=janet --output yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("page-size") {
				opts.PageSize = config.GetGlobalConfig().Table.PageSize
			}
			return RunFetch(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.Page, "page", pagination.DefaultPage, "page number (1-based)")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 0, "rows per page (default from configuration)")
	cmd.Flags().StringArrayVar(&opts.Filters, "filter", nil, "column filter as column=text (repeatable)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", OutputTable, "output format: table, json or yaml")

	return cmd
}

// RunFetch loads one page of the named resource and writes it to w.
func RunFetch(ctx context.Context, w io.Writer, name string, opts FetchOptions) error {
	log := logging.FromContext(ctx)

	output := strings.ToLower(strings.TrimSpace(opts.Output))
	if output == "" {
		output = OutputTable
	}
	if output != OutputTable && output != OutputJSON && output != OutputYAML {
		return fmt.Errorf("%w: got %q", ErrInvalidOutputFormat, opts.Output)
	}

	res, err := source.Lookup(name)
	if err != nil {
		return err
	}

	params := pagination.Params{Page: opts.Page, PageSize: opts.PageSize}
	if err = params.Validate(); err != nil {
		return err
	}

	filters, err := ParseFilters(ctx, res, opts.Filters)
	if err != nil {
		return err
	}

	loader, err := newLoader(config.GetGlobalConfig())
	if err != nil {
		return err
	}

	state := params.ToState()
	result, err := loader.Load(ctx, source.Query{Resource: res.Name, Pagination: state, Filters: filters})
	if err != nil {
		return fmt.Errorf("fetching %s page %d: %w", res.Name, params.Page, err)
	}
	log.Debug().Ctx(ctx).
		Str("resource", res.Name).
		Int("page", params.Page).
		Int("rows", len(result.Rows)).
		Int("total_pages", result.TotalPageCount).
		Msg("page fetched")

	page := PageOutput{
		Resource:   res.Name,
		Filters:    filters,
		Pagination: pagination.NewMeta(state, result.TotalPageCount, result.TotalCount),
		Rows:       result.Rows,
	}
	if page.Rows == nil {
		page.Rows = []table.Row{}
	}

	switch output {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(page)
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		if err = enc.Encode(page); err != nil {
			return err
		}
		return enc.Close()
	default:
		_, err = fmt.Fprintln(w, RenderPage(res, page))
		return err
	}
}

// RenderPage draws the page as a bordered table followed by a page footer.
func RenderPage(res source.Resource, page PageOutput) string {
	headers := make([]string, 0, len(res.Columns))
	for _, col := range res.Columns {
		headers = append(headers, col.Label)
	}

	rows := make([][]string, 0, len(page.Rows))
	for _, row := range page.Rows {
		cells := make([]string, 0, len(res.Columns))
		for _, col := range res.Columns {
			cells = append(cells, truncateCell(col.Value(row), col.DefaultWidth))
		}
		rows = append(rows, cells)
	}

	t := ltable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tui.SubtleStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return tui.TableHeaderStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...).
		Rows(rows...)

	var b strings.Builder
	if len(rows) == 0 {
		b.WriteString(tui.SubtleStyle.Render(tui.EmptyMessage))
		b.WriteString("\n")
	} else {
		b.WriteString(t.Render())
		b.WriteString("\n")
	}
	b.WriteString(pageFooter(page.Pagination))
	return b.String()
}

func pageFooter(meta pagination.Meta) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("Page %d of %d (%d rows)", meta.CurrentPage, max(meta.TotalPages, 1), meta.TotalItems)
}

func truncateCell(s string, w int) string {
	s = strings.Join(strings.Fields(s), " ")
	if w <= 0 || lipgloss.Width(s) <= w {
		return s
	}
	return ansi.Truncate(s, w, "…")
}
