package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/rshade/pagedtable/internal/config"
	"github.com/rshade/pagedtable/internal/export"
	"github.com/rshade/pagedtable/internal/source"
	"github.com/rshade/pagedtable/internal/table"
)

// ExportOptions holds the flags of the export command.
type ExportOptions struct {
	PageSize    int
	Concurrency int
	Filters     []string
	OutputFile  string
	Quiet       bool
}

// NewExportCmd creates the export command, which writes every row of a
// resource as JSON Lines.
func NewExportCmd() *cobra.Command {
	var opts ExportOptions

	cmd := &cobra.Command{
		Use:       "export <resource>",
		Short:     "Write every row of a resource as JSON Lines",
		Args:      cobra.ExactArgs(1),
		ValidArgs: source.Names(),
		Example: `  # Export all comments matching a filter
  pagedtable export comments --filter email=biz -f comments.jsonl

  # Larger pages, more pages in flight
  pagedtable export posts --page-size 50 --concurrency 8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.PageSize, "page-size", export.DefaultPageSize, "rows requested per page")
	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", export.DefaultConcurrency, "pages loaded at once")
	cmd.Flags().StringArrayVar(&opts.Filters, "filter", nil, "column filter as column=text (repeatable)")
	cmd.Flags().StringVarP(&opts.OutputFile, "file", "f", "", "write to this file instead of stdout")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "do not report progress")

	return cmd
}

func runExport(cmd *cobra.Command, name string, opts ExportOptions) (err error) { //nolint:nonamedreturns // Close error is reported.
	ctx := cmd.Context()

	res, err := source.Lookup(name)
	if err != nil {
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

	progress := cmd.ErrOrStderr()
	exporter, err := export.New(loader, export.Options{
		PageSize:    opts.PageSize,
		Concurrency: opts.Concurrency,
		OnProgress: func(s export.Snapshot) {
			if !opts.Quiet {
				_, _ = fmt.Fprintf(progress, "\rpage %d/%d (%.0f%%, ~%s left)",
					s.Pages, s.TotalPages, s.PercentComplete, s.Remaining.Round(time.Second))
			}
		},
	})
	if err != nil {
		return err
	}

	var out io.Writer = cmd.OutOrStdout()
	if opts.OutputFile != "" {
		f, createErr := os.Create(opts.OutputFile)
		if createErr != nil {
			return fmt.Errorf("creating %s: %w", opts.OutputFile, createErr)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = closeErr
			}
		}()
		out = f
	}

	w := bufio.NewWriter(out)
	enc := json.NewEncoder(w)
	summary, err := exporter.Run(ctx, res.Name, filters, func(row table.Row) error {
		return enc.Encode(row)
	})
	if flushErr := w.Flush(); err == nil {
		err = flushErr
	}
	if !opts.Quiet {
		_, _ = fmt.Fprintln(progress)
	}
	if err != nil {
		return fmt.Errorf("exporting %s: %w", res.Name, err)
	}

	logger.Info().Ctx(ctx).
		Str("resource", summary.Resource).
		Int("pages", summary.Pages).
		Int("rows", summary.Rows).
		Dur("duration", summary.Duration).
		Msg("export finished")
	if !opts.Quiet {
		_, _ = fmt.Fprintf(progress, "Exported %s rows from %s pages in %s\n",
			humanize.Comma(int64(summary.Rows)), humanize.Comma(int64(summary.Pages)),
			summary.Duration.Round(time.Millisecond))
	}
	return nil
}
