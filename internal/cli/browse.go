package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/pagedtable/internal/cli/pagination"
	"github.com/rshade/pagedtable/internal/config"
	"github.com/rshade/pagedtable/internal/logging"
	"github.com/rshade/pagedtable/internal/source"
	"github.com/rshade/pagedtable/internal/table"
	"github.com/rshade/pagedtable/internal/tui"
)

// ErrResourceRequired is returned when browse cannot show the picker.
var ErrResourceRequired = errors.New("a resource is required when not running in a terminal")

// BrowseOptions holds the flags of the browse command.
type BrowseOptions struct {
	PageSize       int
	FilterMode     string
	Filters        []string
	StrictOrdering bool
}

// NewBrowseCmd creates the browse command. Without a terminal it prints the
// first page like fetch does.
func NewBrowseCmd() *cobra.Command {
	var opts BrowseOptions

	cmd := &cobra.Command{
		Use:         "browse [resource]",
		Short:       "Browse a resource interactively",
		Args:        cobra.MaximumNArgs(1),
		ValidArgs:   source.Names(),
		Annotations: map[string]string{annotationInteractive: "true"},
		Long: `Opens an interactive table. Without a resource argument a picker lists
the available resources.

Keys: n/p next and previous page, g/G first and last page, +/- page size,
tab to pick a column, / to edit its filter, enter to search, x to clear
filters, </> to narrow or widen a column, r to reload, esc to go back.
Column borders in the header row can be dragged with the mouse.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetGlobalConfig()
			if err := applyBrowseFlags(cmd, cfg, &opts); err != nil {
				return err
			}

			name := ""
			if len(args) == 1 {
				name = args[0]
			}

			mode := tui.DetectOutputMode(false, false)
			logger.Debug().Ctx(cmd.Context()).Str("output_mode", mode.String()).Msg("browse output mode")
			if mode != tui.OutputModeInteractive {
				if name == "" {
					return ErrResourceRequired
				}
				return RunFetch(cmd.Context(), cmd.OutOrStdout(), name, FetchOptions{
					Page:     pagination.DefaultPage,
					PageSize: cfg.Table.PageSize,
					Filters:  opts.Filters,
					Output:   OutputTable,
				})
			}

			model, err := NewBrowseModel(cmd, cfg, name, opts.Filters)
			if err != nil {
				return err
			}
			program := tea.NewProgram(model,
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
				tea.WithContext(cmd.Context()),
			)
			if _, err = program.Run(); err != nil {
				return fmt.Errorf("running table UI: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.PageSize, "page-size", 0, "initial rows per page (default from configuration)")
	cmd.Flags().StringVar(&opts.FilterMode, "filter-mode", "", "live (fetch on every edit) or staged (fetch on enter)")
	cmd.Flags().StringArrayVar(&opts.Filters, "filter", nil, "initial column filter as column=text (repeatable)")
	cmd.Flags().BoolVar(&opts.StrictOrdering, "strict-ordering", false, "discard responses older than the newest request")

	return cmd
}

// applyBrowseFlags copies explicitly set flags over the loaded configuration.
func applyBrowseFlags(cmd *cobra.Command, cfg *config.Config, opts *BrowseOptions) error {
	if cmd.Flags().Changed("page-size") {
		if opts.PageSize < pagination.MinPageSize || opts.PageSize > pagination.MaxPageSize {
			return fmt.Errorf("%w: got %d", pagination.ErrInvalidPageSize, opts.PageSize)
		}
		cfg.Table.PageSize = opts.PageSize
	}
	if cmd.Flags().Changed("filter-mode") {
		if _, err := table.ParseFilterMode(opts.FilterMode); err != nil {
			return err
		}
		cfg.Table.FilterMode = opts.FilterMode
	}
	if cmd.Flags().Changed("strict-ordering") {
		cfg.Table.StrictOrdering = opts.StrictOrdering
	}
	return nil
}

// NewBrowseModel builds the app model for browse. When name is set the table
// for that resource opens directly with filters applied; otherwise the
// picker is shown first.
func NewBrowseModel(cmd *cobra.Command, cfg *config.Config, name string, filterExprs []string) (tui.AppModel, error) {
	ctx := cmd.Context()

	loader, err := newLoader(cfg)
	if err != nil {
		return tui.AppModel{}, err
	}

	var (
		initial source.Resource
		filters table.FilterState
	)
	if name != "" {
		if initial, err = source.Lookup(name); err != nil {
			return tui.AppModel{}, err
		}
		if filters, err = ParseFilters(ctx, initial, filterExprs); err != nil {
			return tui.AppModel{}, err
		}
	}

	tuiLogger := logging.FromContext(ctx)
	factory := func(res source.Resource) tui.TableModel {
		opts := tui.TableOptions{
			Resource:        res,
			Loader:          loader,
			PageSize:        cfg.Table.PageSize,
			PageSizeOptions: cfg.Table.PageSizeOptions,
			FilterMode:      cfg.FilterMode(),
			MinColumnWidth:  cfg.Table.MinColumnWidth,
			StrictOrdering:  cfg.Table.StrictOrdering,
			Logger:          tuiLogger,
		}
		if res.Name == initial.Name {
			opts.InitialFilters = filters
		}
		logger.Info().Ctx(ctx).
			Str("resource", res.Name).
			Str("filter_mode", string(opts.FilterMode)).
			Bool("strict_ordering", opts.StrictOrdering).
			Msg("opening table")
		return tui.NewTableModel(ctx, opts)
	}

	if name == "" {
		return tui.NewAppModel(source.Catalog(), factory), nil
	}
	return tui.NewAppModelAt(source.Catalog(), initial, factory), nil
}
