package cli

import (
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/rshade/pagedtable/internal/cache"
	"github.com/rshade/pagedtable/internal/config"
	"github.com/rshade/pagedtable/internal/tui"
)

// NewCacheInfoCmd creates the cache info command.
func NewCacheInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show where responses are cached and how much is stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openCache(config.GetGlobalConfig())
			if err != nil {
				return err
			}
			if !store.Enabled() {
				cmd.Println(tui.WarningStyle.Render("File cache disabled"))
				return nil
			}

			count, err := store.Count()
			if err != nil {
				return err
			}
			size, err := store.Size()
			if err != nil {
				return err
			}

			cmd.Printf("%s %s\n", tui.LabelStyle.Render("Directory:"), store.Directory())
			cmd.Printf("%s %s\n", tui.LabelStyle.Render("TTL:      "), cache.FormatDuration(store.TTL()))
			cmd.Printf("%s %s\n", tui.LabelStyle.Render("Entries:  "), humanize.Comma(int64(count)))
			cmd.Printf("%s %s\n", tui.LabelStyle.Render("Size:     "), humanize.Bytes(uint64(max(size, 0))))
			return nil
		},
	}
}

// NewCacheClearCmd creates the cache clear command.
func NewCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached response",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openCache(config.GetGlobalConfig())
			if err != nil {
				return err
			}
			if !store.Enabled() {
				cmd.Println(tui.WarningStyle.Render("File cache disabled"))
				return nil
			}
			removed, err := store.Clear()
			if err != nil {
				return err
			}
			logger.Info().Ctx(cmd.Context()).Int("removed", removed).Msg("cache cleared")
			cmd.Printf("Removed %s cached responses\n", humanize.Comma(int64(removed)))
			return nil
		},
	}
}

// NewCachePruneCmd creates the cache prune command.
func NewCachePruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove expired or unreadable cached responses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openCache(config.GetGlobalConfig())
			if err != nil {
				return err
			}
			if !store.Enabled() {
				cmd.Println(tui.WarningStyle.Render("File cache disabled"))
				return nil
			}
			removed, err := store.CleanupExpired()
			if err != nil {
				return err
			}
			logger.Info().Ctx(cmd.Context()).Int("removed", removed).Msg("cache pruned")
			cmd.Printf("Removed %s expired responses\n", humanize.Comma(int64(removed)))
			return nil
		},
	}
}
