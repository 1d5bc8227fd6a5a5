package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/rshade/pagedtable/internal/source"
	"github.com/rshade/pagedtable/internal/tui"
)

// ResourceInfo is the JSON shape of one catalog entry.
type ResourceInfo struct {
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Backend     string   `json:"backend"`
	Columns     []string `json:"columns"`
}

// NewResourcesCmd creates the resources command.
func NewResourcesCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "resources",
		Short: "List the resources that can be browsed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if asJSON {
				return writeResourcesJSON(cmd.OutOrStdout(), source.Catalog())
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), RenderResources(source.Catalog()))
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the catalog as JSON")
	return cmd
}

// RenderResources draws the catalog as a table.
func RenderResources(resources []source.Resource) string {
	rows := make([][]string, 0, len(resources))
	for _, res := range resources {
		rows = append(rows, []string{
			res.Name, res.Title, string(res.Backend), strings.Join(res.ColumnIDs(), ", "),
		})
	}

	return ltable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tui.SubtleStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return tui.TableHeaderStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("RESOURCE", "TITLE", "BACKEND", "COLUMNS").
		Rows(rows...).
		Render()
}

func writeResourcesJSON(w io.Writer, resources []source.Resource) error {
	out := make([]ResourceInfo, 0, len(resources))
	for _, res := range resources {
		out = append(out, ResourceInfo{
			Name:        res.Name,
			Title:       res.Title,
			Description: res.Description,
			Backend:     string(res.Backend),
			Columns:     res.ColumnIDs(),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
