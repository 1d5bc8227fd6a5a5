package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/rshade/pagedtable/pkg/version"
)

// NewVersionCmd creates the version command. ver is the version given to
// NewRootCmd and is validated as a semantic version.
func NewVersionCmd(ver string) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.GetInfo()
			if ver != "" {
				info.Version = ver
			}
			if !version.IsValid(info.Version) {
				logger.Warn().Ctx(cmd.Context()).Str("version", info.Version).Msg("version is not valid semver")
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			cmd.Println(info.String())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print build information as JSON")
	return cmd
}
