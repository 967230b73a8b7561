package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"stackit.dev/gitkit/internal/cli/common"
	"stackit.dev/gitkit/internal/runtime"
)

// newConfigShowCmd creates the config:show command
func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config:show",
		Short: "Print the effective configuration",
		Long: `Print the effective configuration as TOML, after defaults are applied.

Tokens are printed as written, so ${VAR} references are not expanded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return common.Run(cmd, func(ctx *runtime.Context) error {
				if ctx.JSON {
					return common.PrintJSON(cmd, ctx.Config)
				}
				out, err := ctx.Config.EncodeTOML()
				if err != nil {
					return err
				}
				ctx.Splog.Line(strings.TrimRight(out, "\n"))
				return nil
			})
		},
	}
}
