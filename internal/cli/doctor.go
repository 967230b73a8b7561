package cli

import (
	"github.com/spf13/cobra"

	"stackit.dev/gitkit/internal/actions"
	"stackit.dev/gitkit/internal/cli/common"
	"stackit.dev/gitkit/internal/runtime"
)

// newDoctorCmd creates the doctor command
func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor [path]",
		Short: "Diagnose common issues with your gitkit setup",
		Long: `Run diagnostic checks on your gitkit environment.

The doctor command checks:
  - Environment: the git binary and the command timeout
  - Configuration: the config file in use
  - Repository: whether [path] is a git working tree, when given
  - MCP transports: whether every configured server answers`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Run(cmd, func(ctx *runtime.Context) error {
				var opts actions.DoctorOptions
				if len(args) == 1 {
					opts.Path = args[0]
				}
				return actions.DoctorAction(cmd.Context(), ctx, opts)
			})
		},
	}
}
