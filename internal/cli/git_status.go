package cli

import (
	"context"

	"github.com/spf13/cobra"

	"stackit.dev/gitkit/internal/cli/common"
	"stackit.dev/gitkit/internal/git"
	"stackit.dev/gitkit/internal/runtime"
)

// newGitStatusCmd creates the git:status command
func newGitStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "git:status <path>",
		Short: "Show the porcelain status of a git repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			return common.Run(cmd, func(ctx *runtime.Context) error {
				return runGit(cmd, ctx, gitReport{
					op:       git.OpStatus,
					repoPath: path,
					headers:  []string{"Checking status of repository: " + path},
					success:  "Status retrieved successfully!",
					failure:  "Failed to retrieve status.",
				}, func(c context.Context) (git.Result, error) {
					return ctx.Git.Status(c, path)
				})
			})
		},
	}
}
