package cli

import (
	"context"

	"github.com/spf13/cobra"

	"stackit.dev/gitkit/internal/cli/common"
	"stackit.dev/gitkit/internal/git"
	"stackit.dev/gitkit/internal/runtime"
)

// newGitFetchCmd creates the git:fetch command
func newGitFetchCmd() *cobra.Command {
	var opts git.FetchOptions

	cmd := &cobra.Command{
		Use:   "git:fetch <path>",
		Short: "Fetch from a git repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			return common.Run(cmd, func(ctx *runtime.Context) error {
				return runGit(cmd, ctx, gitReport{
					op:         git.OpFetch,
					repoPath:   path,
					headers:    []string{"Fetching from repository: " + path},
					options:    opts.OptionSet(),
					spinner:    "Fetching...",
					success:    "Fetch completed successfully!",
					failure:    "Failed to fetch from repository.",
					showStderr: true,
				}, func(c context.Context) (git.Result, error) {
					return ctx.Git.Fetch(c, path, opts)
				})
			})
		},
	}

	cmd.Flags().StringVar(&opts.Remote, "remote", "", "Remote to fetch from")
	cmd.Flags().StringVar(&opts.Branch, "branch", "", "Branch to fetch")
	cmd.Flags().BoolVar(&opts.Prune, "prune", false, "Remove remote-tracking references that no longer exist on remote")
	cmd.Flags().BoolVar(&opts.All, "all", false, "Fetch all remotes")

	return cmd
}
