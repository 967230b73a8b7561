package cli

import (
	"context"

	"github.com/spf13/cobra"

	"stackit.dev/gitkit/internal/cli/common"
	"stackit.dev/gitkit/internal/git"
	"stackit.dev/gitkit/internal/runtime"
)

// newGitPullCmd creates the git:pull command
func newGitPullCmd() *cobra.Command {
	var opts git.PullOptions

	cmd := &cobra.Command{
		Use:   "git:pull <path>",
		Short: "Pull changes from a remote repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			return common.Run(cmd, func(ctx *runtime.Context) error {
				return runGit(cmd, ctx, gitReport{
					op:         git.OpPull,
					repoPath:   path,
					headers:    []string{"Pulling from repository: " + path},
					options:    opts.OptionSet(),
					spinner:    "Pulling...",
					success:    "Pull completed successfully!",
					failure:    "Failed to pull from repository.",
					showStderr: true,
				}, func(c context.Context) (git.Result, error) {
					return ctx.Git.Pull(c, path, opts)
				})
			})
		},
	}

	cmd.Flags().StringVar(&opts.Remote, "remote", "", "Remote to pull from")
	cmd.Flags().StringVar(&opts.Branch, "branch", "", "Branch to pull")
	cmd.Flags().BoolVar(&opts.Rebase, "rebase", false, "Rebase the current branch on top of the upstream branch")
	cmd.Flags().BoolVar(&opts.NoCommit, "no-commit", false, "Do not commit the merge")
	cmd.Flags().BoolVar(&opts.FFOnly, "ff-only", false, "Only fast-forward")

	return cmd
}
