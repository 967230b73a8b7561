package cli

import (
	"context"

	"github.com/spf13/cobra"

	"stackit.dev/gitkit/internal/cli/common"
	"stackit.dev/gitkit/internal/git"
	"stackit.dev/gitkit/internal/runtime"
)

// newGitPushCmd creates the git:push command
func newGitPushCmd() *cobra.Command {
	var opts git.PushOptions

	cmd := &cobra.Command{
		Use:   "git:push <path>",
		Short: "Push commits to a remote repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			return common.Run(cmd, func(ctx *runtime.Context) error {
				return runGit(cmd, ctx, gitReport{
					op:         git.OpPush,
					repoPath:   path,
					headers:    []string{"Pushing from repository: " + path},
					options:    opts.OptionSet(),
					spinner:    "Pushing...",
					success:    "Push completed successfully!",
					failure:    "Failed to push to remote.",
					showStderr: true,
				}, func(c context.Context) (git.Result, error) {
					return ctx.Git.Push(c, path, opts)
				})
			})
		},
	}

	cmd.Flags().StringVar(&opts.Remote, "remote", "", "Remote to push to")
	cmd.Flags().StringVar(&opts.Branch, "branch", "", "Branch to push")
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Force the push")
	cmd.Flags().BoolVar(&opts.Tags, "tags", false, "Push all tags")

	return cmd
}
