package cli

import (
	"context"

	"github.com/spf13/cobra"

	"stackit.dev/gitkit/internal/cli/common"
	"stackit.dev/gitkit/internal/git"
	"stackit.dev/gitkit/internal/runtime"
)

// newGitCloneCmd creates the git:clone command
func newGitCloneCmd() *cobra.Command {
	var opts git.CloneOptions

	cmd := &cobra.Command{
		Use:   "git:clone <repository> <destination>",
		Short: "Clone a git repository",
		Long: `Clone a git repository into destination.

The destination is resolved to an absolute path and git runs in its parent directory.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repository, destination := args[0], args[1]
			return common.Run(cmd, func(ctx *runtime.Context) error {
				return runGit(cmd, ctx, gitReport{
					headers: []string{
						"Cloning repository: " + repository,
						"Destination: " + destination,
					},
					op:      git.OpClone,
					options: opts.OptionSet(),
					spinner: "Cloning...",
					success: "Repository cloned successfully!",
					failure: "Failed to clone repository.",
				}, func(c context.Context) (git.Result, error) {
					return ctx.Git.Clone(c, repository, destination, opts)
				})
			})
		},
	}

	cmd.Flags().StringVar(&opts.Branch, "branch", "", "Branch to clone")
	cmd.Flags().IntVar(&opts.Depth, "depth", 0, "Create a shallow clone with a history truncated to the specified number of commits")
	cmd.Flags().BoolVar(&opts.SingleBranch, "single-branch", false, "Clone only one branch")
	cmd.Flags().BoolVar(&opts.Recursive, "recursive", false, "Clone submodules recursively")

	return cmd
}
