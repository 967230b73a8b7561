package cli

import (
	"context"

	"github.com/spf13/cobra"

	"stackit.dev/gitkit/internal/cli/common"
	"stackit.dev/gitkit/internal/git"
	"stackit.dev/gitkit/internal/runtime"
)

// newGitCommitCmd creates the git:commit command
func newGitCommitCmd() *cobra.Command {
	var opts git.CommitOptions

	cmd := &cobra.Command{
		Use:   "git:commit <path> <message>",
		Short: "Create a commit in a git repository",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, message := args[0], args[1]
			return common.Run(cmd, func(ctx *runtime.Context) error {
				return runGit(cmd, ctx, gitReport{
					op:         git.OpCommit,
					repoPath:   path,
					headers:    []string{"Committing changes in repository: " + path},
					lines:      []string{"Message: " + message},
					options:    opts.OptionSet(),
					success:    "Commit created successfully!",
					failure:    "Failed to create commit.",
					showStderr: true,
				}, func(c context.Context) (git.Result, error) {
					return ctx.Git.Commit(c, path, message, opts)
				})
			})
		},
	}

	cmd.Flags().BoolVar(&opts.All, "all", false, "Stage all modified and deleted files")
	cmd.Flags().BoolVar(&opts.Amend, "amend", false, "Amend the previous commit")
	cmd.Flags().BoolVar(&opts.NoVerify, "no-verify", false, "Bypass pre-commit and commit-msg hooks")
	cmd.Flags().StringVar(&opts.Author, "author", "", "Override the commit author")

	return cmd
}
