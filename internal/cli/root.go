// Package cli implements the gitkit command line.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"stackit.dev/gitkit/internal/cli/common"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gitkit",
		Short: "Run git operations and MCP calls from one place",
		Long: `gitkit runs clone, fetch, pull, commit, push and status against working trees on disk,
and sends JSON-RPC requests to configured MCP servers.

Every git command exits 0 on success and 1 otherwise.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	common.AddPersistentFlags(rootCmd)

	rootCmd.AddCommand(newGitCloneCmd())
	rootCmd.AddCommand(newGitCommitCmd())
	rootCmd.AddCommand(newGitFetchCmd())
	rootCmd.AddCommand(newGitPullCmd())
	rootCmd.AddCommand(newGitPushCmd())
	rootCmd.AddCommand(newGitStatusCmd())
	rootCmd.AddCommand(newMCPListCmd())
	rootCmd.AddCommand(newMCPCallCmd())
	rootCmd.AddCommand(newConfigShowCmd())
	rootCmd.AddCommand(newDoctorCmd())

	return rootCmd
}
