// Package common provides shared helper functions for CLI commands.
package common

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"stackit.dev/gitkit/internal/runtime"
)

// ErrReported means the failure was already printed and the process should exit 1 quietly
var ErrReported = errors.New("command failed")

// Persistent flag names shared by every command
const (
	FlagConfig  = "config"
	FlagTimeout = "timeout"
	FlagJSON    = "json"
	FlagVerbose = "verbose"
)

// AddPersistentFlags registers the global flags on the root command
func AddPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String(FlagConfig, "", "Path to the config file (default $GITKIT_CONFIG or ~/.config/gitkit/config.toml)")
	cmd.PersistentFlags().Duration(FlagTimeout, 0, "Timeout for each git process, e.g. 90s (default from config, 5m)")
	cmd.PersistentFlags().Bool(FlagJSON, false, "Print results as JSON")
	cmd.PersistentFlags().BoolP(FlagVerbose, "v", false, "Print debug output, including the git commands that run")
}

// Options reads the global flags of cmd
func Options(cmd *cobra.Command) runtime.Options {
	flags := cmd.Flags()
	configPath, _ := flags.GetString(FlagConfig)
	timeout, _ := flags.GetDuration(FlagTimeout)
	jsonOut, _ := flags.GetBool(FlagJSON)
	verbose, _ := flags.GetBool(FlagVerbose)
	return runtime.Options{
		ConfigPath: configPath,
		Timeout:    timeout,
		JSON:       jsonOut,
		Verbose:    verbose,
		Writer:     cmd.OutOrStdout(),
	}
}

// Run is a helper that provides a runtime context to a command's execution function
func Run(cmd *cobra.Command, fn func(ctx *runtime.Context) error) error {
	ctx, err := runtime.Load(Options(cmd))
	if err != nil {
		return err
	}
	defer func() { _ = ctx.Close() }()
	return fn(ctx)
}

// PrintJSON writes v as indented JSON to the command's output
func PrintJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
