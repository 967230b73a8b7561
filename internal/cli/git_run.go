package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"stackit.dev/gitkit/internal/cli/common"
	gitkiterrors "stackit.dev/gitkit/internal/errors"
	"stackit.dev/gitkit/internal/git"
	"stackit.dev/gitkit/internal/runtime"
	"stackit.dev/gitkit/internal/tui"
)

// gitReport describes what a git command prints around its run
type gitReport struct {
	// repoPath is checked with IsRepository before anything else when set
	repoPath string
	op       git.Operation
	headers  []string
	lines    []string
	options  git.OptionSet
	spinner  string
	success  string
	failure  string
	// showStderr also prints stderr on success, where git writes its progress
	showStderr bool
}

type validationOutput struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// runGit prints the report, runs fn and maps the result to an exit status
func runGit(cmd *cobra.Command, ctx *runtime.Context, rep gitReport, fn func(context.Context) (git.Result, error)) error {
	splog := ctx.Splog

	if rep.repoPath != "" && !ctx.Git.IsRepository(cmd.Context(), rep.repoPath) {
		return reportValidation(cmd, ctx, gitkiterrors.NewNotRepositoryError(rep.repoPath))
	}

	if !ctx.JSON {
		for _, h := range rep.headers {
			splog.Info(h)
		}
		for _, l := range rep.lines {
			splog.Line(l)
		}
		if opts := rep.options.Filter(); len(opts) > 0 {
			data, err := opts.MarshalOrdered(rep.op.OptionKeys())
			if err == nil {
				splog.Line("Options: " + string(data))
			}
		}
	}

	var (
		res git.Result
		err error
	)
	work := func() { res, err = fn(cmd.Context()) }
	if ctx.JSON || rep.spinner == "" {
		work()
	} else {
		tui.RunWithSpinner(splog, rep.spinner, work)
	}
	if err != nil {
		return reportValidation(cmd, ctx, err)
	}

	if ctx.JSON {
		if err := common.PrintJSON(cmd, res); err != nil {
			return err
		}
		if !res.Success {
			return common.ErrReported
		}
		return nil
	}

	if res.Success {
		splog.Info(rep.success)
		if out := trimOutput(res.Output); out != "" {
			splog.Line(out)
		}
		if rep.showStderr {
			if stderr := trimOutput(res.Error); stderr != "" {
				splog.Line(stderr)
			}
		}
		return nil
	}

	splog.Error(rep.failure)
	if stderr := trimOutput(res.Error); stderr != "" {
		splog.Error(stderr)
	}
	if res.HasException() {
		splog.Error(res.Exception)
	}
	splog.Debug("exit code %d (%s)", res.ExitCode, res.Kind())
	return common.ErrReported
}

func reportValidation(cmd *cobra.Command, ctx *runtime.Context, err error) error {
	if ctx.JSON {
		if perr := common.PrintJSON(cmd, validationOutput{Error: err.Error()}); perr != nil {
			return perr
		}
	} else {
		ctx.Splog.Error(err.Error())
	}
	return common.ErrReported
}

func trimOutput(s string) string {
	return strings.TrimRight(s, "\r\n")
}
