// Package git runs git operations through the git binary.
//
// It turns typed option structs into argument vectors, runs them without a shell under a
// timeout and normalizes what happened into a Result:
//   - Building: BuildClone, BuildFetch, BuildPull, BuildCommit, BuildPush, BuildStatus
//   - Running: Runner and ExecRunner
//   - Normalizing: Normalize and Result.Kind / Result.Err
//   - Service: the façade that checks repositories first and ties the pieces together
//
// This package should be the only place where git processes are started.
package git
