// Package actions provides the logic behind gitkit commands that do more than
// run a single git operation.
//
// Actions accept runtime.Context, which provides the git service, the MCP registry
// and Splog, and report through Splog.
package actions
