package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"stackit.dev/gitkit/internal/cli/common"
	"stackit.dev/gitkit/internal/runtime"
)

type transportInfo struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// newMCPListCmd creates the mcp:list command
func newMCPListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp:list",
		Short: "List the configured MCP transports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return common.Run(cmd, func(ctx *runtime.Context) error {
				infos := make([]transportInfo, 0)
				for _, name := range ctx.MCP.Names() {
					t, err := ctx.MCP.Transport(name)
					if err != nil {
						return err
					}
					infos = append(infos, transportInfo{Name: name, URL: t.URL()})
				}

				if ctx.JSON {
					return common.PrintJSON(cmd, infos)
				}
				if len(infos) == 0 {
					ctx.Splog.Comment("No MCP transports configured.")
					return nil
				}
				for _, info := range infos {
					ctx.Splog.Line(fmt.Sprintf("%s  %s", info.Name, info.URL))
				}
				return nil
			})
		},
	}
}

// newMCPCallCmd creates the mcp:call command
func newMCPCallCmd() *cobra.Command {
	var params string

	cmd := &cobra.Command{
		Use:   "mcp:call <transport> <method>",
		Short: "Send a JSON-RPC request to an MCP server",
		Long: `Send a JSON-RPC request to a configured MCP server and print the result.

Examples:
  gitkit mcp:call context tools/list
  gitkit mcp:call context tools/call --params '{"name":"search","arguments":{"q":"fetch"}}'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, method := args[0], args[1]

			var decoded map[string]any
			if params != "" {
				if err := json.Unmarshal([]byte(params), &decoded); err != nil {
					return fmt.Errorf("--params must be a JSON object: %w", err)
				}
			}

			return common.Run(cmd, func(ctx *runtime.Context) error {
				t, err := ctx.MCP.Transport(name)
				if err != nil {
					ctx.Splog.Error(err.Error())
					return common.ErrReported
				}

				result, err := t.Send(cmd.Context(), method, decoded)
				if err != nil {
					ctx.Splog.Error(err.Error())
					return common.ErrReported
				}

				var pretty any
				if err := json.Unmarshal(result, &pretty); err != nil {
					pretty = string(result)
				}
				if ctx.JSON {
					return common.PrintJSON(cmd, pretty)
				}
				ctx.Splog.Info("Request [%s] sent to MCP server [%s].", method, name)
				data, err := json.MarshalIndent(pretty, "", "  ")
				if err != nil {
					return err
				}
				ctx.Splog.Line(string(data))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&params, "params", "", "Request params as a JSON object")

	return cmd
}
