package main

import (
	valyumcp "github.com/hyperengineering/valyu/mcp"
	"github.com/spf13/cobra"
)

func (a *app) newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for coding agent integration",
		Long: `Start a Model Context Protocol (MCP) server over stdio.

The search, answer, contents and deepresearch commands become the tools
valyu_search, valyu_answer, valyu_contents, valyu_deepresearch_create and
valyu_deepresearch_status. Tool results are the same JSON envelopes the
commands print.

Example agent configuration:

  {
    "mcpServers": {
      "valyu": {
        "command": "valyu",
        "args": ["mcp"],
        "env": {"VALYU_API_KEY": "..."}
      }
    }
  }`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.newClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			return valyumcp.NewServer(client).Run()
		},
	}
}
