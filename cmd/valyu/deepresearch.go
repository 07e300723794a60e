package main

import (
	"github.com/hyperengineering/valyu"
	"github.com/spf13/cobra"
)

const (
	deepResearchCreateUsage = "Usage: valyu deepresearch create <query> [--model <fast|lite|heavy>] [--pdf]"
	deepResearchStatusUsage = "Usage: valyu deepresearch status <task-id>"
	deepResearchSubcommands = "Valid deepresearch subcommands: create, status"
)

func (a *app) newDeepResearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deepresearch <create|status>",
		Short: "Start and track asynchronous research tasks",
		Args:  cobra.ArbitraryArgs,
		// Reached only when no subcommand matched.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return &valyu.UsageError{Usage: deepResearchSubcommands}
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:                "create <query> [--model <fast|lite|heavy>] [--pdf]",
			Short:              "Start a deep research task",
			DisableFlagParsing: true,
			RunE:               a.runDeepResearchCreate,
		},
		&cobra.Command{
			Use:                "status <task-id> [--render]",
			Short:              "Check a deep research task",
			DisableFlagParsing: true,
			RunE:               a.runDeepResearchStatus,
		},
	)
	return cmd
}

func (a *app) runDeepResearchCreate(cmd *cobra.Command, args []string) error {
	query := arg(args, 0)
	if query == "" {
		return &valyu.UsageError{Usage: deepResearchCreateUsage}
	}

	client, err := a.newClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	var result *valyu.DeepResearchCreateResult
	err = a.withSpinner("Starting research", func() (err error) {
		result, err = client.DeepResearchCreate(cmd.Context(), query, parseDeepResearchOptions(args[1:]))
		return err
	})
	if err != nil {
		return err
	}
	return outputAsJSON(a.stdout, result)
}

// parseDeepResearchOptions scans the tokens after the query.
// Checks run in sequence on the same index, so "--model --pdf" sets both.
func parseDeepResearchOptions(args []string) valyu.DeepResearchOptions {
	var opts valyu.DeepResearchOptions
	for i := 0; i < len(args); i++ {
		if args[i] == "--model" && arg(args, i+1) != "" {
			opts.Model = args[i+1]
			i++
		}
		if args[i] == "--pdf" {
			opts.OutputFormats = []string{"markdown", "pdf"}
		}
	}
	return opts
}

func (a *app) runDeepResearchStatus(cmd *cobra.Command, args []string) error {
	taskID := arg(args, 0)
	if taskID == "" {
		return &valyu.UsageError{Usage: deepResearchStatusUsage}
	}
	render := false
	for _, tok := range args[1:] {
		if tok == "--render" {
			render = true
		}
	}

	client, err := a.newClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	var result *valyu.DeepResearchStatusResult
	err = a.withSpinner("Checking status", func() (err error) {
		result, err = client.DeepResearchStatus(cmd.Context(), taskID)
		return err
	})
	if err != nil {
		return err
	}
	if render {
		if text, ok := result.OutputText(); ok {
			return renderMarkdown(a.stdout, text)
		}
	}
	return outputAsJSON(a.stdout, result)
}
