package main

import (
	"strings"

	"github.com/hyperengineering/valyu"
	"github.com/spf13/cobra"
)

const contentsUsage = "Usage: valyu contents <url> [--summary [instructions]] [--structured <schema>]"

func (a *app) newContentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contents <url> [--summary [instructions]] [--structured <schema>]",
		Short: "Extract clean content from a URL",
		Long: `Extract the content of a web page.

  --summary [instructions]  summarize, optionally following instructions
  --structured <json>       extract data matching a JSON schema`,
		DisableFlagParsing: true,
		RunE:               a.runContents,
	}
}

func (a *app) runContents(cmd *cobra.Command, args []string) error {
	target := arg(args, 0)
	if target == "" {
		return &valyu.UsageError{Usage: contentsUsage}
	}

	opts, err := parseContentsOptions(args[1:])
	if err != nil {
		return err
	}

	client, err := a.newClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	var result *valyu.ContentsResult
	err = a.withSpinner("Extracting", func() (err error) {
		result, err = client.Contents(cmd.Context(), []string{target}, opts)
		return err
	})
	if err != nil {
		return err
	}
	return outputAsJSON(a.stdout, result)
}

// parseContentsOptions scans the tokens after the URL.
// --summary takes the next token as instructions unless it is another option.
// A later --structured replaces any summary set before it.
func parseContentsOptions(args []string) (valyu.ContentsOptions, error) {
	var opts valyu.ContentsOptions
	for i := 0; i < len(args); i++ {
		if args[i] == "--summary" {
			if next := arg(args, i+1); next != "" && !strings.HasPrefix(next, "--") {
				opts.Summary = valyu.SummaryInstructions(next)
				i++
			} else {
				opts.Summary = valyu.SummaryDefault()
			}
		}
		if args[i] == "--structured" && arg(args, i+1) != "" {
			schema, err := parseStructured(args[i+1])
			if err != nil {
				return opts, err
			}
			opts.Summary = valyu.SummarySchema(schema)
			i++
		}
	}
	return opts, nil
}
