package main

import (
	"github.com/hyperengineering/valyu"
	"github.com/spf13/cobra"
)

const answerUsage = "Usage: valyu answer <query> [--fast] [--structured <schema>]"

func (a *app) newAnswerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "answer <query> [--fast] [--structured <schema>] [--render]",
		Short: "Ask a question and get an answer with sources",
		Long: `Ask a question and get an AI answer grounded in search results.

  --fast               lower latency, less thorough
  --structured <json>  JSON schema the answer must follow
  --render             print the answer as rendered markdown instead of JSON`,
		DisableFlagParsing: true,
		RunE:               a.runAnswer,
	}
}

func (a *app) runAnswer(cmd *cobra.Command, args []string) error {
	query := arg(args, 0)
	if query == "" {
		return &valyu.UsageError{Usage: answerUsage}
	}

	var opts valyu.AnswerOptions
	render := false
	for i := 1; i < len(args); i++ {
		if args[i] == "--fast" {
			opts.FastMode = true
		}
		if args[i] == "--render" {
			render = true
		}
		if args[i] == "--structured" && arg(args, i+1) != "" {
			schema, err := parseStructured(args[i+1])
			if err != nil {
				return err
			}
			opts.StructuredOutput = schema
			i++
		}
	}

	client, err := a.newClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	var result *valyu.AnswerResult
	err = a.withSpinner("Answering", func() (err error) {
		result, err = client.Answer(cmd.Context(), query, opts)
		return err
	})
	if err != nil {
		return err
	}
	if render {
		if text, ok := result.AnswerText(); ok {
			return renderMarkdown(a.stdout, text)
		}
	}
	return outputAsJSON(a.stdout, result)
}
