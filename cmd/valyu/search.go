package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hyperengineering/valyu"
	"github.com/spf13/cobra"
)

const searchUsage = "Usage: valyu search <type> <query> [maxResults]"

func (a *app) newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <type> <query> [maxResults]",
		Short: "Search the web, news or a proprietary source preset",
		Long: `Search with one of the source presets:

  web, news, finance, paper, bio, patent, sec, economics

maxResults defaults to 10.`,
		DisableFlagParsing: true,
		RunE:               a.runSearch,
	}
}

func (a *app) runSearch(cmd *cobra.Command, args []string) error {
	searchType := strings.ToLower(arg(args, 0))
	query := arg(args, 1)
	if searchType == "" || query == "" {
		return &valyu.UsageError{Usage: searchUsage}
	}

	maxResults := valyu.DefaultMaxResults
	if raw := arg(args, 2); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid maxResults %q: must be an integer", raw)
		}
		maxResults = n
	}

	client, err := a.newClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	var result *valyu.SearchResult
	err = a.withSpinner("Searching", func() (err error) {
		result, err = client.Search(cmd.Context(), searchType, query, maxResults)
		return err
	})
	if err != nil {
		return err
	}
	return outputAsJSON(a.stdout, result)
}
