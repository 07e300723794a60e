package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

const setupUsage = "Usage: valyu setup <api-key>"

func (a *app) newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup <api-key>",
		Short: "Save your API key to ~/.valyu/config.json",
		Long: `Save your Valyu API key to the config file so later commands can use it.

Other fields already present in the file are preserved.
Get your key at https://platform.valyu.ai`,
		DisableFlagParsing: true,
		RunE:               a.runSetup,
	}
}

func (a *app) runSetup(cmd *cobra.Command, args []string) error {
	key := arg(args, 0)
	if key == "" {
		// Reported as an error envelope, unlike the other commands' plain usage lines.
		return errors.New(setupUsage)
	}
	a.secrets = append(a.secrets, key)

	client, err := a.newClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	result, err := client.SaveAPIKey(key)
	if err != nil {
		return fmt.Errorf("Failed to save API key: %w", err)
	}
	return outputAsJSON(a.stdout, result)
}
