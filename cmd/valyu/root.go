package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/hyperengineering/valyu"
	"github.com/spf13/cobra"
)

func init() {
	cobra.EnableCaseInsensitive = true
}

// app holds the streams and global options of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer
	debug  bool

	// secrets are scrubbed from anything written to stderr.
	secrets []string
}

// run executes the CLI with args and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := &app{stdout: stdout, stderr: stderr}
	return a.exitCode(a.execute(ctx, a.globalFlags(args)))
}

// globalFlags consumes leading options that apply to every command.
func (a *app) globalFlags(args []string) []string {
	for len(args) > 0 && args[0] == "--debug" {
		a.debug = true
		args = args[1:]
	}
	return args
}

func (a *app) execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return &valyu.UsageError{Help: true}
	}

	command := strings.ToLower(args[0])
	switch command {
	case "help", "--help", "-h":
		printUsage(a.stdout)
		return nil
	}
	if strings.HasPrefix(command, "-") {
		return &valyu.UsageError{Usage: "Unknown command: " + command, Help: true}
	}

	root := a.newRootCmd()
	root.SetArgs(append([]string{command}, args[1:]...))
	return root.ExecuteContext(ctx)
}

func (a *app) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "valyu",
		Short: "Valyu CLI - search, answers, contents and deep research",
		Long: `Valyu CLI is a thin command-line client for the Valyu API.

Every command prints a JSON envelope on stdout. Credentials come from
VALYU_API_KEY or ~/.valyu/config.json (see 'valyu setup').`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			return &valyu.UsageError{Usage: "Unknown command: " + args[0], Help: true}
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		printUsage(cmd.OutOrStdout())
	})

	root.AddCommand(
		a.newSetupCmd(),
		a.newSearchCmd(),
		a.newAnswerCmd(),
		a.newContentsCmd(),
		a.newDeepResearchCmd(),
		a.newMCPCmd(),
		newVersionCmd(),
	)
	return root
}

// newClient builds a client from the environment and the global flags.
func (a *app) newClient() (*valyu.Client, error) {
	cfg, err := valyu.ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	if a.debug {
		cfg.Debug = true
	}

	client, err := valyu.New(cfg)
	if err != nil {
		return nil, err
	}
	if key := client.APIKey(); key != "" {
		a.secrets = append(a.secrets, key)
	}
	return client, nil
}

// arg returns args[i], or "" when absent.
func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
