package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/backlogbutler/backlogbutler/internal/ado"
	"github.com/backlogbutler/backlogbutler/internal/config"
	"github.com/backlogbutler/backlogbutler/internal/logging"
	"github.com/backlogbutler/backlogbutler/internal/options"
	"github.com/backlogbutler/backlogbutler/internal/report"
)

var version = "0.1.0-dev"

// dotenvPath is the local .env file consulted after the process environment.
var dotenvPath = ".env"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Getenv, os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// run executes one invocation and returns the process exit code.
// Arguments, environment and output streams are injected so it can be
// tested without touching the real process.
func run(ctx context.Context, args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	rootCmd := buildRootCmd(getenv, stderr)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	return report.ExitCode(err)
}

// buildRootCmd creates the root command. Flag parsing is left to the
// options package so matching stays case-insensitive and lenient.
func buildRootCmd(getenv func(string) string, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:                "backlogbutler",
		Short:              "🧹 Backlog Butler: list Azure DevOps work item tags",
		Version:            version,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		Args:               cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.New(stderr, options.Parse(args).Verbose)
			logger.Debug("backlogbutler starting", "version", version)

			cfg := options.Resolve(args, settingsLookup(getenv, logger))
			return listTags(cmd.Context(), cfg, report.New(cmd.OutOrStdout()), logger)
		},
	}
}

// listTags drives help, validation, the tag request and the report.
func listTags(ctx context.Context, cfg options.Config, rep *report.Reporter, logger *slog.Logger) error {
	if cfg.ShowHelp {
		rep.Help()
		return nil
	}

	rep.Banner(cfg.Apply)

	if missing := cfg.Missing(); len(missing) > 0 {
		logger.Debug("required settings are blank", "missing", missing)
		rep.MissingSettings()
		return report.ErrMissingSettings
	}

	org := strings.TrimRight(cfg.Org, "/")
	client := ado.NewClient(org, cfg.PAT)
	client.Logger = logger

	tags, err := client.ListProjectTags(ctx, cfg.Project)
	if err != nil {
		logger.Debug("tag listing failed", "err", err)
		rep.Failure(err)
		return err
	}

	rep.Tags(org, cfg.Project, tags)
	return nil
}

// settingsLookup layers the process environment over .env and the YAML
// config file. Unreadable files are logged and skipped.
func settingsLookup(getenv func(string) string, logger *slog.Logger) options.LookupFunc {
	dotenv, err := config.ReadDotenv(dotenvPath)
	if err != nil {
		logger.Warn("ignoring .env", "err", err)
	}

	path := config.DefaultPath(getenv)
	file, err := config.Load(path)
	if err != nil {
		logger.Warn("ignoring config file", "path", path, "err", err)
	}

	return config.Chain(getenv, config.MapLookup(dotenv), file.Lookup())
}
