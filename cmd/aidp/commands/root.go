// Package commands implements the CLI commands for aidp.
package commands

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/aidp/internal/config"
	"github.com/thoreinstein/aidp/internal/errors"
	"github.com/thoreinstein/aidp/internal/logging"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// Shorthand flags matching the classic single-command interface:
// aidp --init, aidp --list, aidp --alias ALIAS TARGET.
var (
	rootInit  bool
	rootList  bool
	rootAlias string
)

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")

	rootCmd.Flags().BoolVarP(&rootInit, "init", "i", false,
		"shorthand for 'aidp init'")
	rootCmd.Flags().BoolVarP(&rootList, "list", "l", false,
		"shorthand for 'aidp list'")
	rootCmd.Flags().StringVarP(&rootAlias, "alias", "a", "",
		"shorthand for 'aidp alias add ALIAS TARGET' (target is the first positional argument)")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	// Capture load errors for later reporting
	_, configLoadErr = config.Load("")
}

var rootCmd = &cobra.Command{
	Use:   "aidp [profile-or-alias] [extra args...]",
	Short: "Profile manager and launcher for the aider AI pair-programming tool",
	Long: `aidp keeps named aider configuration files ("profiles") in one
directory, maps short aliases to them, and launches aider with the
resolved profile.

Profiles live in ~/.config/aider-profiles as plain *.yml files that
aider itself interprets; aidp never parses them. A bare profile or
alias name runs aider with that profile, and everything after the name
is handed to aider untouched.`,
	Example: `  # Seed the profile directory with examples
  aidp init

  # See what's available
  aidp list

  # Register a short alias
  aidp alias add c3 claude-3-sonnet

  # Launch aider with a profile, passing files through
  aidp c3 main.py utils.py

  See Also: aidp run, aidp doctor, aidp config`,
	Args: cobra.ArbitraryArgs,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		if configLoadErr != nil {
			return errors.NewUserError(configLoadErr, "Check ~/.config/aidp/config.yaml")
		}
		return nil
	},
	RunE: runRoot,
}

// runRoot handles the shorthand flags; with none set it prints usage.
func runRoot(cmd *cobra.Command, args []string) error {
	switch {
	case rootInit:
		return runInit(cmd, args)
	case rootList:
		return runList(cmd, args)
	case rootAlias != "":
		if len(args) != 1 {
			return errors.NewUserError(
				errors.Newf("--alias needs a target profile name"),
				"Usage: aidp --alias ALIAS TARGET")
		}
		return addAlias(rootAlias, args[0])
	default:
		return cmd.Help()
	}
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("AIDP_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var primaryHandler slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		primaryHandler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	default:
		primaryHandler = logging.NewHandler(cmd.ErrOrStderr(), opts)
	}

	handlers := []slog.Handler{primaryHandler}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		// File output uses JSON format
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: level,
		}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// normalizeArgs rewrites a bare profile/alias invocation into a run
// invocation: `aidp c3 main.py` becomes `aidp run c3 main.py`. Flags and
// known subcommand names pass through untouched.
func normalizeArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}
	first := args[0]
	if strings.HasPrefix(first, "-") {
		return args
	}
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == first {
			return args
		}
		for _, a := range cmd.Aliases {
			if a == first {
				return args
			}
		}
	}
	if first == "help" || first == "completion" {
		return args
	}
	return append([]string{"run"}, args...)
}

// Execute runs the root command.
func Execute() error {
	rootCmd.SetArgs(normalizeArgs(os.Args[1:]))
	return rootCmd.Execute()
}
