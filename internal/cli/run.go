package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"bookstore/internal/config"
	"bookstore/internal/engine"
	"bookstore/internal/store"
)

// invalidLine is the single reserved output line for any rejected
// command. No further detail crosses the transport; the structured
// cause goes to the log instead.
const invalidLine = "Invalid"

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Database string
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the bookstore command interpreter",
		Long: `Start the bookstore command interpreter.

Opens the SQLite database (creating it and seeding the root account on
first run), then reads one command per input line until EOF or
quit/exit. Each command prints its result, or the single line
"Invalid" when rejected.

Example:
  bookstore run --db ./bookstore.db
  echo "su root sjtu" | bookstore run --db /tmp/shop.db --verbose`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInterpreter(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (defaults to $BOOKSTORE_DB)")

	return cmd
}

func runInterpreter(opts *RunOptions, cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load configuration", err)
	}

	// Flags take precedence over environment.
	if opts.Database != "" {
		cfg.DatabasePath = opts.Database
	}
	if opts.Verbose {
		cfg.Verbose = true
	}

	logLevel := slog.LevelInfo
	if cfg.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))

	slog.Info("opening database", "path", cfg.DatabasePath)
	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	// Use the command's context if available (for testing).
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := st.SeedRoot(ctx, cfg.RootPassword); err != nil {
		return WrapExitError(ExitCommandError, "failed to seed root account", err)
	}

	eng := engine.New(st)
	out := cmd.OutOrStdout()

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		output, err := eng.Execute(ctx, scanner.Text())
		if errors.Is(err, engine.ErrQuit) {
			// Terminate immediately; no further flushing guarantees.
			return nil
		}
		if err != nil {
			fmt.Fprintln(out, invalidLine)
			continue
		}
		fmt.Fprint(out, output)
	}
	if err := scanner.Err(); err != nil {
		return WrapExitError(ExitFailure, "failed to read input", err)
	}

	slog.Info("input exhausted, shutting down")
	return nil
}

// Execute runs the root command and returns its process exit code.
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return GetExitCode(err)
	}
	return ExitSuccess
}
