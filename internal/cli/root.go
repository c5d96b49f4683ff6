package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
}

// NewRootCommand creates the root command for the bookstore CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "bookstore",
		Short: "Bookstore - line-command bookstore management",
		Long: "A single-process bookstore management tool: operator accounts with a\n" +
			"privilege hierarchy, a book catalog with stock and pricing, and an\n" +
			"append-only income/expenditure ledger.",
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	cmd.AddCommand(NewRunCommand(opts))

	return cmd
}
