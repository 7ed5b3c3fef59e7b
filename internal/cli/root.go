// Package cli provides the command-line interface for prqlcore: a root
// command with persistent flags and a PersistentPreRunE that resolves
// config and a request-scoped logger into the command context before any
// subcommand runs.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/prqlcore/internal/cli/commands"
	"github.com/leapstack-labs/prqlcore/internal/cliconfig"
	"github.com/leapstack-labs/prqlcore/internal/diagnostic"
)

// Version information (set at build time via -ldflags).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

var cfgFile string

type loggerKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "prqlcore",
		Short:   "Operator translation and source formatting core for a PRQL-like query language",
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := cliconfig.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			sessionID := diagnostic.NewSession()
			logger := diagnostic.SessionLogger(slog.Default(), sessionID)

			ctx := cliconfig.WithConfig(cmd.Context(), cfg)
			ctx = context.WithValue(ctx, loggerKey{}, logger)
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./prqlcore.yaml)")
	root.PersistentFlags().Bool("color", true, "colorize diagnostics")

	root.AddCommand(commands.NewFmtCommand())
	root.AddCommand(commands.NewTranslateCommand())
	root.AddCommand(commands.NewOperatorsCommand())

	return root
}

// Execute runs the root command.
func Execute() error {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// LoggerFrom retrieves the session-scoped logger from a command context.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}
