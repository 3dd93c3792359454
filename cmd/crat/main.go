package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Amr-9/crat/internal/config"
	logpkg "github.com/Amr-9/crat/internal/logger"
	"github.com/Amr-9/crat/internal/ui"
	"github.com/Amr-9/crat/pkg/generator/cpu"
)

const version = "1.0"

// exitInterrupted is the conventional status for a run ended by SIGINT.
const exitInterrupted = 130

var (
	cfg         = config.NewConfig()
	logger      = zap.NewNop()
	buildLogger = logpkg.New
	console     = ui.NewConsole(os.Stdin, os.Stdout)
)

func main() {
	rootCmd := newRootCmd()
	err := rootCmd.Execute()
	_ = logger.Sync()

	switch {
	case err == nil:
	case errors.Is(err, cpu.ErrSearchCancelled):
		os.Exit(exitInterrupted)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	level, format := logpkg.FromEnv()
	cfg.LogLevel, cfg.LogFormat = level, format

	rootCmd := &cobra.Command{
		Use:   "crat",
		Short: "Vanity address generator for Solana, Bitcoin, Bitcoin SV and Ethereum",
		Long: `crat searches for keypairs whose address starts or ends with a short
pattern, using one worker per CPU core. Found keys are written to a file,
encrypted with AES-256-GCM unless --encrypt off is given.

Run without a subcommand for an interactive session.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := buildLogger(cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return fmt.Errorf("build logger: %w", err)
			}
			logger = l
			return nil
		},
		RunE: runGen,
	}

	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (console or json)")
	rootCmd.PersistentFlags().StringVar(&cfg.HistoryPath, "history", cfg.HistoryPath, "Search history directory (empty disables history)")

	rootCmd.AddCommand(newGenCmd(), newDecryptCmd(), newHistoryCmd())
	return rootCmd
}
