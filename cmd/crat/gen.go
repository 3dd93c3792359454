package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Amr-9/crat/internal/metrics"
	"github.com/Amr-9/crat/internal/ui"
	"github.com/Amr-9/crat/pkg/generator"
	"github.com/Amr-9/crat/pkg/generator/chains"
	"github.com/Amr-9/crat/pkg/generator/cpu"
	"github.com/Amr-9/crat/pkg/history"
	"github.com/Amr-9/crat/pkg/secret"
	"github.com/Amr-9/crat/pkg/sink"
)

func newGenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen [pattern]",
		Short: "Search for a vanity address",
		Example: `  crat gen ace
  crat gen --chain btc --char 1abc
  crat gen --chain eth --pos end --case on dead`,
		Args: cobra.MaximumNArgs(1),
		RunE: runGen,
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfg.Pattern, "char", "c", "", "Pattern to search for (1-4 symbols)")
	flags.StringVarP(&cfg.Position, "pos", "p", cfg.Position, "Pattern position: start or end")
	flags.StringVar(&cfg.Case, "case", cfg.Case, "Case-sensitive matching: on or off")
	flags.StringVar(&cfg.Chain, "chain", cfg.Chain, "Chain: solana, bitcoin, bsv or ethereum")
	flags.StringVar(&cfg.Encrypt, "encrypt", cfg.Encrypt, "Encrypt the result file: on or off")
	flags.IntVarP(&cfg.Workers, "workers", "w", cfg.Workers, "Number of worker goroutines")
	flags.Uint64Var(&cfg.ReportInterval, "report-interval", cfg.ReportInterval, "Attempts between worker status reports")
	flags.StringVarP(&cfg.OutputDir, "out", "o", cfg.OutputDir, "Directory for result files")
	flags.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")
	flags.BoolVarP(&cfg.AssumeYes, "yes", "y", false, "Skip the reveal and continue prompts")
	return cmd
}

func runGen(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		cfg.Pattern = args[0]
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	interactive := cfg.Pattern == ""

	m := metrics.New()
	if cfg.MetricsAddr != "" {
		ctx, stop := context.WithCancel(cmd.Context())
		defer stop()
		go m.Serve(ctx, cfg.MetricsAddr, logger)
	}

	opts := cfg.PoolOptions()
	opts.Logger = logger
	opts.Observer = m
	pool := cpu.NewPool(chains.New, opts)

	if err := raisePriority(); err != nil {
		logger.Debug("process priority unchanged", zap.Error(err))
	}

	if interactive {
		console.ClearScreen()
		console.Banner(version)
	}
	free, err := ui.FreeSpace(cfg.OutputDir)
	if err != nil {
		logger.Debug("free space unknown", zap.String("dir", cfg.OutputDir), zap.Error(err))
	}
	console.EngineInfo(pool.Workers(), ui.CPUModel(), cfg.OutputDir, free)

	for {
		req, err := nextRequest(cmd, interactive)
		if err != nil {
			return err
		}

		err = search(cmd.Context(), pool, req)
		if !interactive {
			return err
		}
		if err != nil && !errors.Is(err, cpu.ErrSearchCancelled) {
			console.Error(err)
		}
		if cfg.AssumeYes || !console.AskToContinue() {
			return nil
		}
	}
}

// nextRequest builds the request from flags, or asks for it in an
// interactive session.
func nextRequest(cmd *cobra.Command, interactive bool) (generator.SearchRequest, error) {
	if !interactive {
		return cfg.Request()
	}
	req, err := console.PromptSearch(cfg)
	if err != nil {
		return generator.SearchRequest{}, err
	}
	if !cmd.Flags().Changed("encrypt") {
		if err := console.PromptEncrypt(cfg); err != nil {
			return generator.SearchRequest{}, err
		}
	}
	return req, nil
}

func search(parent context.Context, pool *cpu.Pool, req generator.SearchRequest) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	difficulty := generator.Difficulty(req)
	console.SearchInfo(req, difficulty)

	events, err := pool.Start(ctx, req)
	if err != nil {
		return err
	}

	progress := ui.NewProgress(os.Stderr, difficulty)
	for ev := range events {
		switch ev.Kind {
		case generator.EventProgress:
			progress.Update(ev.TotalAttempts)
		case generator.EventCompleted:
			progress.Done()
			return finish(req, *ev.Result)
		case generator.EventFailed:
			progress.Done()
			if errors.Is(ev.Err, cpu.ErrSearchCancelled) {
				console.Cancelled(pool.Stats())
			}
			return ev.Err
		}
	}
	return nil
}

// finish writes the result file, records the search and shows the outcome.
func finish(req generator.SearchRequest, res generator.Result) error {
	saved, err := sink.New(cfg.OutputDir, secret.New()).Save(res, req.Pattern, cfg.EncryptEnabled())
	if err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	console.Success(res, saved)

	if cfg.HistoryPath != "" {
		if err := record(req, res, saved); err != nil {
			logger.Warn("history not updated", zap.Error(err))
		}
	}

	if !saved.Encrypted && !cfg.AssumeYes {
		console.Reveal(res)
	}
	return nil
}

func record(req generator.SearchRequest, res generator.Result, saved sink.Saved) error {
	store, err := history.Open(cfg.HistoryPath)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Put(history.NewRecord(req, res, saved.Path, saved.Encrypted))
	return err
}
