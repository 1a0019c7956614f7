package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nvoss/eras/internal/config"
	"github.com/nvoss/eras/internal/extract"
	"github.com/nvoss/eras/internal/ingest"
	"github.com/nvoss/eras/internal/period"
	"github.com/nvoss/eras/internal/storage"
	"github.com/nvoss/eras/internal/wiki"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fill the catalog from Wikipedia",
	Long: `Fetch searches Wikipedia for each historical period, scores the
article passages it finds, and stores the interesting ones. Re-runs skip
articles that were already ingested, so fetch can be repeated to top up
the catalog.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFetch()
	},
}

func runFetch() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := setupLogging(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer store.Close()

	client := wiki.NewClient(cfg.Wikipedia.BaseURL, cfg.Wikipedia.UserAgent, cfg.Wikipedia.RequestInterval)
	scorer := extract.NewScorer(cfg.Scoring.Threshold, cfg.Scoring.MinWords, cfg.Scoring.MaxWords)
	runner := ingest.NewRunner(client, store, scorer, logger, ingest.Options{
		UnitsPerPeriod: cfg.Ingest.UnitsPerPeriod,
		SearchLimit:    cfg.Wikipedia.SearchLimit,
		Parallelism:    cfg.Ingest.Parallelism,
	})

	printStep("Fetching up to %d passages per period (%d periods)...",
		cfg.Ingest.UnitsPerPeriod, len(period.All()))

	res, err := runner.Run(ctx)
	if err != nil {
		if ctx.Err() != nil {
			printWarning("Fetch interrupted; %d passages stored so far", res.Stored)
			return nil
		}
		return err
	}

	printSuccess("Stored %d passages from %d articles", res.Stored, res.Articles)
	printStatus("Skipped", "%d articles", res.Skipped)
	if res.Failed > 0 {
		printStatus("Failed", "%d articles", res.Failed)
	}
	if res.Stored == 0 {
		fmt.Fprintln(os.Stderr, "nothing new was stored; the catalog may already be full")
	}
	return nil
}
