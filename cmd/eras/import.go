package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvoss/eras/internal/config"
	"github.com/nvoss/eras/internal/extract"
	"github.com/nvoss/eras/internal/ingest"
	"github.com/nvoss/eras/internal/period"
	"github.com/nvoss/eras/internal/storage"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a local document into the catalog",
	Long: `Import reads a local text, HTML, or PDF file, runs it through the
same scoring as fetched articles, and stores the surviving passages under
the given period.

Examples:
  eras import notes.txt --period ancient-rome
  eras import chapter.pdf --period viking --title "The Great Heathen Army"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		periodSlug, _ := cmd.Flags().GetString("period")
		title, _ := cmd.Flags().GetString("title")

		if periodSlug == "" {
			return fmt.Errorf("--period is required (e.g. --period ancient-rome)")
		}
		p, err := period.Parse(periodSlug)
		if err != nil {
			return err
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		store, err := storage.Open(cfg.Storage.DataDir)
		if err != nil {
			return fmt.Errorf("opening storage: %w", err)
		}
		defer store.Close()

		scorer := extract.NewScorer(cfg.Scoring.Threshold, cfg.Scoring.MinWords, cfg.Scoring.MaxWords)
		importer := ingest.NewImporter(store, scorer)

		stored, err := importer.ImportFile(args[0], p, title)
		if err != nil {
			return err
		}
		printSuccess("Stored %d passages under %s", stored, p.Label())
		return nil
	},
}

func init() {
	importCmd.Flags().String("period", "", "period slug to file the document under (required)")
	importCmd.Flags().String("title", "", "title for the stored passages (default: file name)")
}
