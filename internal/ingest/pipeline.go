// Package ingest fills the catalog: it searches for articles period by
// period, extracts and scores passages, and stores the survivors.
package ingest

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/nvoss/eras/internal/extract"
	"github.com/nvoss/eras/internal/period"
	"github.com/nvoss/eras/internal/storage"
	"github.com/nvoss/eras/internal/wiki"
)

// Source is the article acquisition surface, satisfied by wiki.Client.
type Source interface {
	Search(ctx context.Context, query string, limit int) ([]string, error)
	Extract(ctx context.Context, title string) (*wiki.Article, error)
	PageURL(title string) string
}

// Store is the write surface the pipeline depends on.
type Store interface {
	HasSource(sourceURL string) (bool, error)
	InsertUnit(u storage.ContentUnit) error
}

// Options bounds a single ingestion run.
type Options struct {
	// UnitsPerPeriod caps how many passages this run stores per period.
	UnitsPerPeriod int
	// SearchLimit is the maximum titles requested per search phrase.
	SearchLimit int
	// Parallelism bounds how many periods are processed concurrently. All
	// periods still share the source's single rate limiter.
	Parallelism int
}

// Result aggregates one run across all periods.
type Result struct {
	Stored   int // passages written
	Articles int // articles fetched and processed
	Skipped  int // articles skipped (dedup, unusable titles, no extract)
	Failed   int // articles abandoned after fetch or insert errors
}

func (r *Result) add(o Result) {
	r.Stored += o.Stored
	r.Articles += o.Articles
	r.Skipped += o.Skipped
	r.Failed += o.Failed
}

// Runner drives ingestion across every period.
type Runner struct {
	source Source
	store  Store
	scorer *extract.Scorer
	logger *slog.Logger
	opts   Options
}

func NewRunner(source Source, store Store, scorer *extract.Scorer, logger *slog.Logger, opts Options) *Runner {
	if opts.Parallelism <= 0 {
		opts.Parallelism = 1
	}
	return &Runner{source: source, store: store, scorer: scorer, logger: logger, opts: opts}
}

// Run processes every period, a bounded number of them concurrently.
// Individual article failures are logged and skipped; only context
// cancellation aborts the run.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Parallelism)

	var mu sync.Mutex
	var total Result

	for _, p := range period.All() {
		g.Go(func() error {
			res, err := r.runPeriod(ctx, p)
			mu.Lock()
			total.add(res)
			mu.Unlock()
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return total, err
	}
	return total, nil
}

// runPeriod works through a period's search phrases until the per-period
// quota is met or the phrases run out.
func (r *Runner) runPeriod(ctx context.Context, p period.Period) (Result, error) {
	var res Result
	logger := r.logger.With("period", p.String())

	for _, phrase := range p.SearchPhrases() {
		if res.Stored >= r.opts.UnitsPerPeriod {
			break
		}

		titles, err := r.source.Search(ctx, phrase, r.opts.SearchLimit)
		if err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			logger.Warn("search failed", "phrase", phrase, "error", err)
			continue
		}

		for _, title := range titles {
			if res.Stored >= r.opts.UnitsPerPeriod {
				break
			}
			if skipTitle(title) {
				res.Skipped++
				continue
			}

			seen, err := r.store.HasSource(r.source.PageURL(title))
			if err != nil {
				logger.Warn("dedup check failed", "title", title, "error", err)
				res.Failed++
				continue
			}
			if seen {
				res.Skipped++
				continue
			}

			stored, err := r.processArticle(ctx, p, title, &res)
			if err != nil {
				if ctx.Err() != nil {
					return res, ctx.Err()
				}
				logger.Warn("article failed", "title", title, "error", err)
				res.Failed++
				continue
			}
			if stored > 0 {
				logger.Debug("stored passages", "title", title, "count", stored)
			}
		}
	}

	logger.Info("period complete",
		"stored", res.Stored,
		"articles", res.Articles,
		"skipped", res.Skipped,
		"failed", res.Failed)
	return res, nil
}

// processArticle fetches one article and stores its surviving passages.
func (r *Runner) processArticle(ctx context.Context, p period.Period, title string, res *Result) (int, error) {
	article, err := r.source.Extract(ctx, title)
	if errors.Is(err, wiki.ErrNoExtract) {
		res.Skipped++
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	res.Articles++

	stored := 0
	now := time.Now().UTC()
	for i, sc := range r.scorer.Filter(extract.Extract(article.Title, article.Text)) {
		if res.Stored >= r.opts.UnitsPerPeriod {
			break
		}
		unit := storage.ContentUnit{
			ID:        uuid.New().String(),
			Period:    p,
			Title:     sc.Title,
			Body:      sc.Body,
			WordCount: extract.WordCount(sc.Body),
			Score:     sc.Score,
			SourceURL: article.URL,
			Seq:       i,
			CreatedAt: now,
		}
		if err := r.store.InsertUnit(unit); err != nil {
			// Another worker, or a concurrent run, stored this article
			// between our HasSource check and the insert.
			if errors.Is(err, storage.ErrDuplicateSource) {
				res.Skipped++
				return stored, nil
			}
			return stored, err
		}
		stored++
		res.Stored++
	}
	return stored, nil
}

// skipTitle filters out pages that never yield narrative passages.
func skipTitle(title string) bool {
	lower := strings.ToLower(title)
	return strings.Contains(lower, "disambiguation") || strings.HasPrefix(title, "List of")
}
