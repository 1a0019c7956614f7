package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/nvoss/eras/internal/extract"
	"github.com/nvoss/eras/internal/period"
	"github.com/nvoss/eras/internal/storage"
	"github.com/nvoss/eras/internal/wiki"
)

type fakeSource struct {
	searches  map[string][]string // phrase -> titles
	articles  map[string]string   // title -> body text
	searchErr error
}

func (f *fakeSource) Search(ctx context.Context, query string, limit int) ([]string, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	titles := f.searches[query]
	if len(titles) > limit {
		titles = titles[:limit]
	}
	return titles, nil
}

func (f *fakeSource) Extract(ctx context.Context, title string) (*wiki.Article, error) {
	text, ok := f.articles[title]
	if !ok {
		return nil, wiki.ErrNoExtract
	}
	return &wiki.Article{Title: title, Text: text, URL: f.PageURL(title)}, nil
}

func (f *fakeSource) PageURL(title string) string {
	return "https://example.org/wiki/" + strings.ReplaceAll(title, " ", "_")
}

type fakeStore struct {
	units     []storage.ContentUnit
	sources   map[string]bool
	inserted  map[string]bool // SourceURL + seq, mirrors the unique index
	insertErr error
	// missSources makes HasSource always miss, as when another run stores
	// an article between our check and our insert.
	missSources bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sources:  make(map[string]bool),
		inserted: make(map[string]bool),
	}
}

func (f *fakeStore) HasSource(sourceURL string) (bool, error) {
	if f.missSources {
		return false, nil
	}
	return f.sources[sourceURL], nil
}

func (f *fakeStore) InsertUnit(u storage.ContentUnit) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	key := fmt.Sprintf("%s#%d", u.SourceURL, u.Seq)
	if f.inserted[key] {
		return storage.ErrDuplicateSource
	}
	f.inserted[key] = true
	f.units = append(f.units, u)
	f.sources[u.SourceURL] = true
	return nil
}

// interestingBody builds text that clears the score threshold and the word
// window: keyword-dense opening, neutral filler to 120 words.
func interestingBody() string {
	body := "The soldier discovered a hidden tomb beneath the ruins, and the greatest mystery of the age was finally revealed."
	filler := make([]string, 110)
	for i := range filler {
		filler[i] = fmt.Sprintf("word%d", i)
	}
	return body + " " + strings.Join(filler, " ")
}

func testRunner(source Source, store Store, opts Options) *Runner {
	scorer := extract.NewScorer(2.0, 30, 800)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRunner(source, store, scorer, logger, opts)
}

func phrasesFor(p period.Period) []string { return p.SearchPhrases() }

func TestRunStoresSurvivingPassages(t *testing.T) {
	source := &fakeSource{
		searches: map[string][]string{},
		articles: map[string]string{"Tomb of the Soldier": interestingBody()},
	}
	// Surface the article under one phrase of one period.
	source.searches[phrasesFor(period.AncientRome)[0]] = []string{"Tomb of the Soldier"}

	store := newFakeStore()
	runner := testRunner(source, store, Options{UnitsPerPeriod: 10, SearchLimit: 50, Parallelism: 2})

	res, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Stored != 1 || len(store.units) != 1 {
		t.Fatalf("stored %d units, want 1 (result %+v)", len(store.units), res)
	}

	u := store.units[0]
	if u.Period != period.AncientRome {
		t.Errorf("period = %q, want ancient-rome", u.Period)
	}
	if u.ID == "" || u.SourceURL == "" || u.WordCount == 0 || u.Score < 2.0 {
		t.Errorf("incomplete unit %+v", u)
	}
}

func TestRunSkipsUnusableTitles(t *testing.T) {
	source := &fakeSource{
		searches: map[string][]string{},
		articles: map[string]string{
			"Caesar (disambiguation)": interestingBody(),
			"List of Roman emperors":  interestingBody(),
		},
	}
	source.searches[phrasesFor(period.AncientRome)[0]] = []string{
		"Caesar (disambiguation)",
		"List of Roman emperors",
	}

	store := newFakeStore()
	runner := testRunner(source, store, Options{UnitsPerPeriod: 10, SearchLimit: 50, Parallelism: 1})

	res, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(store.units) != 0 {
		t.Errorf("stored %d units from unusable titles", len(store.units))
	}
	if res.Skipped < 2 {
		t.Errorf("skipped = %d, want at least 2", res.Skipped)
	}
}

func TestRunDeduplicatesBySource(t *testing.T) {
	title := "Tomb of the Soldier"
	source := &fakeSource{
		searches: map[string][]string{},
		articles: map[string]string{title: interestingBody()},
	}
	// The same article comes back for two different phrases.
	source.searches[phrasesFor(period.AncientRome)[0]] = []string{title}
	source.searches[phrasesFor(period.AncientRome)[1]] = []string{title}

	store := newFakeStore()
	runner := testRunner(source, store, Options{UnitsPerPeriod: 10, SearchLimit: 50, Parallelism: 1})

	if _, err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(store.units) != 1 {
		t.Errorf("stored %d units, want 1 after dedup", len(store.units))
	}
}

func TestRunDuplicateInsertIsSkippedNotFailed(t *testing.T) {
	title := "Tomb of the Soldier"
	source := &fakeSource{
		searches: map[string][]string{},
		articles: map[string]string{title: interestingBody()},
	}
	source.searches[phrasesFor(period.AncientRome)[0]] = []string{title}
	source.searches[phrasesFor(period.AncientRome)[1]] = []string{title}

	// HasSource never sees the first insert, so only the store's uniqueness
	// guard stands between the two attempts.
	store := newFakeStore()
	store.missSources = true
	runner := testRunner(source, store, Options{UnitsPerPeriod: 10, SearchLimit: 50, Parallelism: 1})

	res, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(store.units) != 1 {
		t.Errorf("stored %d units, want 1", len(store.units))
	}
	if res.Failed != 0 {
		t.Errorf("duplicate insert counted as failure: %+v", res)
	}
	if res.Skipped == 0 {
		t.Errorf("duplicate insert not counted as skip: %+v", res)
	}
}

func TestRunHonorsPerPeriodQuota(t *testing.T) {
	source := &fakeSource{searches: map[string][]string{}, articles: map[string]string{}}
	for i := 0; i < 5; i++ {
		title := fmt.Sprintf("Discovery %d", i)
		source.articles[title] = interestingBody()
		source.searches[phrasesFor(period.Viking)[0]] = append(
			source.searches[phrasesFor(period.Viking)[0]], title)
	}

	store := newFakeStore()
	runner := testRunner(source, store, Options{UnitsPerPeriod: 2, SearchLimit: 50, Parallelism: 1})

	res, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Stored != 2 || len(store.units) != 2 {
		t.Errorf("stored %d, want exactly the quota of 2", len(store.units))
	}
}

func TestRunContinuesPastSearchFailures(t *testing.T) {
	source := &fakeSource{searchErr: errors.New("api down")}
	store := newFakeStore()
	runner := testRunner(source, store, Options{UnitsPerPeriod: 10, SearchLimit: 50, Parallelism: 3})

	res, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("search failures should not abort the run: %v", err)
	}
	if res.Stored != 0 {
		t.Errorf("stored %d units with a failing source", res.Stored)
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	source := &fakeSource{searchErr: errors.New("api down")}
	runner := testRunner(source, newFakeStore(), Options{UnitsPerPeriod: 10, SearchLimit: 50, Parallelism: 1})

	if _, err := runner.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
