package storage

import (
	"errors"
	"time"

	"github.com/nvoss/eras/internal/period"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateSource is returned when an insert would store a passage whose
// source article position is already in the catalog. Ingestion treats it as
// "someone else got here first", not a failure.
var ErrDuplicateSource = errors.New("duplicate source")

// ContentUnit is one stored passage. Units are written once during ingestion
// and never mutated; the online system only reads them.
type ContentUnit struct {
	ID        string
	Period    period.Period
	Title     string
	Body      string
	WordCount int
	Score     float64
	SourceURL string
	// Seq is the passage's position within its source article. The store
	// enforces (SourceURL, Seq) uniqueness, which is what makes re-ingesting
	// the same article a no-op instead of a duplicate.
	Seq       int
	CreatedAt time.Time
}

// InteractionEvent records one presentation outcome. Events are append-only:
// preference aggregates are always recomputed from them, never stored as
// counters of their own.
type InteractionEvent struct {
	ID        string
	ContentID string
	FullyRead bool
	Seconds   int
	CreatedAt time.Time
}

// NeutralPreference is the preference score of a period with no recorded
// interactions. With every period at the baseline, selection is uniform.
const NeutralPreference = 0.5

// PeriodPreference is the read-derived aggregate for one period.
type PeriodPreference struct {
	Period    period.Period
	Total     int
	FullyRead int
	Score     float64
}
