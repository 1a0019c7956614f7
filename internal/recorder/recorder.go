// Package recorder accepts interaction feedback from the reading surfaces
// and turns it into append-only events.
package recorder

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nvoss/eras/internal/period"
	"github.com/nvoss/eras/internal/storage"
)

// Store is the write surface the recorder depends on.
type Store interface {
	GetUnit(id string) (storage.ContentUnit, error)
	AppendEvent(e storage.InteractionEvent) error
}

// Invalidator drops a cached preference so the next selection sees the new
// event. Satisfied by selection.Selector.
type Invalidator interface {
	Invalidate(p period.Period)
}

// Recorder persists interaction events. Recording is fire-and-forget from
// the caller's point of view: validation failures are returned, persistence
// failures are logged and swallowed so a reading session never breaks over
// a lost event.
type Recorder struct {
	store  Store
	cache  Invalidator
	logger *slog.Logger
}

func New(store Store, cache Invalidator, logger *slog.Logger) *Recorder {
	return &Recorder{store: store, cache: cache, logger: logger}
}

// Record appends one event for a served unit. contentID must reference an
// existing unit and seconds must be non-negative; either failing is a
// validation error for the caller to report.
func (r *Recorder) Record(contentID string, fullyRead bool, seconds int) error {
	if contentID == "" {
		return fmt.Errorf("content id is required")
	}
	if seconds < 0 {
		return fmt.Errorf("seconds must be non-negative, got %d", seconds)
	}

	unit, err := r.store.GetUnit(contentID)
	if err != nil {
		return fmt.Errorf("looking up content %s: %w", contentID, err)
	}

	event := storage.InteractionEvent{
		ID:        uuid.New().String(),
		ContentID: contentID,
		FullyRead: fullyRead,
		Seconds:   seconds,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.store.AppendEvent(event); err != nil {
		r.logger.Error("failed to persist interaction event",
			"content_id", contentID,
			"error", err)
		return nil
	}

	r.cache.Invalidate(unit.Period)
	return nil
}
