package recorder

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/nvoss/eras/internal/period"
	"github.com/nvoss/eras/internal/storage"
)

type fakeStore struct {
	units     map[string]storage.ContentUnit
	events    []storage.InteractionEvent
	appendErr error
}

func (f *fakeStore) GetUnit(id string) (storage.ContentUnit, error) {
	u, ok := f.units[id]
	if !ok {
		return storage.ContentUnit{}, storage.ErrNotFound
	}
	return u, nil
}

func (f *fakeStore) AppendEvent(e storage.InteractionEvent) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.events = append(f.events, e)
	return nil
}

type fakeCache struct {
	invalidated []period.Period
}

func (f *fakeCache) Invalidate(p period.Period) {
	f.invalidated = append(f.invalidated, p)
}

func newTestRecorder(store *fakeStore, cache *fakeCache) *Recorder {
	return New(store, cache, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRecordAppendsEvent(t *testing.T) {
	store := &fakeStore{units: map[string]storage.ContentUnit{
		"u1": {ID: "u1", Period: period.AncientRome},
	}}
	cache := &fakeCache{}
	r := newTestRecorder(store, cache)

	if err := r.Record("u1", true, 45); err != nil {
		t.Fatalf("Record: %v", err)
	}

	if len(store.events) != 1 {
		t.Fatalf("got %d events, want 1", len(store.events))
	}
	e := store.events[0]
	if e.ContentID != "u1" || !e.FullyRead || e.Seconds != 45 {
		t.Errorf("unexpected event %+v", e)
	}
	if e.ID == "" {
		t.Error("event id not assigned")
	}
	if e.CreatedAt.IsZero() {
		t.Error("event timestamp not assigned")
	}
}

func TestRecordInvalidatesOwningPeriod(t *testing.T) {
	store := &fakeStore{units: map[string]storage.ContentUnit{
		"u1": {ID: "u1", Period: period.Byzantine},
	}}
	cache := &fakeCache{}
	r := newTestRecorder(store, cache)

	if err := r.Record("u1", false, 3); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != period.Byzantine {
		t.Errorf("invalidated %v, want [byzantine]", cache.invalidated)
	}
}

func TestRecordValidation(t *testing.T) {
	store := &fakeStore{units: map[string]storage.ContentUnit{
		"u1": {ID: "u1", Period: period.Viking},
	}}
	r := newTestRecorder(store, &fakeCache{})

	if err := r.Record("", true, 10); err == nil {
		t.Error("expected error for empty content id")
	}
	if err := r.Record("u1", true, -1); err == nil {
		t.Error("expected error for negative seconds")
	}
	if err := r.Record("missing", true, 10); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown unit, got %v", err)
	}
	if len(store.events) != 0 {
		t.Errorf("invalid records persisted %d events", len(store.events))
	}
}

func TestPersistenceFailureIsSwallowed(t *testing.T) {
	store := &fakeStore{
		units:     map[string]storage.ContentUnit{"u1": {ID: "u1", Period: period.ColdWar}},
		appendErr: errors.New("disk full"),
	}
	cache := &fakeCache{}
	r := newTestRecorder(store, cache)

	if err := r.Record("u1", true, 20); err != nil {
		t.Fatalf("persistence failure should not surface, got %v", err)
	}
	if len(cache.invalidated) != 0 {
		t.Error("preference invalidated although the event was lost")
	}
}
