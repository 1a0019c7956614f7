// Package selection picks the next passage to present, weighting periods by
// learned preference while guaranteeing every period keeps a nonzero chance.
package selection

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/nvoss/eras/internal/period"
	"github.com/nvoss/eras/internal/storage"
)

// ErrNoContent signals an empty catalog. Consumers should prompt for an
// ingestion run rather than retry.
var ErrNoContent = errors.New("no content available")

// Store is the read surface the selector depends on.
type Store interface {
	Preference(p period.Period) (storage.PeriodPreference, error)
	RandomUnitExcluding(p period.Period, excludeIDs []string) (storage.ContentUnit, error)
}

// Selector implements preference-weighted selection with a short-term
// recency window. It is safe for concurrent use; the recency window is
// shared session state, so one Selector corresponds to one reading session.
type Selector struct {
	store Store
	floor float64

	mu     sync.Mutex
	rng    *rand.Rand
	prefs  map[period.Period]storage.PeriodPreference
	recent []string // last N served unit ids, oldest first
	window int
}

// New creates a Selector. floor is the minimum selection weight any period
// can fall to; window is the recency exclusion size.
func New(store Store, floor float64, window int) *Selector {
	return &Selector{
		store:  store,
		floor:  floor,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		prefs:  make(map[period.Period]storage.PeriodPreference),
		window: window,
	}
}

// Next selects one content unit. Periods are drawn proportionally to
// max(preference, floor); within the chosen period a unit is drawn uniformly
// outside the recency window, falling back to the full period when every
// unit is recent. Periods with no units are excluded and the draw retried,
// capped at the catalog size so the call completes in bounded time.
func (s *Selector) Next() (storage.ContentUnit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	eligible := append([]period.Period(nil), period.All()...)

	for attempt := 0; attempt < len(period.All()); attempt++ {
		if len(eligible) == 0 {
			return storage.ContentUnit{}, ErrNoContent
		}

		p, err := s.drawPeriod(eligible)
		if err != nil {
			return storage.ContentUnit{}, err
		}

		unit, err := s.store.RandomUnitExcluding(p, s.recent)
		if errors.Is(err, storage.ErrNotFound) && len(s.recent) > 0 {
			// Every unit in the period may be inside the recency window;
			// immediate repetition beats serving nothing.
			unit, err = s.store.RandomUnitExcluding(p, nil)
		}
		if errors.Is(err, storage.ErrNotFound) {
			eligible = remove(eligible, p)
			continue
		}
		if err != nil {
			return storage.ContentUnit{}, fmt.Errorf("drawing unit for %s: %w", p, err)
		}

		s.remember(unit.ID)
		return unit, nil
	}

	return storage.ContentUnit{}, ErrNoContent
}

// Invalidate drops the cached preference for a period so the next draw
// recomputes it from the event log.
func (s *Selector) Invalidate(p period.Period) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.prefs, p)
}

// drawPeriod performs one weighted random draw. Callers hold s.mu.
func (s *Selector) drawPeriod(candidates []period.Period) (period.Period, error) {
	weights := make([]float64, len(candidates))
	var total float64
	for i, p := range candidates {
		pref, ok := s.prefs[p]
		if !ok {
			var err error
			pref, err = s.store.Preference(p)
			if err != nil {
				return "", fmt.Errorf("reading preference for %s: %w", p, err)
			}
			s.prefs[p] = pref
		}
		weights[i] = max(pref.Score, s.floor)
		total += weights[i]
	}

	point := s.rng.Float64() * total
	for i, w := range weights {
		point -= w
		if point <= 0 {
			return candidates[i], nil
		}
	}
	// Floating point slack: the loop can fall through when point lands on
	// the accumulated rounding error.
	return candidates[len(candidates)-1], nil
}

// remember appends an id to the recency window. Callers hold s.mu.
func (s *Selector) remember(id string) {
	if s.window <= 0 {
		return
	}
	s.recent = append(s.recent, id)
	if len(s.recent) > s.window {
		s.recent = s.recent[len(s.recent)-s.window:]
	}
}

func remove(periods []period.Period, p period.Period) []period.Period {
	out := periods[:0]
	for _, q := range periods {
		if q != p {
			out = append(out, q)
		}
	}
	return out
}
