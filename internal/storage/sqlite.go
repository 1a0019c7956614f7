package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nvoss/eras/internal/period"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store wraps a SQLite database holding content units and interaction
// events. Writes are synchronous: a unit inserted during a bulk load is
// visible to the very next selection read.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) a SQLite database in dataDir and runs pending
// migrations. Pass ":memory:" as dataDir for an in-memory database (used by
// tests).
func Open(dataDir string) (*Store, error) {
	var dsn string
	if dataDir == ":memory:" {
		dsn = ":memory:"
	} else {
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		dsn = filepath.Join(dataDir, "eras.db")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	// Limit to single connection to avoid "database is locked" errors; this
	// also serializes concurrent event appends so aggregate reads never see
	// a torn write.
	db.SetMaxOpenConns(1)

	// Set busy timeout so concurrent access waits briefly instead of failing immediately.
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting journal mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate reads embedded SQL migration files and applies any that haven't been run yet.
func (s *Store) migrate() error {
	// Ensure schema_version table exists (bootstrap).
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort by filename to guarantee ascending order.
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		version, err := parseMigrationVersion(entry.Name())
		if err != nil {
			return err
		}

		var exists int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM schema_version WHERE version = ?", version).Scan(&exists); err != nil {
			return fmt.Errorf("checking migration %d: %w", version, err)
		}
		if exists > 0 {
			continue
		}

		content, err := migrationsFS.ReadFile("migrations/" + entry.Name())
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", entry.Name(), err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("beginning transaction for migration %d: %w", version, err)
		}

		if _, err := tx.Exec(string(content)); err != nil {
			tx.Rollback()
			return fmt.Errorf("applying migration %d: %w", version, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", version); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording migration %d: %w", version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", version, err)
		}
	}

	return nil
}

func parseMigrationVersion(filename string) (int, error) {
	var version int
	if _, err := fmt.Sscanf(filename, "%d_", &version); err != nil {
		return 0, fmt.Errorf("parsing migration version from %q: %w", filename, err)
	}
	return version, nil
}

// AppliedMigrations returns the list of applied migration versions in ascending order.
func (s *Store) AppliedMigrations() ([]int, error) {
	rows, err := s.db.Query("SELECT version FROM schema_version ORDER BY version ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var versions []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

// --- Content units ---

// InsertUnit stores one passage. Inserting a passage whose (source_url, seq)
// pair already exists returns ErrDuplicateSource; the unique index is the
// authoritative dedup guard, so concurrent ingestion runs cannot race a
// HasSource check into a double write.
func (s *Store) InsertUnit(u ContentUnit) error {
	_, err := s.db.Exec(`
		INSERT INTO content_units (id, period, title, body, word_count, score, source_url, seq, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Period.String(), u.Title, u.Body, u.WordCount, u.Score, u.SourceURL, u.Seq,
		u.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: content_units.source_url") {
		return ErrDuplicateSource
	}
	return err
}

// HasSource reports whether any unit was already ingested from the given
// source article. Ingestion checks this before re-processing an article so
// re-runs are idempotent.
func (s *Store) HasSource(sourceURL string) (bool, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM content_units WHERE source_url = ?", sourceURL).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) GetUnit(id string) (ContentUnit, error) {
	row := s.db.QueryRow(`
		SELECT id, period, title, body, word_count, score, source_url, seq, created_at
		FROM content_units WHERE id = ?`, id)
	return scanUnit(row)
}

func (s *Store) UnitsForPeriod(p period.Period) ([]ContentUnit, error) {
	rows, err := s.db.Query(`
		SELECT id, period, title, body, word_count, score, source_url, seq, created_at
		FROM content_units WHERE period = ? ORDER BY created_at ASC`, p.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var units []ContentUnit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, rows.Err()
}

// RandomUnitExcluding draws one unit uniformly at random from a period,
// skipping the given ids. Returns ErrNotFound when the period has no
// eligible units; the caller decides whether to relax the exclusion.
func (s *Store) RandomUnitExcluding(p period.Period, excludeIDs []string) (ContentUnit, error) {
	query := `
		SELECT id, period, title, body, word_count, score, source_url, seq, created_at
		FROM content_units WHERE period = ?`
	args := []any{p.String()}

	if len(excludeIDs) > 0 {
		placeholders := strings.Repeat(",?", len(excludeIDs)-1)
		query += ` AND id NOT IN (?` + placeholders + `)`
		for _, id := range excludeIDs {
			args = append(args, id)
		}
	}
	query += ` ORDER BY RANDOM() LIMIT 1`

	return scanUnit(s.db.QueryRow(query, args...))
}

func (s *Store) CountUnits() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM content_units").Scan(&count)
	return count, err
}

// CountUnitsByPeriod returns unit counts keyed by period slug. Periods with
// no units are absent from the map.
func (s *Store) CountUnitsByPeriod() (map[period.Period]int, error) {
	rows, err := s.db.Query("SELECT period, COUNT(*) FROM content_units GROUP BY period")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[period.Period]int)
	for rows.Next() {
		var slug string
		var n int
		if err := rows.Scan(&slug, &n); err != nil {
			return nil, err
		}
		p, err := period.Parse(slug)
		if err != nil {
			return nil, fmt.Errorf("stored unit references %w", err)
		}
		counts[p] = n
	}
	return counts, rows.Err()
}

// --- Interaction events ---

func (s *Store) AppendEvent(e InteractionEvent) error {
	fullyRead := 0
	if e.FullyRead {
		fullyRead = 1
	}
	_, err := s.db.Exec(`
		INSERT INTO interaction_events (id, content_id, fully_read, seconds, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.ContentID, fullyRead, e.Seconds, e.CreatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

func (s *Store) EventsForPeriod(p period.Period) ([]InteractionEvent, error) {
	rows, err := s.db.Query(`
		SELECT e.id, e.content_id, e.fully_read, e.seconds, e.created_at
		FROM interaction_events e
		JOIN content_units c ON e.content_id = c.id
		WHERE c.period = ?
		ORDER BY e.created_at ASC`, p.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []InteractionEvent
	for rows.Next() {
		var e InteractionEvent
		var fullyRead int
		var createdAt string
		if err := rows.Scan(&e.ID, &e.ContentID, &fullyRead, &e.Seconds, &createdAt); err != nil {
			return nil, err
		}
		e.FullyRead = fullyRead != 0
		t, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		e.CreatedAt = t
		events = append(events, e)
	}
	return events, rows.Err()
}

func (s *Store) CountEvents() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM interaction_events").Scan(&count)
	return count, err
}

// Preference recomputes the aggregate for one period straight from the
// event log, so it can never drift from the source of truth. A period with
// no events scores the neutral baseline.
func (s *Store) Preference(p period.Period) (PeriodPreference, error) {
	var total, fullyRead int
	err := s.db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(e.fully_read), 0)
		FROM interaction_events e
		JOIN content_units c ON e.content_id = c.id
		WHERE c.period = ?`, p.String(),
	).Scan(&total, &fullyRead)
	if err != nil {
		return PeriodPreference{}, err
	}

	pref := PeriodPreference{Period: p, Total: total, FullyRead: fullyRead}
	if total == 0 {
		pref.Score = NeutralPreference
	} else {
		pref.Score = float64(fullyRead) / float64(total)
	}
	return pref, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUnit(row rowScanner) (ContentUnit, error) {
	var u ContentUnit
	var slug, createdAt string
	err := row.Scan(&u.ID, &slug, &u.Title, &u.Body, &u.WordCount, &u.Score, &u.SourceURL, &u.Seq, &createdAt)
	if err == sql.ErrNoRows {
		return ContentUnit{}, ErrNotFound
	}
	if err != nil {
		return ContentUnit{}, err
	}

	p, err := period.Parse(slug)
	if err != nil {
		return ContentUnit{}, fmt.Errorf("stored unit references %w", err)
	}
	u.Period = p

	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return ContentUnit{}, fmt.Errorf("parsing created_at: %w", err)
	}
	u.CreatedAt = t
	return u, nil
}
