// Package storage provides SQLite-based persistence for recorded runs.
// A run is the seed, canvas and per-tick input needed to re-simulate a
// play-through exactly. Uses the pure-Go modernc.org/sqlite driver to
// avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/core"
)

var (
	// ErrRunNotFound is returned when no run matches an id.
	ErrRunNotFound = errors.New("storage: run not found")
	// ErrAmbiguousRun is returned when an id prefix matches several runs.
	ErrAmbiguousRun = errors.New("storage: ambiguous run id")
)

// Store manages the SQLite database connection for the run log.
type Store struct {
	db *sql.DB
}

// RunSummary describes a stored run without its frames.
type RunSummary struct {
	ID         string
	GameID     string
	Seed       int64
	CanvasW    float64
	CanvasH    float64
	TickRate   int
	Ticks      int
	Sessions   int // Sessions started during the run
	FinalScore int // Score when the run was stopped
	CreatedAt  time.Time
}

// Reload is a configuration change applied before frame Tick.
type Reload struct {
	Tick   int                 `yaml:"tick"`
	Config config.JumperConfig `yaml:"config"`
}

// Run is a complete recording.
type Run struct {
	RunSummary
	Config  config.JumperConfig // Configuration at the start of the run
	Reloads []Reload
	Frames  []core.Frame
}

// runConfig is the stored form of a run's configuration history.
type runConfig struct {
	Initial config.JumperConfig `yaml:"initial"`
	Reloads []Reload            `yaml:"reloads,omitempty"`
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			canvas_w REAL NOT NULL,
			canvas_h REAL NOT NULL,
			tick_rate INTEGER NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			sessions INTEGER NOT NULL DEFAULT 0,
			final_score INTEGER NOT NULL DEFAULT 0,
			config TEXT NOT NULL,
			frames BLOB NOT NULL,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_game_id ON runs(game_id, created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun stores a run. An empty ID is filled with a fresh UUID and a zero
// CreatedAt with the current time; both are written back to run.
func (s *Store) SaveRun(run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	run.Ticks = len(run.Frames)

	frames, err := yaml.Marshal(run.Frames)
	if err != nil {
		return fmt.Errorf("storage: cannot encode frames: %w", err)
	}
	cfg, err := yaml.Marshal(runConfig{Initial: run.Config, Reloads: run.Reloads})
	if err != nil {
		return fmt.Errorf("storage: cannot encode config: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO runs
		 (id, game_id, seed, canvas_w, canvas_h, tick_rate, ticks, sessions, final_score, config, frames, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.GameID,
		run.Seed,
		run.CanvasW,
		run.CanvasH,
		run.TickRate,
		run.Ticks,
		run.Sessions,
		run.FinalScore,
		string(cfg),
		frames,
		run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save run: %w", err)
	}
	return nil
}

// Run loads a run by id or unique id prefix.
func (s *Store) Run(id string) (*Run, error) {
	if id == "" {
		return nil, ErrRunNotFound
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, seed, canvas_w, canvas_h, tick_rate, ticks, sessions, final_score, created_at, config, frames
		 FROM runs
		 WHERE id = ? OR id LIKE ? || '%'
		 ORDER BY id = ? DESC
		 LIMIT 2`,
		id, id, id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var run Run
		var cfg string
		var frames []byte
		var createdAt any
		if err := rows.Scan(
			&run.ID,
			&run.GameID,
			&run.Seed,
			&run.CanvasW,
			&run.CanvasH,
			&run.TickRate,
			&run.Ticks,
			&run.Sessions,
			&run.FinalScore,
			&createdAt,
			&cfg,
			&frames,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		run.CreatedAt = parseTime(createdAt)

		var rc runConfig
		if err := yaml.Unmarshal([]byte(cfg), &rc); err != nil {
			return nil, fmt.Errorf("storage: cannot decode config of run %s: %w", run.ID, err)
		}
		run.Config, run.Reloads = rc.Initial, rc.Reloads

		if err := yaml.Unmarshal(frames, &run.Frames); err != nil {
			return nil, fmt.Errorf("storage: cannot decode frames of run %s: %w", run.ID, err)
		}
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	switch {
	case len(runs) == 0:
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	case runs[0].ID == id || len(runs) == 1:
		return runs[0], nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousRun, id)
	}
}

// ListRuns returns the most recent runs, newest first. An empty gameID
// lists runs of every game.
func (s *Store) ListRuns(gameID string, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, seed, canvas_w, canvas_h, tick_rate, ticks, sessions, final_score, created_at
		 FROM runs
		 WHERE ? = '' OR game_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.GameID,
			&r.Seed,
			&r.CanvasW,
			&r.CanvasH,
			&r.TickRate,
			&r.Ticks,
			&r.Sessions,
			&r.FinalScore,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// DeleteRun removes a run by exact id.
func (s *Store) DeleteRun(id string) error {
	res, err := s.db.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot count deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}

// PruneRuns keeps the newest keep runs of a game and deletes the rest.
// Returns the number of deleted runs.
func (s *Store) PruneRuns(gameID string, keep int) (int64, error) {
	res, err := s.db.Exec(
		`DELETE FROM runs
		 WHERE game_id = ? AND id NOT IN (
			SELECT id FROM runs WHERE game_id = ?
			ORDER BY created_at DESC, rowid DESC
			LIMIT ?
		 )`,
		gameID, gameID, keep,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prune runs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count deleted rows: %w", err)
	}
	return n, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
