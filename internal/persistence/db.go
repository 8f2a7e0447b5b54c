// Package persistence provides the SQLite results ledger for episode runs.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/antcolony/internal/engine"
)

// MemoryPath opens a private in-memory ledger.
const MemoryPath = ":memory:"

// DB wraps a SQLite connection for episode results.
type DB struct {
	conn *sqlx.DB
}

// EpisodeRow is one stored episode summary.
type EpisodeRow struct {
	ID            string  `db:"id" json:"id"`
	RunID         string  `db:"run_id" json:"run_id"`
	Episode       int     `db:"episode" json:"episode"`
	Team          string  `db:"team" json:"team"`
	Seed          int64   `db:"seed" json:"seed"`
	Steps         int     `db:"steps" json:"steps"`
	TotalReward   float64 `db:"total_reward" json:"total_reward"`
	FinalStorage  int     `db:"final_storage" json:"final_storage"`
	FoodpilesDone bool    `db:"foodpiles_done" json:"foodpiles_done"`
	Collections   int     `db:"collections" json:"collections"`
	Deposits      int     `db:"deposits" json:"deposits"`
	Transfers     int     `db:"transfers" json:"transfers"`
	DurationMS    int64   `db:"duration_ms" json:"duration_ms"`
	FinishedAt    string  `db:"finished_at" json:"finished_at"`
}

// TeamRow is the per-team average over a run's stored episodes.
type TeamRow struct {
	Team       string  `db:"team" json:"team"`
	Episodes   int     `db:"episodes" json:"episodes"`
	AvgSteps   float64 `db:"avg_steps" json:"avg_steps"`
	AvgReward  float64 `db:"avg_reward" json:"avg_reward"`
	AvgStorage float64 `db:"avg_storage" json:"avg_storage"`
	AvgCollect float64 `db:"avg_collections" json:"avg_collections"`
	AvgDeposit float64 `db:"avg_deposits" json:"avg_deposits"`
}

// Open opens or creates a SQLite database at the given path. MemoryPath (or
// an empty path) gives a ledger that vanishes with the process.
func Open(path string) (*DB, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	if path == "" || path == MemoryPath {
		dsn = MemoryPath
	}
	conn, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// Every connection to :memory: is its own database.
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS episodes (
		id TEXT PRIMARY KEY,
		run_id TEXT NOT NULL,
		episode INTEGER NOT NULL,
		team TEXT NOT NULL,
		seed INTEGER NOT NULL,
		steps INTEGER NOT NULL,
		total_reward REAL NOT NULL,
		final_storage INTEGER NOT NULL,
		foodpiles_done INTEGER NOT NULL,
		collections INTEGER NOT NULL,
		deposits INTEGER NOT NULL,
		transfers INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		finished_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS storage_curve (
		episode_id TEXT NOT NULL,
		tick INTEGER NOT NULL,
		storage INTEGER NOT NULL,
		PRIMARY KEY (episode_id, tick)
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		episode_id TEXT NOT NULL,
		tick INTEGER NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS run_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_episodes_run ON episodes(run_id, team);
	CREATE INDEX IF NOT EXISTS idx_events_episode ON events(episode_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveEpisodes writes summaries together with their storage curves and
// events in one transaction.
func (db *DB) SaveEpisodes(sums []engine.EpisodeSummary) error {
	if len(sums) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	epStmt, err := tx.Preparex(`INSERT OR REPLACE INTO episodes
		(id, run_id, episode, team, seed, steps, total_reward, final_storage,
		 foodpiles_done, collections, deposits, transfers, duration_ms, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer epStmt.Close()

	curveStmt, err := tx.Preparex(
		"INSERT OR REPLACE INTO storage_curve (episode_id, tick, storage) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer curveStmt.Close()

	evStmt, err := tx.Preparex(
		"INSERT INTO events (episode_id, tick, description, category) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer evStmt.Close()

	for _, s := range sums {
		id := s.ID.String()
		done := 0
		if s.FoodpilesDone {
			done = 1
		}
		_, err := epStmt.Exec(
			id, s.RunID.String(), s.Episode, s.Team, s.Seed, s.Steps,
			s.TotalReward, s.FinalStorage, done,
			s.Collections, s.Deposits, s.Transfers,
			s.Duration.Milliseconds(), s.FinishedAt.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("insert episode %s: %w", id, err)
		}
		for i, v := range s.StorageCurve {
			if _, err := curveStmt.Exec(id, i+1, v); err != nil {
				return fmt.Errorf("insert storage curve %s: %w", id, err)
			}
		}
		for _, e := range s.Events {
			if _, err := evStmt.Exec(id, e.Tick, e.Description, e.Category); err != nil {
				return fmt.Errorf("insert event %s: %w", id, err)
			}
		}
	}

	return tx.Commit()
}

// SaveEpisode writes a single summary.
func (db *DB) SaveEpisode(sum engine.EpisodeSummary) error {
	return db.SaveEpisodes([]engine.EpisodeSummary{sum})
}

// SaveRun records the run's id, start time and settings in run_meta.
func (db *DB) SaveRun(runID uuid.UUID, started time.Time, settings any) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := db.SaveMeta("run_id", runID.String()); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}
	if err := db.SaveMeta("started_at", started.UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}
	if err := db.SaveMeta("settings", string(raw)); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}
	slog.Info("run recorded", "run", runID)
	return nil
}

// SaveMeta stores a key-value pair in run metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO run_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM run_meta WHERE key = ?", key)
	return value, err
}

// RecentEpisodes returns the most recently finished N episodes, newest first.
func (db *DB) RecentEpisodes(limit int) ([]EpisodeRow, error) {
	var rows []EpisodeRow
	err := db.conn.Select(&rows, `SELECT id, run_id, episode, team, seed, steps,
		total_reward, final_storage, foodpiles_done, collections, deposits,
		transfers, duration_ms, finished_at
		FROM episodes ORDER BY rowid DESC LIMIT ?`,
		limit,
	)
	return rows, err
}

// TeamStats averages a run's episodes per team, ordered by team name.
func (db *DB) TeamStats(runID uuid.UUID) ([]TeamRow, error) {
	var rows []TeamRow
	err := db.conn.Select(&rows, `SELECT team,
		COUNT(*) AS episodes,
		AVG(steps) AS avg_steps,
		AVG(total_reward) AS avg_reward,
		AVG(final_storage) AS avg_storage,
		AVG(collections) AS avg_collections,
		AVG(deposits) AS avg_deposits
		FROM episodes WHERE run_id = ?
		GROUP BY team ORDER BY team`,
		runID.String(),
	)
	return rows, err
}

// StorageCurve returns a team's storage after each tick of a run, summed over
// its episodes and divided by the episode count. Ticks no episode reached are
// absent; an episode that ended early adds nothing to later ticks.
func (db *DB) StorageCurve(runID uuid.UUID, team string) ([]float64, error) {
	var episodes int
	if err := db.conn.Get(&episodes,
		"SELECT COUNT(*) FROM episodes WHERE run_id = ? AND team = ?",
		runID.String(), team,
	); err != nil {
		return nil, err
	}
	if episodes == 0 {
		return nil, nil
	}

	var sums []int64
	err := db.conn.Select(&sums, `SELECT SUM(c.storage)
		FROM storage_curve c JOIN episodes e ON e.id = c.episode_id
		WHERE e.run_id = ? AND e.team = ?
		GROUP BY c.tick ORDER BY c.tick`,
		runID.String(), team,
	)
	if err != nil {
		return nil, err
	}
	curve := make([]float64, len(sums))
	for i, s := range sums {
		curve[i] = float64(s) / float64(episodes)
	}
	return curve, nil
}

// RecentEvents returns the most recent N events across all episodes.
func (db *DB) RecentEvents(limit int) ([]engine.Event, error) {
	var events []engine.Event
	err := db.conn.Select(&events,
		"SELECT tick, description, category FROM events ORDER BY id DESC LIMIT ?",
		limit,
	)
	return events, err
}
