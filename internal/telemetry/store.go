package telemetry

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/platoon/internal/monitoring"
	"github.com/banshee-data/platoon/internal/timeutil"
	"github.com/banshee-data/platoon/internal/vehicle"
)

// ErrRunNotFound is returned for an unknown run id.
var ErrRunNotFound = errors.New("run not found")

// Store is a sqlite-backed run store. It is used from a single goroutine.
type Store struct {
	db    *sql.DB
	clock timeutil.Clock
}

// Open opens or creates the database at path and migrates it to the latest
// schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	s := &Store{db: db, clock: timeutil.RealClock{}}
	if err := s.MigrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	monitoring.Verbosef("telemetry: opened %s", path)
	return s, nil
}

// SetClock replaces the clock used to stamp runs.
func (s *Store) SetClock(c timeutil.Clock) {
	s.clock = c
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RunMeta describes the inputs of a run.
type RunMeta struct {
	LogPath   string
	Period    float64
	Followers int
	Samples   int
}

// Run is a stored run.
type Run struct {
	ID uuid.UUID
	RunMeta
	StartedAt  time.Time
	FinishedAt time.Time // zero until FinishRun
	Steps      int
}

// Row is one stored vehicle state.
type Row struct {
	Step    int
	Vehicle int // 0 is the lead
	vehicle.State
}

// BeginRun records a new run and returns its id.
func (s *Store) BeginRun(meta RunMeta) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, log_path, period, followers, samples, started_ns)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id.String(), meta.LogPath, meta.Period, meta.Followers, meta.Samples, s.clock.Now().UnixNano(),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin run: %w", err)
	}
	return id, nil
}

// FinishRun stamps a run as finished after steps steps.
func (s *Store) FinishRun(id uuid.UUID, steps int) error {
	res, err := s.db.Exec(
		`UPDATE runs SET finished_ns = ?, steps = ? WHERE run_id = ?`,
		s.clock.Now().UnixNano(), steps, id.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to finish run %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to finish run %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("finish run %s: %w", id, ErrRunNotFound)
	}
	return nil
}

// Runs returns every stored run, oldest first.
func (s *Store) Runs() ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT run_id, log_path, period, followers, samples, started_ns, finished_ns, steps
		FROM runs ORDER BY started_ns, rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r        Run
			rawID    string
			started  int64
			finished sql.NullInt64
		)
		if err := rows.Scan(&rawID, &r.LogPath, &r.Period, &r.Followers, &r.Samples, &started, &finished, &r.Steps); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if r.ID, err = uuid.Parse(rawID); err != nil {
			return nil, fmt.Errorf("invalid run id %q: %w", rawID, err)
		}
		r.StartedAt = time.Unix(0, started)
		if finished.Valid {
			r.FinishedAt = time.Unix(0, finished.Int64)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// States returns the stored states of a run ordered by step then vehicle.
func (s *Store) States(id uuid.UUID) ([]Row, error) {
	rows, err := s.db.Query(
		`SELECT step, vehicle, sim_time, x, y, velocity, heading
		FROM vehicle_states WHERE run_id = ? ORDER BY step, vehicle`,
		id.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query states for run %s: %w", id, err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.Step, &r.Vehicle, &r.SimTime, &r.X, &r.Y, &r.Velocity, &r.Heading); err != nil {
			return nil, fmt.Errorf("failed to scan state: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) insertRows(id uuid.UUID, rows []Row) (err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	stmt, err := tx.Prepare(
		`INSERT INTO vehicle_states (run_id, step, vehicle, sim_time, x, y, velocity, heading)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	runID := id.String()
	for _, r := range rows {
		if _, err = stmt.Exec(runID, r.Step, r.Vehicle, r.SimTime, r.X, r.Y, r.Velocity, r.Heading); err != nil {
			return fmt.Errorf("failed to insert state: %w", err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit states: %w", err)
	}
	return nil
}
