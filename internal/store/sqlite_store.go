package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/preston-bernstein/tournament-sim/internal/domain/tournament"
)

const (
	sqliteOptions = "?_busy_timeout=15000&_journal_mode=WAL"
	// fixed-width so created_at sorts lexically
	sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

const (
	sqliteSchema = `
		CREATE TABLE IF NOT EXISTS tournament_runs (
			id         TEXT PRIMARY KEY,
			seed       TEXT NOT NULL,
			created_at TEXT NOT NULL,
			determined INTEGER NOT NULL,
			gold       TEXT NOT NULL,
			silver     TEXT NOT NULL,
			bronze     TEXT NOT NULL,
			payload    TEXT NOT NULL
		)`

	sqliteUpsert = `
		INSERT INTO tournament_runs (id, seed, created_at, determined, gold, silver, bronze, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			seed = excluded.seed,
			created_at = excluded.created_at,
			determined = excluded.determined,
			gold = excluded.gold,
			silver = excluded.silver,
			bronze = excluded.bronze,
			payload = excluded.payload`

	sqliteGet = `SELECT payload FROM tournament_runs WHERE id = ?`

	sqliteList = `
		SELECT id, seed, created_at, determined, gold, silver, bronze
		FROM tournament_runs
		ORDER BY created_at DESC, rowid DESC`
)

// SQLiteStore persists finished runs in a SQLite database. The full result is kept as a
// JSON payload; the summary columns serve listings without decoding it.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and ensures the schema exists.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("sqlite path required")
	}
	db, err := sql.Open("sqlite3", path+sqliteOptions)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate sqlite %s: %w", path, err)
	}
	return &SQLiteStore{db: db}, nil
}

// Save inserts or replaces a run.
func (s *SQLiteStore) Save(ctx context.Context, result tournament.Result) error {
	if result.ID == "" {
		return fmt.Errorf("save result: %w", ErrMissingID)
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode result %s: %w", result.ID, err)
	}
	_, err = s.db.ExecContext(ctx, sqliteUpsert,
		result.ID,
		strconv.FormatUint(result.Seed, 10),
		result.CreatedAt.UTC().Format(sqliteTimeLayout),
		result.Medals.Determined,
		result.Medals.Gold,
		result.Medals.Silver,
		result.Medals.Bronze,
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("save result %s: %w", result.ID, err)
	}
	return nil
}

// Get loads a run by ID.
func (s *SQLiteStore) Get(ctx context.Context, id string) (tournament.Result, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, sqliteGet, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return tournament.Result{}, fmt.Errorf("%w: %s", tournament.ErrNotFound, id)
	}
	if err != nil {
		return tournament.Result{}, fmt.Errorf("load result %s: %w", id, err)
	}

	var result tournament.Result
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return tournament.Result{}, fmt.Errorf("decode result %s: %w", id, err)
	}
	return result, nil
}

// List returns run summaries, newest first.
func (s *SQLiteStore) List(ctx context.Context) ([]tournament.Summary, error) {
	rows, err := s.db.QueryContext(ctx, sqliteList)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	out := []tournament.Summary{}
	for rows.Next() {
		var (
			sum       tournament.Summary
			seed      string
			createdAt string
		)
		if err := rows.Scan(&sum.ID, &seed, &createdAt, &sum.Medals.Determined,
			&sum.Medals.Gold, &sum.Medals.Silver, &sum.Medals.Bronze); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		if sum.Seed, err = strconv.ParseUint(seed, 10, 64); err != nil {
			return nil, fmt.Errorf("parse seed for %s: %w", sum.ID, err)
		}
		if sum.CreatedAt, err = time.Parse(sqliteTimeLayout, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at for %s: %w", sum.ID, err)
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	return out, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
