package cache

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/vk/prismc/internal/unit"
)

const schema = `
CREATE TABLE IF NOT EXISTS results (
	hash       TEXT PRIMARY KEY,
	success    INTEGER NOT NULL,
	output     BLOB,
	errors     TEXT,
	elapsed_ns INTEGER NOT NULL,
	efficiency REAL NOT NULL
);`

// SQLite is a Cache backed by a single local SQLite database file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the cache database at path.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing cache schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Lookup implements Cache.
func (s *SQLite) Lookup(hash string) (unit.Result, bool, error) {
	row := s.db.QueryRow(
		`SELECT success, output, errors, elapsed_ns, efficiency FROM results WHERE hash = ?`, hash)

	var (
		success   int
		output    []byte
		errorsCol string
		elapsedNs int64
		score     float64
	)
	err := row.Scan(&success, &output, &errorsCol, &elapsedNs, &score)
	if err == sql.ErrNoRows {
		return unit.Result{}, false, nil
	}
	if err != nil {
		return unit.Result{}, false, fmt.Errorf("cache lookup: %w", err)
	}

	res := unit.Result{
		Success:         success != 0,
		Output:          output,
		Elapsed:         time.Duration(elapsedNs),
		EfficiencyScore: score,
	}
	if errorsCol != "" {
		res.Errors = strings.Split(errorsCol, "\n")
	}
	return res, true, nil
}

// Store implements Cache.
func (s *SQLite) Store(hash string, res unit.Result) error {
	success := 0
	if res.Success {
		success = 1
	}
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO results (hash, success, output, errors, elapsed_ns, efficiency) VALUES (?, ?, ?, ?, ?, ?)`,
		hash, success, res.Output, strings.Join(res.Errors, "\n"), int64(res.Elapsed), res.EfficiencyScore)
	if err != nil {
		return fmt.Errorf("cache store: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}
