package props

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// ErrNotFound reports a property that was never set.
var ErrNotFound = errors.New("property not found")

// Store persists named configuration properties.
type Store interface {
	Get(name string) (string, error)
	Set(name, value string) error
}

// DB is a Store backed by a SQLite database.
type DB struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at path and ensures the
// properties table exists.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open property db: %w", err)
	}

	const ddl = `CREATE TABLE IF NOT EXISTS properties (
		property TEXT PRIMARY KEY,
		value    TEXT NOT NULL
	)`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("create properties table: %w", err)
	}

	return &DB{db: db}, nil
}

// Close ferme la connexion SQLite.
func (d *DB) Close() error {
	return d.db.Close()
}

// Get returns the value stored under name. ErrNotFound if absent.
func (d *DB) Get(name string) (string, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM properties WHERE property = ?`, name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("property %s: %w", name, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("get property %s: %w", name, err)
	}
	return value, nil
}

// Set stores value under name, replacing any previous value.
func (d *DB) Set(name, value string) error {
	if _, err := d.db.Exec(`INSERT OR REPLACE INTO properties (property, value) VALUES (?, ?)`, name, value); err != nil {
		return fmt.Errorf("set property %s: %w", name, err)
	}
	return nil
}
