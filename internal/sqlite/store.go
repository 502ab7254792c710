// This file implements the Store: database file lifecycle and the
// one-transaction-per-run writer contract.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store owns the output database file for one converter run.
type Store struct {
	path string
	db   *sql.DB
}

// Open deletes any pre-existing file at path and creates a fresh database
// with the full schema. Converters are rebuild tools, never incremental
// updaters, so an old database at the output path is always discarded.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}
	// WAL sidecars from an earlier run must go with the database file;
	// a stale -wal against a fresh file reads as corruption.
	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("removing existing database: %w", err)
		}
	}

	// Pragmas go in the DSN so every pooled connection gets them, not just
	// the one that ran a PRAGMA statement. WAL with NORMAL sync trades
	// crash durability for bulk-insert speed, fine for a rebuild-only file.
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating indexes: %w", err)
		}
	}

	return &Store{path: path, db: db}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close releases the database connection. Idempotent.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Run executes fn inside a single transaction. The transaction commits only
// if fn returns nil; any error rolls back every insert from the run. There
// is deliberately no partial-success mode.
func (s *Store) Run(fn func(*Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&Tx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing run: %w", err)
	}
	return nil
}

// Counts returns the row count for each core table, in CoreTables order.
func (s *Store) Counts() (map[string]int, error) {
	counts := make(map[string]int, len(CoreTables))
	for _, table := range CoreTables {
		var n int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			return nil, fmt.Errorf("counting %s: %w", table, err)
		}
		counts[table] = n
	}
	return counts, nil
}
