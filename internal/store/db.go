package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection to the accountpulse SQLite database.
type DB struct {
	conn *sql.DB
}

// filePragmas tune the on-disk database: WAL for concurrent readers
// while the API serves evaluations, a busy timeout so CLI and server
// processes sharing the file back off instead of failing, and NORMAL
// sync which is safe under WAL.
var filePragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA busy_timeout=5000",
	"PRAGMA synchronous=NORMAL",
	"PRAGMA foreign_keys=ON",
}

// Open opens or creates the SQLite database at the given path.
// It creates the parent directory if it does not exist.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// Single writer: evaluation snapshots and history appends are
	// serialized rather than racing on SQLITE_BUSY.
	conn.SetMaxOpenConns(1)

	return prepare(conn, filePragmas)
}

// OpenInMemory opens an in-memory SQLite database, useful for testing.
func OpenInMemory() (*DB, error) {
	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}

	// An in-memory database exists per connection; the pool must not
	// open a second one.
	conn.SetMaxOpenConns(1)

	return prepare(conn, []string{"PRAGMA foreign_keys=ON"})
}

// prepare applies pragmas and runs migrations, closing the connection
// on any failure.
func prepare(conn *sql.DB, pragmas []string) (*DB, error) {
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("applying %q: %w", pragma, err)
		}
	}

	db := &DB{conn: conn}
	if err := db.Migrate(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the underlying sql.DB for advanced queries.
func (db *DB) Conn() *sql.DB {
	return db.conn
}
