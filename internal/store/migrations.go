package store

import "fmt"

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
	// Create the schema_version table if it does not exist.
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		// No rows means version 0 (fresh database).
		version = 0
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return nil
}

// migrateV1 creates all initial tables and indexes.
func (db *DB) migrateV1() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS customers (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			arr        REAL NOT NULL,
			profile    TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS health_history (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			customer_id TEXT NOT NULL REFERENCES customers(id),
			recorded_at TEXT NOT NULL,
			score       REAL NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS evaluations (
			id                 TEXT PRIMARY KEY,
			customer_id        TEXT NOT NULL REFERENCES customers(id),
			computed_at        TEXT NOT NULL,
			health_score       REAL NOT NULL,
			risk_score         INTEGER NOT NULL,
			risk_level         TEXT NOT NULL,
			behavior_category  TEXT NOT NULL,
			renewal_likelihood TEXT NOT NULL,
			alert_count        INTEGER NOT NULL,
			detail             TEXT NOT NULL
		)`,

		// Indexes.
		`CREATE INDEX IF NOT EXISTS idx_health_history_customer ON health_history(customer_id, id)`,
		`CREATE INDEX IF NOT EXISTS idx_evaluations_customer ON evaluations(customer_id, computed_at)`,
		`CREATE INDEX IF NOT EXISTS idx_evaluations_risk ON evaluations(risk_level)`,
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}

	// Set schema version.
	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
		return err
	}

	return tx.Commit()
}
