package store

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/meridian-systems/accountpulse/internal/model"
)

// UpsertCustomer inserts or replaces a customer profile. The profile is
// stored as JSON; id, name, and ARR are denormalized for listing.
func (db *DB) UpsertCustomer(p *model.CustomerProfile) error {
	if err := model.Validate(p); err != nil {
		return err
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}

	_, err = db.conn.Exec(
		`INSERT INTO customers (id, name, arr, profile, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			arr = excluded.arr,
			profile = excluded.profile,
			updated_at = excluded.updated_at`,
		p.ID, p.Name, p.ARR, string(raw), time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// GetCustomer returns the stored profile for an id, or nil if none exists.
func (db *DB) GetCustomer(id string) (*model.CustomerProfile, error) {
	var raw string
	err := db.conn.QueryRow("SELECT profile FROM customers WHERE id = ?", id).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var p model.CustomerProfile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListCustomers returns every stored profile ordered by id.
func (db *DB) ListCustomers() ([]*model.CustomerProfile, error) {
	rows, err := db.conn.Query("SELECT profile FROM customers ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var profiles []*model.CustomerProfile
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var p model.CustomerProfile
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, err
		}
		profiles = append(profiles, &p)
	}
	return profiles, rows.Err()
}

// DeleteCustomer removes a customer and its history and evaluations.
func (db *DB) DeleteCustomer(id string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		"DELETE FROM health_history WHERE customer_id = ?",
		"DELETE FROM evaluations WHERE customer_id = ?",
		"DELETE FROM customers WHERE id = ?",
	} {
		if _, err := tx.Exec(stmt, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// AppendHealthPoint records a health score for a customer. The point is
// only written when the score differs from the most recent stored one,
// so a steady score produces a single row, not a row per computation.
// It reports whether a row was written.
func (db *DB) AppendHealthPoint(customerID string, at time.Time, score float64) (bool, error) {
	var last float64
	err := db.conn.QueryRow(
		"SELECT score FROM health_history WHERE customer_id = ? ORDER BY id DESC LIMIT 1",
		customerID,
	).Scan(&last)
	if err != nil && err != sql.ErrNoRows {
		return false, err
	}
	if err == nil && last == score {
		return false, nil
	}

	_, err = db.conn.Exec(
		"INSERT INTO health_history (customer_id, recorded_at, score) VALUES (?, ?, ?)",
		customerID, at.UTC().Format(time.RFC3339), score,
	)
	if err != nil {
		return false, err
	}
	return true, nil
}

// HealthHistory returns a customer's stored health points in
// chronological order. A limit of 0 or less returns everything.
func (db *DB) HealthHistory(customerID string, limit int) ([]HealthPoint, error) {
	query := "SELECT customer_id, recorded_at, score FROM health_history WHERE customer_id = ? ORDER BY id"
	args := []any{customerID}
	if limit > 0 {
		query += " DESC LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var points []HealthPoint
	for rows.Next() {
		var hp HealthPoint
		var recordedAt string
		if err := rows.Scan(&hp.CustomerID, &recordedAt, &hp.Score); err != nil {
			return nil, err
		}
		hp.RecordedAt, _ = time.Parse(time.RFC3339, recordedAt)
		points = append(points, hp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// A limited query reads newest-first; flip back to chronological.
	if limit > 0 {
		for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
			points[i], points[j] = points[j], points[i]
		}
	}
	return points, nil
}
