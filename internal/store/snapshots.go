package store

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/meridian-systems/accountpulse/internal/portfolio"
)

// SaveEvaluation persists an evaluation snapshot and returns its id.
func (db *DB) SaveEvaluation(ev portfolio.Evaluation) (string, error) {
	detail, err := json.Marshal(ev)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	_, err = db.conn.Exec(
		`INSERT INTO evaluations
		(id, customer_id, computed_at, health_score, risk_score, risk_level,
		 behavior_category, renewal_likelihood, alert_count, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, ev.CustomerID, ev.ComputedAt.UTC().Format(time.RFC3339),
		ev.Health.Score, ev.Risk.Score, string(ev.Risk.Level),
		string(ev.Behavior.Category), string(ev.Renewal.Likelihood),
		len(ev.Alerts), string(detail),
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

// LatestEvaluation returns the most recent snapshot for a customer, or
// nil if none exists.
func (db *DB) LatestEvaluation(customerID string) (*EvaluationRecord, error) {
	row := db.conn.QueryRow(
		`SELECT id, customer_id, computed_at, health_score, risk_score, risk_level,
		 behavior_category, renewal_likelihood, alert_count, detail
		 FROM evaluations WHERE customer_id = ? ORDER BY computed_at DESC LIMIT 1`,
		customerID,
	)
	return scanEvaluation(row)
}

// GetEvaluation returns a snapshot by id, or nil if none exists.
func (db *DB) GetEvaluation(id string) (*EvaluationRecord, error) {
	row := db.conn.QueryRow(
		`SELECT id, customer_id, computed_at, health_score, risk_score, risk_level,
		 behavior_category, renewal_likelihood, alert_count, detail
		 FROM evaluations WHERE id = ?`,
		id,
	)
	return scanEvaluation(row)
}

func scanEvaluation(row *sql.Row) (*EvaluationRecord, error) {
	var rec EvaluationRecord
	var computedAt, detail string
	err := row.Scan(
		&rec.ID, &rec.CustomerID, &computedAt, &rec.HealthScore,
		&rec.RiskScore, &rec.RiskLevel, &rec.BehaviorCategory,
		&rec.RenewalLikelihood, &rec.AlertCount, &detail,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rec.ComputedAt, _ = time.Parse(time.RFC3339, computedAt)
	if err := json.Unmarshal([]byte(detail), &rec.Evaluation); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListEvaluations returns a customer's snapshots, newest first. A limit
// of 0 or less returns everything.
func (db *DB) ListEvaluations(customerID string, limit int) ([]EvaluationRecord, error) {
	query := `SELECT id, customer_id, computed_at, health_score, risk_score, risk_level,
		 behavior_category, renewal_likelihood, alert_count, detail
		 FROM evaluations WHERE customer_id = ? ORDER BY computed_at DESC`
	args := []any{customerID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []EvaluationRecord
	for rows.Next() {
		var rec EvaluationRecord
		var computedAt, detail string
		if err := rows.Scan(
			&rec.ID, &rec.CustomerID, &computedAt, &rec.HealthScore,
			&rec.RiskScore, &rec.RiskLevel, &rec.BehaviorCategory,
			&rec.RenewalLikelihood, &rec.AlertCount, &detail,
		); err != nil {
			return nil, err
		}
		rec.ComputedAt, _ = time.Parse(time.RFC3339, computedAt)
		if err := json.Unmarshal([]byte(detail), &rec.Evaluation); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
