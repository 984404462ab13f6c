// Package store persists customer profiles, health history, and
// evaluation snapshots in SQLite.
package store

import (
	"time"

	"github.com/meridian-systems/accountpulse/internal/portfolio"
)

// HealthPoint is one row of a customer's stored health history.
type HealthPoint struct {
	CustomerID string    `json:"customer_id"`
	RecordedAt time.Time `json:"recorded_at"`
	Score      float64   `json:"score"`
}

// EvaluationRecord is a persisted evaluation snapshot. The headline
// columns are denormalized for querying; Evaluation carries the full
// engine output.
type EvaluationRecord struct {
	ID                string               `json:"id"`
	CustomerID        string               `json:"customer_id"`
	ComputedAt        time.Time            `json:"computed_at"`
	HealthScore       float64              `json:"health_score"`
	RiskScore         int                  `json:"risk_score"`
	RiskLevel         string               `json:"risk_level"`
	BehaviorCategory  string               `json:"behavior_category"`
	RenewalLikelihood string               `json:"renewal_likelihood"`
	AlertCount        int                  `json:"alert_count"`
	Evaluation        portfolio.Evaluation `json:"evaluation"`
}
