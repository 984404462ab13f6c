// Package portfolio evaluates many customer profiles and reduces the
// per-customer outputs into aggregate distributions.
package portfolio

import (
	"context"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/meridian-systems/accountpulse/internal/alerting"
	"github.com/meridian-systems/accountpulse/internal/behavior"
	"github.com/meridian-systems/accountpulse/internal/health"
	"github.com/meridian-systems/accountpulse/internal/model"
	"github.com/meridian-systems/accountpulse/internal/risk"
	"github.com/meridian-systems/accountpulse/internal/trend"
)

// DefaultConcurrency bounds the parallel evaluation fan-out.
const DefaultConcurrency = 8

// Evaluator bundles the per-customer engines.
type Evaluator struct {
	Health   *health.Engine
	Risk     *risk.Engine
	Behavior *behavior.Scorer
	Alerts   *alerting.Engine
}

// NewEvaluator creates an evaluator with all engines on their default
// configuration.
func NewEvaluator() *Evaluator {
	return &Evaluator{
		Health:   health.NewEngine(health.DefaultWeights, nil),
		Risk:     risk.NewEngine(),
		Behavior: behavior.NewScorer(nil),
		Alerts:   alerting.NewEngine(alerting.BaseThresholds),
	}
}

// Evaluation is the full engine output for one customer.
type Evaluation struct {
	CustomerID  string                 `json:"customer_id"`
	Health      health.Score           `json:"health"`
	Risk        risk.Score             `json:"risk"`
	Behavior    behavior.Score         `json:"behavior"`
	Renewal     health.RenewalEstimate `json:"renewal"`
	HealthTrend trend.Trend            `json:"health_trend"`
	Alerts      []alerting.Alert       `json:"alerts"`
	ComputedAt  time.Time              `json:"computed_at"`
}

// Evaluate runs every engine against one profile.
func (e *Evaluator) Evaluate(p *model.CustomerProfile, now time.Time) Evaluation {
	return Evaluation{
		CustomerID:  p.ID,
		Health:      e.Health.Score(p, now),
		Risk:        e.Risk.Score(p, now),
		Behavior:    e.Behavior.Score(p, now),
		Renewal:     health.EstimateRenewal(p, now),
		HealthTrend: trend.HealthTrend(p, 0),
		Alerts:      e.Alerts.Generate(p, now),
		ComputedAt:  now,
	}
}

// EvaluateAll evaluates every profile in parallel. Profiles are
// independent, so this is a bounded parallel map; results keep the
// input order. A concurrency of 0 or less uses DefaultConcurrency.
func (e *Evaluator) EvaluateAll(ctx context.Context, profiles []*model.CustomerProfile, now time.Time, concurrency int) ([]Evaluation, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]Evaluation, len(profiles))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, p := range profiles {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = e.Evaluate(p, now)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Summary is the aggregate view over a set of evaluations.
type Summary struct {
	Customers          int            `json:"customers"`
	HealthBuckets      map[string]int `json:"health_buckets"`
	BehaviorCategories map[string]int `json:"behavior_categories"`
	TrendDirections    map[string]int `json:"trend_directions"`
	RiskLevels         map[string]int `json:"risk_levels"`
	AverageRisk        float64        `json:"average_risk"`
	AverageHealth      float64        `json:"average_health"`
	AlertCount         int            `json:"alert_count"`
}

// Summarize reduces evaluations into counted distributions and
// averages. It introduces no new scoring: just counting over the
// per-customer outputs.
func Summarize(evals []Evaluation) Summary {
	s := Summary{
		Customers:          len(evals),
		HealthBuckets:      make(map[string]int),
		BehaviorCategories: make(map[string]int),
		TrendDirections:    make(map[string]int),
		RiskLevels:         make(map[string]int),
	}
	if len(evals) == 0 {
		return s
	}

	var riskSum, healthSum float64
	for _, ev := range evals {
		s.HealthBuckets[healthBucket(ev.Health.Score)]++
		s.BehaviorCategories[string(ev.Behavior.Category)]++
		s.TrendDirections[string(ev.HealthTrend.Direction)]++
		s.RiskLevels[string(ev.Risk.Level)]++
		s.AlertCount += len(ev.Alerts)
		riskSum += float64(ev.Risk.Score)
		healthSum += ev.Health.Score
	}

	n := float64(len(evals))
	s.AverageRisk = math.Round(riskSum/n*10) / 10
	s.AverageHealth = math.Round(healthSum/n*10) / 10
	return s
}

// healthBucket bands a 0-10 health score for the portfolio view.
func healthBucket(score float64) string {
	switch {
	case score >= 7:
		return "good"
	case score >= 4:
		return "fair"
	default:
		return "poor"
	}
}
