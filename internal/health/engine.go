// Package health computes the 0-10 customer health score and the
// independent renewal likelihood estimate.
package health

import (
	"math"
	"time"

	"github.com/meridian-systems/accountpulse/internal/integration"
	"github.com/meridian-systems/accountpulse/internal/model"
)

// NeutralScore is returned when no signal category has data.
const NeutralScore = 5.0

// Weights defines the relative weight of each health signal category.
type Weights struct {
	Feedback     float64 `mapstructure:"feedback"`
	Sentiment    float64 `mapstructure:"sentiment"`
	TicketVolume float64 `mapstructure:"ticket_volume"`
	ProductUsage float64 `mapstructure:"product_usage"`
	Renewal      float64 `mapstructure:"renewal"`
	Social       float64 `mapstructure:"social"`
	Integration  float64 `mapstructure:"integration"`
}

// DefaultWeights holds the stock signal weights.
var DefaultWeights = Weights{
	Feedback:     2.0,
	Sentiment:    1.0,
	TicketVolume: 1.0,
	ProductUsage: 1.5,
	Renewal:      1.5,
	Social:       1.0,
	Integration:  3.0,
}

// renewalValues maps the stored renewal likelihood to a 0-1 signal.
var renewalValues = map[model.Likelihood]float64{
	model.LikelihoodHigh:   1.0,
	model.LikelihoodMedium: 0.6,
	model.LikelihoodLow:    0.2,
}

// Score is the result of one health computation.
type Score struct {
	// Score is the 0-10 health score, rounded to one decimal.
	Score float64 `json:"score"`

	// AppliedWeight is the summed weight of the signal categories that
	// had data. Callers use it to detect insufficient-data situations.
	AppliedWeight float64 `json:"applied_weight"`

	// Breakdown lists each contributing signal for explainability.
	Breakdown []model.ScoreFactor `json:"breakdown"`
}

// Engine computes health scores from customer profiles.
type Engine struct {
	weights Weights
	stages  integration.LifecycleScores
}

// NewEngine creates a health engine with the given signal weights and
// lifecycle-stage table. Zero values fall back to the defaults.
func NewEngine(weights Weights, stages integration.LifecycleScores) *Engine {
	if weights == (Weights{}) {
		weights = DefaultWeights
	}
	if stages == nil {
		stages = integration.DefaultLifecycleScores
	}
	return &Engine{weights: weights, stages: stages}
}

// signal is one candidate contribution to the weighted health sum. The
// value func returns false when the profile lacks the data the signal
// needs, in which case the signal contributes neither value nor weight.
type signal struct {
	name   string
	weight float64
	value  func(p *model.CustomerProfile, now time.Time) (float64, bool)
}

// signals returns the signal list in its fixed evaluation order, so that
// floating-point summation is deterministic for identical inputs.
func (e *Engine) signals() []signal {
	return []signal{
		{"feedback_rating", e.weights.Feedback, feedbackSignal},
		{"sentiment_trend", e.weights.Sentiment, sentimentSignal},
		{"ticket_volume", e.weights.TicketVolume, ticketVolumeSignal},
		{"product_usage", e.weights.ProductUsage, productUsageSignal},
		{"renewal_likelihood", e.weights.Renewal, renewalSignal},
		{"social_engagement", e.weights.Social, socialSignal},
		{"integration_health", e.weights.Integration, e.integrationSignal},
	}
}

// Score computes the weighted health score for a profile. Categories
// without data are skipped entirely, so the result is always an average
// over available evidence. With no evidence at all it returns the
// neutral default of 5.0.
func (e *Engine) Score(p *model.CustomerProfile, now time.Time) Score {
	var total, totalWeight float64
	var breakdown []model.ScoreFactor

	for _, s := range e.signals() {
		v, ok := s.value(p, now)
		if !ok {
			continue
		}
		total += v * s.weight
		totalWeight += s.weight
		breakdown = append(breakdown, model.ScoreFactor{
			Name:         s.name,
			Value:        v,
			Weight:       s.weight,
			Contribution: v * s.weight,
		})
	}

	if totalWeight == 0 {
		return Score{Score: NeutralScore}
	}

	score := total / totalWeight * 10
	if score < 0 {
		score = 0
	}
	if score > 10 {
		score = 10
	}

	return Score{
		Score:         math.Round(score*10) / 10,
		AppliedWeight: totalWeight,
		Breakdown:     breakdown,
	}
}

// feedbackSignal is the average feedback rating scaled to 0-0.5.
func feedbackSignal(p *model.CustomerProfile, _ time.Time) (float64, bool) {
	avg, ok := p.AverageFeedbackRating()
	if !ok {
		return 0, false
	}
	return avg / 10, true
}

// sentimentSignal is 1.0 when the last two sentiment points are
// non-decreasing, 0.5 otherwise.
func sentimentSignal(p *model.CustomerProfile, _ time.Time) (float64, bool) {
	n := len(p.SentimentTrend)
	if n < 2 {
		return 0, false
	}
	if p.SentimentTrend[n-1].Score >= p.SentimentTrend[n-2].Score {
		return 1.0, true
	}
	return 0.5, true
}

// ticketVolumeSignal rewards low ticket volume, bottoming out at 10+.
func ticketVolumeSignal(p *model.CustomerProfile, _ time.Time) (float64, bool) {
	if p.TicketVolume == nil {
		return 0, false
	}
	v := (10 - float64(*p.TicketVolume)) / 10
	if v < 0 {
		v = 0
	}
	return v, true
}

// productUsageSignal is product breadth, saturating at 4 products.
func productUsageSignal(p *model.CustomerProfile, _ time.Time) (float64, bool) {
	count := p.ProductCount()
	if count == 0 {
		return 0, false
	}
	if count > 4 {
		count = 4
	}
	return float64(count) / 4, true
}

// renewalSignal looks up the stored likelihood; unknown non-empty
// values fall back to 0.5.
func renewalSignal(p *model.CustomerProfile, _ time.Time) (float64, bool) {
	if p.RenewalLikelihood == "" {
		return 0, false
	}
	if v, ok := renewalValues[p.RenewalLikelihood]; ok {
		return v, true
	}
	return 0.5, true
}

// socialSignal is combined follower activity, saturating at 10.
func socialSignal(p *model.CustomerProfile, _ time.Time) (float64, bool) {
	if p.SocialStats == nil {
		return 0, false
	}
	total := float64(p.SocialStats.LinkedIn + p.SocialStats.Twitter)
	if total > 10 {
		total = 10
	}
	return total / 10, true
}

// integrationSignal is the mean of the available integration sub-scores.
func (e *Engine) integrationSignal(p *model.CustomerProfile, now time.Time) (float64, bool) {
	avg, ok := integration.ScoreProfile(e.stages, p, now).Average()
	if !ok {
		return 0, false
	}
	return avg / 100, true
}
