package health

import (
	"fmt"
	"math"
	"time"

	"github.com/meridian-systems/accountpulse/internal/model"
)

// Renewal factor weights. Fixed coefficients, independent of the
// health-score signal weights.
const (
	renewalWeightHealth       = 0.30
	renewalWeightProductUsage = 0.20
	renewalWeightSatisfaction = 0.25
	renewalWeightTickets      = 0.15
	renewalWeightActivity     = 0.10
)

// RenewalEstimate is the advisory renewal likelihood computed fresh from
// the profile. It validates (or overrides, at the caller's discretion)
// the stored likelihood but never overwrites it itself.
type RenewalEstimate struct {
	Likelihood model.Likelihood `json:"likelihood"`
	Score      float64          `json:"score"` // 0-1
	Factors    []string         `json:"factors"`
}

// EstimateRenewal computes a renewal likelihood independent of the
// stored value. Factors without data contribute neither value nor
// weight; with no data at all the estimate defaults to medium at the
// 0.5 midpoint.
func EstimateRenewal(p *model.CustomerProfile, now time.Time) RenewalEstimate {
	var total, totalWeight float64
	var factors []string

	// Health score.
	healthNorm := p.HealthScore / 10
	total += healthNorm * renewalWeightHealth
	totalWeight += renewalWeightHealth
	factors = append(factors, fmt.Sprintf("Health score %.1f/10", p.HealthScore))

	// Product adoption breadth, saturating at 4 products.
	count := p.ProductCount()
	breadth := math.Min(float64(count), 4) / 4
	total += breadth * renewalWeightProductUsage
	totalWeight += renewalWeightProductUsage
	factors = append(factors, fmt.Sprintf("%d product(s) in use", count))

	// Support satisfaction.
	if z := p.Zendesk; z != nil && z.SatisfactionRatings > 0 {
		total += z.SatisfactionScore / 100 * renewalWeightSatisfaction
		totalWeight += renewalWeightSatisfaction
		factors = append(factors, fmt.Sprintf("Support satisfaction %.0f%%", z.SatisfactionScore))
	}

	// Open ticket pressure, inverted so fewer tickets score higher.
	if open, ok := openTicketCount(p); ok {
		v := math.Max(0, (10-float64(open))/10)
		total += v * renewalWeightTickets
		totalWeight += renewalWeightTickets
		factors = append(factors, fmt.Sprintf("%d open support ticket(s)", open))
	}

	// Activity recency.
	if days, ok := p.DaysSinceActivity(now); ok {
		total += activityRecency(days) * renewalWeightActivity
		totalWeight += renewalWeightActivity
		factors = append(factors, fmt.Sprintf("Last activity %.0f day(s) ago", days))
	}

	score := 0.5
	if totalWeight > 0 {
		score = total / totalWeight
	}

	return RenewalEstimate{
		Likelihood: likelihoodBand(score),
		Score:      math.Round(score*100) / 100,
		Factors:    factors,
	}
}

// openTicketCount prefers live ticketing metrics over the legacy
// profile-level counter.
func openTicketCount(p *model.CustomerProfile) (int, bool) {
	if p.Zendesk != nil {
		return p.Zendesk.OpenTickets, true
	}
	if p.TicketVolume != nil {
		return *p.TicketVolume, true
	}
	return 0, false
}

// activityRecency maps days since last activity to a 0-1 signal.
func activityRecency(days float64) float64 {
	switch {
	case days <= 7:
		return 1.0
	case days <= 30:
		return 0.7
	case days <= 90:
		return 0.4
	default:
		return 0.1
	}
}

// likelihoodBand applies the estimate thresholds.
func likelihoodBand(score float64) model.Likelihood {
	switch {
	case score >= 0.7:
		return model.LikelihoodHigh
	case score >= 0.4:
		return model.LikelihoodMedium
	default:
		return model.LikelihoodLow
	}
}
