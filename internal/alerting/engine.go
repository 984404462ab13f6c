package alerting

import (
	"time"

	"github.com/meridian-systems/accountpulse/internal/model"
)

// Engine runs every registered detector against a profile and ranks
// the resulting alerts. Evaluation is stateless: the same profile and
// timestamp always produce the same alert list.
type Engine struct {
	base      Thresholds
	detectors []detector
}

// NewEngine creates an alert engine with the given base threshold
// table. A zero table falls back to the defaults.
func NewEngine(base Thresholds) *Engine {
	if base == (Thresholds{}) {
		base = BaseThresholds
	}
	return &Engine{
		base: base,
		detectors: []detector{
			detectNegativeFeedback,
			detectRenewalRisk,
			detectLowEngagement,
			detectCriticalIssues,
			detectSupportOverload,
			detectSalesStagnation,
			detectHealthDecline,
			detectAdoptionStagnation,
			detectEscalationRisk,
		},
	}
}

// Generate evaluates all detectors against the profile at the given
// instant and returns the alerts sorted by descending priority score.
// The threshold policy is derived once per customer and shared by
// every detector.
func (e *Engine) Generate(p *model.CustomerProfile, now time.Time) []Alert {
	th := e.base.ForCustomer(p)

	var alerts []Alert
	for _, detect := range e.detectors {
		if a := detect(p, now, th); a != nil {
			a.CreatedAt = now
			alerts = append(alerts, *a)
		}
	}

	return prioritize(alerts, p)
}
