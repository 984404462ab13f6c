package alerting

import (
	"fmt"
	"time"

	"github.com/meridian-systems/accountpulse/internal/model"
)

// detector is one independent alert rule. It returns nil when the rule
// does not fire.
type detector func(p *model.CustomerProfile, now time.Time, th Thresholds) *Alert

// detectNegativeFeedback fires when enough low ratings arrive inside
// the lookback window.
func detectNegativeFeedback(p *model.CustomerProfile, now time.Time, th Thresholds) *Alert {
	window := time.Duration(th.NegativeFeedbackWindowDays) * 24 * time.Hour
	negative := 0
	for _, f := range p.RecentFeedback(now, window, 0) {
		if f.Rating <= 2 {
			negative++
		}
	}
	if negative < th.NegativeFeedbackCount {
		return nil
	}

	severity := SeverityHigh
	if negative >= th.NegativeFeedbackCount*2 {
		severity = SeverityCritical
	}

	return &Alert{
		Type:     TypeNegativeFeedback,
		Severity: severity,
		Title:    "Negative feedback pattern",
		Description: fmt.Sprintf("%d feedback entries rated 2 or below in the last %d days",
			negative, th.NegativeFeedbackWindowDays),
		Data: map[string]any{
			"negative_count": negative,
			"window_days":    th.NegativeFeedbackWindowDays,
		},
		ActionRequired: true,
	}
}

// detectRenewalRisk fires only when a renewal date exists and is within
// 90 days, and the account looks unlikely to renew.
func detectRenewalRisk(p *model.CustomerProfile, now time.Time, _ Thresholds) *Alert {
	if p.RenewalDate == nil {
		return nil
	}
	daysUntil := p.RenewalDate.Sub(now).Hours() / 24
	if daysUntil < 0 || daysUntil > 90 {
		return nil
	}
	if p.RenewalLikelihood != model.LikelihoodLow && p.HealthScore >= 6 {
		return nil
	}

	severity := SeverityMedium
	switch {
	case daysUntil <= 30 && p.RenewalLikelihood == model.LikelihoodLow:
		severity = SeverityCritical
	case daysUntil <= 30 || p.RenewalLikelihood == model.LikelihoodLow:
		severity = SeverityHigh
	}

	return &Alert{
		Type:     TypeRenewalRisk,
		Severity: severity,
		Title:    "Renewal at risk",
		Description: fmt.Sprintf("Renewal in %.0f days with %s likelihood and health score %.1f",
			daysUntil, likelihoodOrUnknown(p.RenewalLikelihood), p.HealthScore),
		Data: map[string]any{
			"days_until_renewal": int(daysUntil),
			"renewal_likelihood": string(p.RenewalLikelihood),
			"health_score":       p.HealthScore,
		},
		ActionRequired: true,
	}
}

// detectLowEngagement fires on prolonged inactivity.
func detectLowEngagement(p *model.CustomerProfile, now time.Time, th Thresholds) *Alert {
	days, ok := p.DaysSinceActivity(now)
	if !ok || days <= float64(th.LowEngagementDays) {
		return nil
	}

	severity := SeverityMedium
	if days > float64(th.LowEngagementDays)*2 {
		severity = SeverityHigh
	}

	return &Alert{
		Type:        TypeLowEngagement,
		Severity:    severity,
		Title:       "Low engagement",
		Description: fmt.Sprintf("No recorded activity for %.0f days (threshold %d)", days, th.LowEngagementDays),
		Data: map[string]any{
			"days_inactive": int(days),
			"threshold":     th.LowEngagementDays,
		},
		ActionRequired: severity == SeverityHigh,
	}
}

// detectCriticalIssues fires on open critical tracker issues.
func detectCriticalIssues(p *model.CustomerProfile, _ time.Time, th Thresholds) *Alert {
	if p.Jira == nil || p.Jira.CriticalIssues < th.CriticalIssues {
		return nil
	}

	severity := SeverityHigh
	if p.Jira.CriticalIssues >= th.CriticalIssues*2 {
		severity = SeverityCritical
	}

	return &Alert{
		Type:        TypeCriticalIssues,
		Severity:    severity,
		Title:       "Critical issues open",
		Description: fmt.Sprintf("%d critical issues open in the tracker (threshold %d)", p.Jira.CriticalIssues, th.CriticalIssues),
		Data: map[string]any{
			"critical_issues": p.Jira.CriticalIssues,
			"open_issues":     p.Jira.OpenIssues,
		},
		ActionRequired: true,
	}
}

// detectSupportOverload fires on urgent-ticket pressure, a high open
// ratio, or poor satisfaction.
func detectSupportOverload(p *model.CustomerProfile, _ time.Time, th Thresholds) *Alert {
	z := p.Zendesk
	if z == nil {
		return nil
	}

	var reasons []string
	if z.UrgentTickets >= th.UrgentTickets {
		reasons = append(reasons, fmt.Sprintf("%d urgent tickets", z.UrgentTickets))
	}
	if total := z.OpenTickets + z.SolvedTickets; total > 0 && z.OpenTickets > 5 {
		if ratio := float64(z.OpenTickets) / float64(total); ratio > 0.5 {
			reasons = append(reasons, fmt.Sprintf("%.0f%% of tickets open", ratio*100))
		}
	}
	if z.SatisfactionRatings > 0 && z.SatisfactionScore < 50 {
		reasons = append(reasons, fmt.Sprintf("satisfaction at %.0f%%", z.SatisfactionScore))
	}
	if len(reasons) == 0 {
		return nil
	}

	severity := SeverityHigh
	if z.UrgentTickets >= th.UrgentTickets*2 {
		severity = SeverityCritical
	}

	return &Alert{
		Type:        TypeSupportOverload,
		Severity:    severity,
		Title:       "Support overload",
		Description: "Support queue under pressure: " + joinReasons(reasons),
		Data: map[string]any{
			"urgent_tickets":     z.UrgentTickets,
			"open_tickets":       z.OpenTickets,
			"satisfaction_score": z.SatisfactionScore,
		},
		ActionRequired: true,
	}
}

// detectSalesStagnation fires when a non-customer account has gone
// quiet in the CRM with nothing in the pipeline.
func detectSalesStagnation(p *model.CustomerProfile, now time.Time, th Thresholds) *Alert {
	h := p.Hubspot
	if h == nil || h.LifecycleStage == "customer" || h.OpenDeals > 0 || h.LastActivityAt == nil {
		return nil
	}
	days := now.Sub(*h.LastActivityAt).Hours() / 24
	if days <= float64(th.SalesInactivityDays) {
		return nil
	}

	return &Alert{
		Type:     TypeSalesStagnation,
		Severity: SeverityMedium,
		Title:    "Sales engagement stagnant",
		Description: fmt.Sprintf("No CRM activity for %.0f days, no open deals, lifecycle stage %q",
			days, h.LifecycleStage),
		Data: map[string]any{
			"days_inactive":   int(days),
			"lifecycle_stage": h.LifecycleStage,
		},
	}
}

// detectHealthDecline fires when the last three history points show a
// decline at or beyond the threshold.
func detectHealthDecline(p *model.CustomerProfile, _ time.Time, th Thresholds) *Alert {
	n := len(p.HealthScoreHistory)
	if n < 3 {
		return nil
	}
	last3 := p.HealthScoreHistory[n-3:]
	decline := last3[0].Score - last3[2].Score
	if decline < th.HealthDecline {
		return nil
	}

	severity := SeverityHigh
	if decline >= th.HealthDecline*2 {
		severity = SeverityCritical
	}

	return &Alert{
		Type:     TypeHealthScoreDecline,
		Severity: severity,
		Title:    "Health score declining",
		Description: fmt.Sprintf("Health score dropped %.1f points over the last 3 measurements (%.1f to %.1f)",
			decline, last3[0].Score, last3[2].Score),
		Data: map[string]any{
			"decline": decline,
			"from":    last3[0].Score,
			"to":      last3[2].Score,
		},
		ActionRequired: true,
	}
}

// detectAdoptionStagnation fires when a high-value account sits on one
// product or fewer through a long quiet spell.
func detectAdoptionStagnation(p *model.CustomerProfile, now time.Time, th Thresholds) *Alert {
	if p.ARR < th.HighValueARR || p.ProductCount() > 1 {
		return nil
	}
	days, ok := p.DaysSinceActivity(now)
	if !ok || days <= float64(th.AdoptionInactivityDays) {
		return nil
	}

	return &Alert{
		Type:     TypeAdoptionStagnation,
		Severity: SeverityHigh,
		Title:    "Product adoption stagnant",
		Description: fmt.Sprintf("$%.0f ARR account using %d product(s) with no activity for %.0f days",
			p.ARR, p.ProductCount(), days),
		Data: map[string]any{
			"arr":           p.ARR,
			"product_count": p.ProductCount(),
			"days_inactive": int(days),
		},
		ActionRequired: true,
	}
}

// escalationTriggerScore and escalationCriticalScore band the weighted
// escalation contributors.
const (
	escalationTriggerScore  = 50
	escalationCriticalScore = 75
)

// detectEscalationRisk sums four tiered risk contributors and fires
// when they cross the trigger score. The contributor coefficients
// deliberately overlap with the risk-scoring dimensions but are tuned
// independently.
func detectEscalationRisk(p *model.CustomerProfile, now time.Time, _ Thresholds) *Alert {
	score := 0
	var contributors []string

	if j := p.Jira; j != nil {
		switch {
		case j.CriticalIssues >= 2:
			score += 30
			contributors = append(contributors, fmt.Sprintf("%d critical issues", j.CriticalIssues))
		case j.CriticalIssues >= 1:
			score += 15
			contributors = append(contributors, "1 critical issue")
		}
	}

	if z := p.Zendesk; z != nil {
		switch {
		case z.UrgentTickets >= 3:
			score += 25
			contributors = append(contributors, fmt.Sprintf("%d urgent tickets", z.UrgentTickets))
		case z.UrgentTickets >= 1:
			score += 10
			contributors = append(contributors, fmt.Sprintf("%d urgent ticket(s)", z.UrgentTickets))
		}
		if z.SatisfactionRatings > 0 {
			switch {
			case z.SatisfactionScore < 60:
				score += 20
				contributors = append(contributors, fmt.Sprintf("satisfaction at %.0f%%", z.SatisfactionScore))
			case z.SatisfactionScore < 75:
				score += 10
				contributors = append(contributors, fmt.Sprintf("satisfaction at %.0f%%", z.SatisfactionScore))
			}
		}
	}

	negative := 0
	for _, f := range p.RecentFeedback(now, 7*24*time.Hour, 0) {
		if f.Rating <= 2 {
			negative++
		}
	}
	switch {
	case negative >= 2:
		score += 25
		contributors = append(contributors, fmt.Sprintf("%d negative feedback entries this week", negative))
	case negative == 1:
		score += 12
		contributors = append(contributors, "1 negative feedback entry this week")
	}

	if score < escalationTriggerScore {
		return nil
	}

	severity := SeverityHigh
	if score >= escalationCriticalScore {
		severity = SeverityCritical
	}

	return &Alert{
		Type:        TypeEscalationRisk,
		Severity:    severity,
		Title:       "Escalation risk",
		Description: fmt.Sprintf("Escalation risk score %d: %s", score, joinReasons(contributors)),
		Data: map[string]any{
			"escalation_score": score,
			"contributors":     contributors,
		},
		ActionRequired: true,
	}
}

func likelihoodOrUnknown(l model.Likelihood) string {
	if l == "" {
		return "unknown"
	}
	return string(l)
}

func joinReasons(reasons []string) string {
	out := ""
	for i, r := range reasons {
		if i > 0 {
			out += ", "
		}
		out += r
	}
	return out
}
