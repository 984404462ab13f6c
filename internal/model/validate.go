package model

import "fmt"

// Validate checks a profile for malformed input before it reaches the
// engines. The engines themselves are total functions over well-formed
// profiles, so out-of-range values are rejected here at the boundary
// instead of silently corrupting a weighted sum.
func Validate(p *CustomerProfile) error {
	if p == nil {
		return fmt.Errorf("profile is nil")
	}
	if p.ARR < 0 {
		return fmt.Errorf("arr %.2f is negative", p.ARR)
	}
	if p.HealthScore < 0 || p.HealthScore > 10 {
		return fmt.Errorf("health score %.2f out of range [0,10]", p.HealthScore)
	}
	for i, h := range p.HealthScoreHistory {
		if h.Score < 0 || h.Score > 10 {
			return fmt.Errorf("health history entry %d: score %.2f out of range [0,10]", i, h.Score)
		}
	}
	for i, f := range p.FeedbackEntries {
		if f.Rating < 1 || f.Rating > 5 {
			return fmt.Errorf("feedback entry %d: rating %d out of range [1,5]", i, f.Rating)
		}
	}
	for i, s := range p.SentimentTrend {
		if s.Score < 0 || s.Score > 100 {
			return fmt.Errorf("sentiment entry %d: score %.2f out of range [0,100]", i, s.Score)
		}
	}
	if p.SocialStats != nil {
		if p.SocialStats.LinkedIn < 0 || p.SocialStats.Twitter < 0 {
			return fmt.Errorf("social stats contain negative counts")
		}
	}
	if p.TicketVolume != nil && *p.TicketVolume < 0 {
		return fmt.Errorf("ticket volume %d is negative", *p.TicketVolume)
	}
	if p.Jira != nil {
		if p.Jira.OpenIssues < 0 || p.Jira.ResolvedIssues < 0 || p.Jira.CriticalIssues < 0 {
			return fmt.Errorf("jira metrics contain negative counts")
		}
		if p.Jira.AvgResolutionHours < 0 {
			return fmt.Errorf("jira avg resolution hours %.2f is negative", p.Jira.AvgResolutionHours)
		}
	}
	if p.Zendesk != nil {
		if p.Zendesk.OpenTickets < 0 || p.Zendesk.SolvedTickets < 0 || p.Zendesk.UrgentTickets < 0 {
			return fmt.Errorf("zendesk metrics contain negative counts")
		}
		if p.Zendesk.SatisfactionScore < 0 || p.Zendesk.SatisfactionScore > 100 {
			return fmt.Errorf("zendesk satisfaction score %.2f out of range [0,100]", p.Zendesk.SatisfactionScore)
		}
		if p.Zendesk.SatisfactionRatings < 0 {
			return fmt.Errorf("zendesk satisfaction ratings count is negative")
		}
	}
	if p.Hubspot != nil {
		if p.Hubspot.OpenDeals < 0 || p.Hubspot.WonDeals < 0 || p.Hubspot.LostDeals < 0 {
			return fmt.Errorf("hubspot metrics contain negative deal counts")
		}
	}
	switch p.RenewalLikelihood {
	case "", LikelihoodHigh, LikelihoodMedium, LikelihoodLow:
	default:
		return fmt.Errorf("renewal likelihood %q is not one of high/medium/low", p.RenewalLikelihood)
	}
	return nil
}
