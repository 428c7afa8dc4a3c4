package domain

import "time"

// CallFeedback records the outcome of one outbound call made by an agent.
type CallFeedback struct {
	ID        string
	AgentID   string
	Contact   string
	Outcome   CallOutcome
	Note      string
	CalledAt  time.Time
	CreatedAt time.Time
}

// CallSummary aggregates call outcomes for one agent.
type CallSummary struct {
	AgentID   string
	Total     int
	ByOutcome map[CallOutcome]int
}

// ConversionPct is converted calls over all calls, as a percentage.
func (s CallSummary) ConversionPct() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.ByOutcome[OutcomeConverted]) / float64(s.Total) * 100
}
