package model

// StatsSummary holds aggregate issue counts by bucket. Blocked and Ready are
// computed from the dependency graph, not just the status column, so an open
// issue with an unresolved blocker counts as blocked rather than ready.
type StatsSummary struct {
	Total                int     `json:"total"`
	Open                 int     `json:"open"`
	InProgress           int     `json:"in_progress"`
	Closed               int     `json:"closed"`
	Blocked              int     `json:"blocked"`
	Deferred             int     `json:"deferred"`
	Ready                int     `json:"ready"`
	AverageLeadTimeHours float64 `json:"average_lead_time_hours"`
}

// Stats is the response shape of the stats operation.
type Stats struct {
	Summary StatsSummary `json:"summary"`
}
