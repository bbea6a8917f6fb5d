package domain

import "math"

// SessionStats is a read-only snapshot of the session's running statistics.
type SessionStats struct {
	// TotalDocs always equals the number of registered documents.
	TotalDocs int `json:"totalDocs"`

	// TotalQueries counts successful queries.
	TotalQueries int `json:"totalQueries"`

	// AvgResponseTimeMs is the mean client-side latency of successful queries.
	AvgResponseTimeMs float64 `json:"avgResponseTimeMs"`

	// PositiveRatePercent is round(100 * positive / total) over current feedback.
	PositiveRatePercent int `json:"positiveRatePercent"`

	// FailedQueries counts queries that ended with an error message.
	FailedQueries int `json:"failedQueries"`
}

// AvgResponseTimeRounded returns the mean latency rounded to whole milliseconds.
func (s SessionStats) AvgResponseTimeRounded() int64 {
	return int64(math.Round(s.AvgResponseTimeMs))
}
