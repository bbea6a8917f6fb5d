package services

import (
	"math"
	"sync"
	"time"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
)

// MetricsAggregator maintains the session statistics from discrete events.
// Every event is O(1) except feedback, which recounts the feedback map.
type MetricsAggregator struct {
	mu sync.RWMutex

	totalDocs int

	// queries and meanLatencyMs are updated together.
	queries       int
	meanLatencyMs float64
	failed        int

	feedback     map[int64]domain.Polarity
	positiveRate int
}

// NewMetricsAggregator creates an aggregator with zeroed statistics.
func NewMetricsAggregator() *MetricsAggregator {
	return &MetricsAggregator{
		feedback: make(map[int64]domain.Polarity),
	}
}

// RecordUpload adjusts the document count by a signed delta.
func (m *MetricsAggregator) RecordUpload(delta int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalDocs += delta
	if m.totalDocs < 0 {
		m.totalDocs = 0
	}
}

// SetDocumentCount overwrites the document count after hydration.
func (m *MetricsAggregator) SetDocumentCount(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalDocs = n
}

// RecordQuery folds one successful query latency into the running mean.
func (m *MetricsAggregator) RecordQuery(latency time.Duration) {
	ms := float64(latency) / float64(time.Millisecond)

	m.mu.Lock()
	defer m.mu.Unlock()
	n := float64(m.queries)
	m.meanLatencyMs = (m.meanLatencyMs*n + ms) / (n + 1)
	m.queries++
}

// RecordQueryFailure counts a failed query. Latency statistics are untouched.
func (m *MetricsAggregator) RecordQueryFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failed++
}

// RecordFeedback upserts the vote for a message and recomputes the positive rate.
func (m *MetricsAggregator) RecordFeedback(messageID int64, polarity domain.Polarity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.feedback[messageID] = polarity
	m.recomputePositiveRate()
}

// Feedback returns the vote recorded for a message.
func (m *MetricsAggregator) Feedback(messageID int64) (domain.Polarity, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.feedback[messageID]
	return p, ok
}

// ResetFeedback drops every vote.
func (m *MetricsAggregator) ResetFeedback() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.feedback = make(map[int64]domain.Polarity)
	m.recomputePositiveRate()
}

// Snapshot returns the current statistics.
func (m *MetricsAggregator) Snapshot() domain.SessionStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return domain.SessionStats{
		TotalDocs:           m.totalDocs,
		TotalQueries:        m.queries,
		AvgResponseTimeMs:   m.meanLatencyMs,
		PositiveRatePercent: m.positiveRate,
		FailedQueries:       m.failed,
	}
}

// recomputePositiveRate scans the whole feedback map (caller must hold lock).
// The map is bounded by the number of visible messages.
func (m *MetricsAggregator) recomputePositiveRate() {
	total := len(m.feedback)
	if total == 0 {
		m.positiveRate = 0
		return
	}
	positive := 0
	for _, p := range m.feedback {
		if p == domain.Positive {
			positive++
		}
	}
	m.positiveRate = int(math.Round(100 * float64(positive) / float64(total)))
}
