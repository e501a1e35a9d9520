package service

import (
	"sync/atomic"
	"time"

	"github.com/collabhub/project-match/internal/notifications/dispatch"
)

// Metrics tracks matching pass metrics
type Metrics struct {
	autoPasses        int64
	autoFailures      int64
	autoLatency       int64 // Total latency in nanoseconds
	candidatesFound   int64
	matchesDispatched int64
	notificationsSent int64
	notificationsDup  int64
	notificationsFail int64
	onDemandCalls     int64
	onDemandErrors    int64
}

// Snapshot is the JSON view of Metrics.
type Snapshot struct {
	AutoPasses           int64   `json:"auto_passes"`
	AutoFailures         int64   `json:"auto_failures"`
	AveragePassLatencyMs float64 `json:"average_pass_latency_ms"`
	CandidatesFound      int64   `json:"candidates_found"`
	MatchesDispatched    int64   `json:"matches_dispatched"`
	NotificationsSent    int64   `json:"notifications_sent"`
	NotificationsDup     int64   `json:"notifications_duplicate"`
	NotificationsFailed  int64   `json:"notifications_failed"`
	OnDemandCalls        int64   `json:"on_demand_calls"`
	OnDemandErrors       int64   `json:"on_demand_errors"`
}

var globalMetrics = &Metrics{}

// GetMetrics returns the current metrics snapshot
func GetMetrics() Metrics {
	return Metrics{
		autoPasses:        atomic.LoadInt64(&globalMetrics.autoPasses),
		autoFailures:      atomic.LoadInt64(&globalMetrics.autoFailures),
		autoLatency:       atomic.LoadInt64(&globalMetrics.autoLatency),
		candidatesFound:   atomic.LoadInt64(&globalMetrics.candidatesFound),
		matchesDispatched: atomic.LoadInt64(&globalMetrics.matchesDispatched),
		notificationsSent: atomic.LoadInt64(&globalMetrics.notificationsSent),
		notificationsDup:  atomic.LoadInt64(&globalMetrics.notificationsDup),
		notificationsFail: atomic.LoadInt64(&globalMetrics.notificationsFail),
		onDemandCalls:     atomic.LoadInt64(&globalMetrics.onDemandCalls),
		onDemandErrors:    atomic.LoadInt64(&globalMetrics.onDemandErrors),
	}
}

// ResetMetrics resets all metrics (useful for testing)
func ResetMetrics() {
	atomic.StoreInt64(&globalMetrics.autoPasses, 0)
	atomic.StoreInt64(&globalMetrics.autoFailures, 0)
	atomic.StoreInt64(&globalMetrics.autoLatency, 0)
	atomic.StoreInt64(&globalMetrics.candidatesFound, 0)
	atomic.StoreInt64(&globalMetrics.matchesDispatched, 0)
	atomic.StoreInt64(&globalMetrics.notificationsSent, 0)
	atomic.StoreInt64(&globalMetrics.notificationsDup, 0)
	atomic.StoreInt64(&globalMetrics.notificationsFail, 0)
	atomic.StoreInt64(&globalMetrics.onDemandCalls, 0)
	atomic.StoreInt64(&globalMetrics.onDemandErrors, 0)
}

// recordAutoPass records one automatic matching pass
func recordAutoPass(duration time.Duration, candidates int, err error) {
	atomic.AddInt64(&globalMetrics.autoPasses, 1)
	atomic.AddInt64(&globalMetrics.autoLatency, duration.Nanoseconds())
	atomic.AddInt64(&globalMetrics.candidatesFound, int64(candidates))
	if err != nil {
		atomic.AddInt64(&globalMetrics.autoFailures, 1)
	}
}

func recordDispatch(rep dispatch.Report) {
	atomic.AddInt64(&globalMetrics.matchesDispatched, 1)
	atomic.AddInt64(&globalMetrics.notificationsSent, int64(rep.Sent))
	atomic.AddInt64(&globalMetrics.notificationsDup, int64(rep.Duplicates))
	atomic.AddInt64(&globalMetrics.notificationsFail, int64(rep.Failed))
}

// recordOnDemandCall records an ai-matching request
func recordOnDemandCall(err error) {
	atomic.AddInt64(&globalMetrics.onDemandCalls, 1)
	if err != nil {
		atomic.AddInt64(&globalMetrics.onDemandErrors, 1)
	}
}

// AveragePassLatency returns the average latency in milliseconds
func (m Metrics) AveragePassLatency() float64 {
	if m.autoPasses == 0 {
		return 0
	}
	avgNs := float64(m.autoLatency) / float64(m.autoPasses)
	return avgNs / 1e6 // Convert nanoseconds to milliseconds
}

func (m Metrics) Snapshot() Snapshot {
	return Snapshot{
		AutoPasses:           m.autoPasses,
		AutoFailures:         m.autoFailures,
		AveragePassLatencyMs: m.AveragePassLatency(),
		CandidatesFound:      m.candidatesFound,
		MatchesDispatched:    m.matchesDispatched,
		NotificationsSent:    m.notificationsSent,
		NotificationsDup:     m.notificationsDup,
		NotificationsFailed:  m.notificationsFail,
		OnDemandCalls:        m.onDemandCalls,
		OnDemandErrors:       m.onDemandErrors,
	}
}
