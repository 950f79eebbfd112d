// Package metrics provides application-level metrics collection.
// This is a lightweight metrics foundation using atomic counters.
// For production observability, consider integrating with Prometheus or similar.
package metrics

import "sync/atomic"

// Metrics holds application metrics using atomic counters for thread safety.
type Metrics struct {
	validationsTotal   atomic.Int64
	validationsBlocked atomic.Int64

	submissionsTotal  atomic.Int64
	submissionsFailed atomic.Int64

	notificationsTotal atomic.Int64
}

// Global is the global metrics instance.
// Use this for recording metrics throughout the application.
//
//nolint:gochecknoglobals // Intentional global for metrics access
var Global = &Metrics{}

// RecordValidation records one validation pass and whether it blocked
// the transaction.
func (m *Metrics) RecordValidation(blocked bool) {
	m.validationsTotal.Add(1)
	if blocked {
		m.validationsBlocked.Add(1)
	}
}

// RecordSubmission records one terminal submission outcome.
func (m *Metrics) RecordSubmission(failed bool) {
	m.submissionsTotal.Add(1)
	if failed {
		m.submissionsFailed.Add(1)
	}
}

// RecordNotification records one user notification.
func (m *Metrics) RecordNotification() {
	m.notificationsTotal.Add(1)
}

// Stats is a point-in-time copy of all counters.
type Stats struct {
	ValidationsTotal   int64
	ValidationsBlocked int64
	SubmissionsTotal   int64
	SubmissionsFailed  int64
	NotificationsTotal int64
}

// Snapshot returns the current counter values.
func (m *Metrics) Snapshot() Stats {
	return Stats{
		ValidationsTotal:   m.validationsTotal.Load(),
		ValidationsBlocked: m.validationsBlocked.Load(),
		SubmissionsTotal:   m.submissionsTotal.Load(),
		SubmissionsFailed:  m.submissionsFailed.Load(),
		NotificationsTotal: m.notificationsTotal.Load(),
	}
}

// Reset zeroes all counters.
func (m *Metrics) Reset() {
	m.validationsTotal.Store(0)
	m.validationsBlocked.Store(0)
	m.submissionsTotal.Store(0)
	m.submissionsFailed.Store(0)
	m.notificationsTotal.Store(0)
}
