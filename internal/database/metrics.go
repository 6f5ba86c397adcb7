// file: internal/database/metrics.go
package database

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Metrics accumulates query counters for the lifetime of the process.
type Metrics struct {
	mu sync.Mutex

	queryCount     int64
	errorCount     int64
	slowQueryCount int64
	totalDuration  time.Duration
	byKind         map[string]int64

	slowThreshold time.Duration
	logger        *zap.Logger
}

// MetricsSnapshot is a point-in-time copy of the accumulated metrics.
type MetricsSnapshot struct {
	Timestamp        time.Time        `json:"timestamp"`
	QueryCount       int64            `json:"query_count"`
	ErrorCount       int64            `json:"error_count"`
	SlowQueryCount   int64            `json:"slow_query_count"`
	AvgQueryDuration time.Duration    `json:"avg_query_duration"`
	QueriesByKind    map[string]int64 `json:"queries_by_kind"`
}

// NewMetrics creates a metrics collector.
func NewMetrics(logger *zap.Logger) *Metrics {
	return &Metrics{
		byKind:        make(map[string]int64),
		slowThreshold: 100 * time.Millisecond,
		logger:        logger,
	}
}

// RecordQuery records one query execution.
func (m *Metrics) RecordQuery(kind string, duration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.queryCount++
	m.totalDuration += duration
	m.byKind[kind]++

	if err != nil {
		m.errorCount++
	}
	if duration > m.slowThreshold {
		m.slowQueryCount++
	}
}

// Snapshot returns a copy of the current counters.
func (m *Metrics) Snapshot() *MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	byKind := make(map[string]int64, len(m.byKind))
	for k, v := range m.byKind {
		byKind[k] = v
	}

	snapshot := &MetricsSnapshot{
		Timestamp:      time.Now(),
		QueryCount:     m.queryCount,
		ErrorCount:     m.errorCount,
		SlowQueryCount: m.slowQueryCount,
		QueriesByKind:  byKind,
	}
	if m.queryCount > 0 {
		snapshot.AvgQueryDuration = m.totalDuration / time.Duration(m.queryCount)
	}
	return snapshot
}
