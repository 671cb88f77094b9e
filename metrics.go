package rankfuse

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordRetrieve is called after each retrieve operation.
	// method is the retrieval method used, topK the requested result count,
	// duration the total time taken; err is nil if successful.
	RecordRetrieve(method string, topK int, duration time.Duration, err error)

	// RecordIndex is called after each lexical index rebuild.
	// count is the number of documents indexed.
	RecordIndex(count int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRetrieve(string, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordIndex(int, time.Duration, error)            {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	RetrieveCount      atomic.Int64
	RetrieveErrors     atomic.Int64
	RetrieveTotalNanos atomic.Int64
	IndexCount         atomic.Int64
	IndexDocuments     atomic.Int64
	IndexErrors        atomic.Int64
}

// RecordRetrieve implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRetrieve(method string, topK int, duration time.Duration, err error) {
	b.RetrieveCount.Add(1)
	b.RetrieveTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RetrieveErrors.Add(1)
	}
}

// RecordIndex implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIndex(count int, duration time.Duration, err error) {
	b.IndexCount.Add(1)
	b.IndexDocuments.Add(int64(count))
	if err != nil {
		b.IndexErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	stats := BasicMetricsStats{
		RetrieveCount:  b.RetrieveCount.Load(),
		RetrieveErrors: b.RetrieveErrors.Load(),
		IndexCount:     b.IndexCount.Load(),
		IndexDocuments: b.IndexDocuments.Load(),
		IndexErrors:    b.IndexErrors.Load(),
	}
	if stats.RetrieveCount > 0 {
		stats.RetrieveAvgNanos = b.RetrieveTotalNanos.Load() / stats.RetrieveCount
	}
	return stats
}

// BasicMetricsStats is a point-in-time snapshot of BasicMetricsCollector.
type BasicMetricsStats struct {
	RetrieveCount    int64
	RetrieveErrors   int64
	RetrieveAvgNanos int64
	IndexCount       int64
	IndexDocuments   int64
	IndexErrors      int64
}
