package prometheus

import (
	"strconv"
	"time"
)

type MetricsProvider struct{}

func NewPrometheusMetricsProvider() *MetricsProvider {
	return &MetricsProvider{}
}

func (m *MetricsProvider) IncrementHTTPRequests(method, path, status string) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
}

func (m *MetricsProvider) RecordHTTPRequestDuration(method, path string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncrementDatabaseQueries(queryType string, success bool) {
	DatabaseQueriesTotal.WithLabelValues(queryType, strconv.FormatBool(success)).Inc()
}

func (m *MetricsProvider) RecordDatabaseQueryDuration(queryType string, duration time.Duration) {
	DatabaseQueryDuration.WithLabelValues(queryType).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncrementStorageOperations(operation string, success bool) {
	StorageOperationsTotal.WithLabelValues(operation, strconv.FormatBool(success)).Inc()
}

func (m *MetricsProvider) RecordStorageOperationDuration(operation string, duration time.Duration) {
	StorageOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncrementCacheHits() {
	CacheHitsTotal.Inc()
}

func (m *MetricsProvider) IncrementCacheMisses() {
	CacheMissesTotal.Inc()
}

func (m *MetricsProvider) RecordCacheOperationDuration(operation string, duration time.Duration) {
	CacheOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncrementPostOperations(operation string, success bool) {
	PostOperationsTotal.WithLabelValues(operation, strconv.FormatBool(success)).Inc()
}

func (m *MetricsProvider) SetServiceHealth(healthy bool) {
	if healthy {
		ServiceHealth.Set(1)
	} else {
		ServiceHealth.Set(0)
	}
}
