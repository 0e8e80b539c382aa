// Package metrics implements a securesql.Logger that records every executed
// statement in Prometheus collectors.
//
// Exposed series:
//
//   - securesql_statements_total{kind,status}: executed statements, status is
//     "ok" or "error".
//   - securesql_statement_duration_seconds{kind}: execution latency.
//   - securesql_cache_hits_total: SELECTs answered from the result cache.
//
// Statement text and bound values never become label values.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	securesql "github.com/biyonik/go-secure-sql"
)

const (
	statusOK    = "ok"
	statusError = "error"
)

var _ securesql.Logger = (*Logger)(nil)

// Logger, Execute kayıtlarını Prometheus sayaçlarına ve histogramına yazar.
type Logger struct {
	statements *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	cacheHits  prometheus.Counter
}

// NewLogger creates the collectors and registers them with reg. A nil reg
// registers nothing, which is handy when the caller gathers through
// Collectors instead.
func NewLogger(reg prometheus.Registerer) (*Logger, error) {
	l := &Logger{
		statements: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "securesql_statements_total",
				Help: "Total number of executed statements, partitioned by kind and status.",
			},
			[]string{"kind", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "securesql_statement_duration_seconds",
				Help:    "Statement execution latency in seconds, partitioned by kind.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		cacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "securesql_cache_hits_total",
				Help: "Total number of SELECT statements answered from the result cache.",
			},
		),
	}

	if reg == nil {
		return l, nil
	}
	for _, c := range l.Collectors() {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("metrics: register collector: %w", err)
		}
	}
	return l, nil
}

// Collectors returns every collector owned by the logger.
func (l *Logger) Collectors() []prometheus.Collector {
	return []prometheus.Collector{l.statements, l.duration, l.cacheHits}
}

// Log implements securesql.Logger.
func (l *Logger) Log(e securesql.Entry) {
	kind := e.Kind.String()

	status := statusOK
	if e.Err != nil {
		status = statusError
	}
	l.statements.WithLabelValues(kind, status).Inc()

	if e.Cached {
		l.cacheHits.Inc()
		return
	}
	l.duration.WithLabelValues(kind).Observe(e.Duration.Seconds())
}
