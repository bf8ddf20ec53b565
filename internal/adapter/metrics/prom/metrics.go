// Package prom exports handler outcomes as Prometheus counters.
package prom

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	outcomeSuccess  = "success"
	outcomeConflict = "conflict"
	outcomeFailure  = "failure"
)

type Metrics struct {
	registry *prometheus.Registry
	handled  *prometheus.CounterVec
}

// New builds a private registry so tests can create as many instances as they like.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return &Metrics{
		registry: reg,
		handled: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "doorhop_handler_total",
			Help: "Total number of transactional handler invocations by operation and outcome",
		}, []string{"op", "outcome"}),
	}
}

func (m *Metrics) RecordSuccess(op string) {
	m.handled.WithLabelValues(op, outcomeSuccess).Inc()
}

func (m *Metrics) RecordConflict(op string) {
	m.handled.WithLabelValues(op, outcomeConflict).Inc()
}

func (m *Metrics) RecordFailure(op string) {
	m.handled.WithLabelValues(op, outcomeFailure).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
