// Copyright (C) 2026 The odata Authors. All Rights Reserved.

package odata

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus collectors a Writer reports to, if any. The
// engine never reaches into prometheus.DefaultRegisterer itself — the
// caller builds a Metrics with its own registerer (mirroring
// containerd-containerd's pattern of accepting a registerer rather than
// assuming a global one, which keeps the engine embeddable in a process
// that already owns its own registry).
type Metrics struct {
	resourcesWritten prometheus.Counter
	scopesPushed     prometheus.Counter
	currentDepth     prometheus.Gauge
	errorsByCode     *prometheus.CounterVec
}

// NewMetrics builds a Metrics and registers its collectors with reg.
// namespace and subsystem follow the usual Prometheus naming convention,
// e.g. NewMetrics(reg, "myapp", "odata_writer").
func NewMetrics(reg prometheus.Registerer, namespace, subsystem string) *Metrics {
	m := &Metrics{
		resourcesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "resources_written_total",
			Help: "Total number of resources written across all resource sets.",
		}),
		scopesPushed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "scopes_pushed_total",
			Help: "Total number of scopes pushed onto the writer's nesting stack.",
		}),
		currentDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "scope_depth",
			Help: "Current depth of the writer's nesting stack.",
		}),
		errorsByCode: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "errors_total",
			Help: "Total number of errors by code, counted the moment a writer enters StateError.",
		}, []string{"code"}),
	}
	reg.MustRegister(m.resourcesWritten, m.scopesPushed, m.currentDepth, m.errorsByCode)
	return m
}

func (m *Metrics) observePush(s State) {
	if m == nil {
		return
	}
	m.scopesPushed.Inc()
	if s == StateResource || s == StateDeletedResource {
		m.resourcesWritten.Inc()
	}
}

func (m *Metrics) observeDepth(depth int) {
	if m == nil {
		return
	}
	m.currentDepth.Set(float64(depth))
}

func (m *Metrics) observeError(code ErrorCode) {
	if m == nil {
		return
	}
	m.errorsByCode.WithLabelValues(errorCodeLabel(code)).Inc()
}
