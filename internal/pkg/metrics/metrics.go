// Package metrics holds the Prometheus counters of the attendance workflow.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "attendance"

type Metrics struct {
	CheckIns             prometheus.Counter
	CheckOuts            prometheus.Counter
	ValidationFailures   *prometheus.CounterVec
	AuthorizationDenials *prometheus.CounterVec
}

// NewPrometheusMetrics creates the counters and registers them with reg.
func NewPrometheusMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		CheckIns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "check_ins_total",
			Help:      "Successful employee check-ins.",
		}),
		CheckOuts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "check_outs_total",
			Help:      "Successful employee check-outs.",
		}),
		ValidationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Attendance writes rejected by the interval validator, by error kind.",
		}, []string{"kind"}),
		AuthorizationDenials: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "authorization_denials_total",
			Help: "Requests denied by the authorization policy, by action.",
		}, []string{"action"}),
	}

	for _, c := range []prometheus.Collector{m.CheckIns, m.CheckOuts, m.ValidationFailures, m.AuthorizationDenials} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// NewNop returns counters that are not registered anywhere. Useful in tests
// and in commands that never expose /metrics.
func NewNop() *Metrics {
	m, _ := NewPrometheusMetrics(prometheus.NewRegistry())
	return m
}

func (m *Metrics) RecordCheckIn() {
	m.CheckIns.Inc()
}

func (m *Metrics) RecordCheckOut() {
	m.CheckOuts.Inc()
}

// RecordValidationFailure counts every kind once per rejected write.
func (m *Metrics) RecordValidationFailure(kinds ...string) {
	seen := make(map[string]bool, len(kinds))
	for _, kind := range kinds {
		if seen[kind] {
			continue
		}
		seen[kind] = true
		m.ValidationFailures.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) RecordAuthorizationDenial(action string) {
	m.AuthorizationDenials.WithLabelValues(action).Inc()
}
