// Package metrics exposes Prometheus collectors for the auth pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// AuthMetrics counts authentication attempts per provider and outcome.
type AuthMetrics struct {
	attempts *prometheus.CounterVec
}

// NewAuthMetrics registers the collectors on reg.
func NewAuthMetrics(reg prometheus.Registerer) *AuthMetrics {
	m := &AuthMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fbauth",
			Name:      "authentication_attempts_total",
			Help:      "Authentication attempts by provider and result.",
		}, []string{"provider", "result"}),
	}
	reg.MustRegister(m.attempts)
	return m
}

// ObserveAttempt implements auth.AttemptRecorder.
func (m *AuthMetrics) ObserveAttempt(provider, result string) {
	m.attempts.WithLabelValues(provider, result).Inc()
}
