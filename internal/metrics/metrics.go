// Package metrics exposes account lifecycle counters and the HTTP endpoints
// that serve them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dtroode/texcode-accounts/internal/model"
)

var _ model.Recorder = (*Metrics)(nil)

// Metrics holds the account lifecycle counters.
type Metrics struct {
	Authentications  *prometheus.CounterVec
	Registrations    *prometheus.CounterVec
	ResetRequests    *prometheus.CounterVec
	DispatchFailures prometheus.Counter
	SweptResetTokens prometheus.Counter
}

// NewMetrics creates and registers the counters on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Authentications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "accounts_authentications_total",
				Help: "Total number of authentication attempts by outcome",
			},
			[]string{"outcome"},
		),
		Registrations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "accounts_registrations_total",
				Help: "Total number of registration requests by outcome",
			},
			[]string{"outcome"},
		),
		ResetRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "accounts_reset_requests_total",
				Help: "Total number of forgot-password requests by outcome",
			},
			[]string{"outcome"},
		),
		DispatchFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "accounts_email_dispatch_failures_total",
				Help: "Total number of emails that could not be dispatched",
			},
		),
		SweptResetTokens: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "accounts_reset_tokens_swept_total",
				Help: "Total number of expired reset tokens cleared",
			},
		),
	}

	reg.MustRegister(m.Authentications)
	reg.MustRegister(m.Registrations)
	reg.MustRegister(m.ResetRequests)
	reg.MustRegister(m.DispatchFailures)
	reg.MustRegister(m.SweptResetTokens)

	return m
}

func (m *Metrics) Authentication(success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.Authentications.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Registration(outcome model.RegisterOutcome) {
	m.Registrations.WithLabelValues(outcome.String()).Inc()
}

func (m *Metrics) ResetRequest(kind model.ResetOutcomeKind) {
	m.ResetRequests.WithLabelValues(kind.String()).Inc()
}

func (m *Metrics) DispatchFailure() {
	m.DispatchFailures.Inc()
}

// ResetTokensSwept adds n cleared reset tokens.
func (m *Metrics) ResetTokensSwept(n int64) {
	if n > 0 {
		m.SweptResetTokens.Add(float64(n))
	}
}
