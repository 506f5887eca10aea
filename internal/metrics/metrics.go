// Package metrics provides Prometheus metrics for the dialogue.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Session termination reasons.
const (
	ReasonCancelled      = "cancelled"
	ReasonCompleted      = "completed"
	ReasonRetryExhausted = "retry_exhausted"
	ReasonRegisterFailed = "register_failed"
	ReasonPersistFailed  = "persist_failed"
	ReasonInternalError  = "internal_error"
	ReasonIdleEvicted    = "idle_evicted"
)

// Metrics holds the dialogue counters. A nil *Metrics records nothing.
type Metrics struct {
	MessagesTotal       prometheus.Counter
	IntentsTotal        *prometheus.CounterVec
	SessionsEndedTotal  *prometheus.CounterVec
	EscalationsTotal    *prometheus.CounterVec
	RegistrationsTotal  prometheus.Counter
	RecordsSavedTotal   prometheus.Counter
	ActiveSessionsGauge prometheus.GaugeFunc
}

// New creates the metrics and registers them on reg.
// activeSessions is sampled on every scrape.
func New(reg prometheus.Registerer, activeSessions func() int) *Metrics {
	f := promauto.With(reg)
	m := &Metrics{
		MessagesTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "intakebot_messages_total",
			Help: "Total number of inbound text messages handled",
		}),
		IntentsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "intakebot_intents_total",
			Help: "Inbound messages by classified command intent",
		}, []string{"intent"}),
		SessionsEndedTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "intakebot_sessions_ended_total",
			Help: "Sessions removed from the store by reason",
		}, []string{"reason"}),
		EscalationsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "intakebot_escalations_total",
			Help: "Escalation messages sent by reason",
		}, []string{"reason"}),
		RegistrationsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "intakebot_registrations_total",
			Help: "Requester registrations written",
		}),
		RecordsSavedTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "intakebot_records_saved_total",
			Help: "Consultation records persisted",
		}),
	}
	if activeSessions != nil {
		m.ActiveSessionsGauge = f.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "intakebot_active_sessions",
			Help: "Sessions currently held in memory",
		}, func() float64 { return float64(activeSessions()) })
	}
	return m
}

func (m *Metrics) Message() {
	if m == nil {
		return
	}
	m.MessagesTotal.Inc()
}

func (m *Metrics) Intent(name string) {
	if m == nil {
		return
	}
	m.IntentsTotal.WithLabelValues(name).Inc()
}

func (m *Metrics) SessionEnded(reason string) {
	if m == nil {
		return
	}
	m.SessionsEndedTotal.WithLabelValues(reason).Inc()
}

func (m *Metrics) Escalation(reason string) {
	if m == nil {
		return
	}
	m.EscalationsTotal.WithLabelValues(reason).Inc()
}

func (m *Metrics) Registration() {
	if m == nil {
		return
	}
	m.RegistrationsTotal.Inc()
}

func (m *Metrics) RecordSaved() {
	if m == nil {
		return
	}
	m.RecordsSavedTotal.Inc()
}
