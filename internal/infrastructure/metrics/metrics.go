package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Ledger collects loan ledger metrics on its own registry so tests can build
// as many as they need.
type Ledger struct {
	Registry *prometheus.Registry

	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	transfers  *prometheus.CounterVec
}

func NewLedger() *Ledger {
	m := &Ledger{
		Registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "loan_ledger_operations_total",
			Help: "Lifecycle operations by name and outcome.",
		}, []string{"op", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "loan_ledger_operation_duration_seconds",
			Help:    "Time spent in lifecycle operations, lock wait included.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
		transfers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "loan_ledger_transfers_total",
			Help: "Custody transfers committed, by reason.",
		}, []string{"reason"}),
	}
	m.Registry.MustRegister(
		m.operations,
		m.duration,
		m.transfers,
		collectors.NewGoCollector(),
	)
	return m
}

// ObserveOperation records one call; kind is empty on success.
func (m *Ledger) ObserveOperation(op, kind string, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := "ok"
	if kind != "" {
		outcome = kind
	}
	m.operations.WithLabelValues(op, outcome).Inc()
	m.duration.WithLabelValues(op).Observe(elapsed.Seconds())
}

func (m *Ledger) ObserveTransfer(reason string) {
	if m == nil {
		return
	}
	if reason == "" {
		reason = "unknown"
	}
	m.transfers.WithLabelValues(reason).Inc()
}
