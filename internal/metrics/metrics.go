// Package metrics exposes ledger operation counters to Prometheus.
package metrics

import (
	"github.com/SscSPs/envelope_budget/internal/apperrors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

const namespace = "envelope_budget"

// Recorder counts facade operations. A nil *Recorder records nothing.
type Recorder struct {
	operations  *prometheus.CounterVec
	failures    *prometheus.CounterVec
	transferred prometheus.Counter
}

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Ledger operations by name.",
		}, []string{"operation"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_failures_total",
			Help:      "Failed ledger operations by name and error code.",
		}, []string{"operation", "code"}),
		transferred: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "funds_transferred_total",
			Help:      "Sum of amounts moved between categories.",
		}),
	}
	reg.MustRegister(r.operations, r.failures, r.transferred)
	return r
}

// Observe counts one operation and, when err is set, its failure code.
func (r *Recorder) Observe(operation string, err error) {
	if r == nil {
		return
	}
	r.operations.WithLabelValues(operation).Inc()
	if err != nil {
		r.failures.WithLabelValues(operation, string(apperrors.CodeOf(err))).Inc()
	}
}

// Transferred adds a committed transfer amount.
func (r *Recorder) Transferred(amount decimal.Decimal) {
	if r == nil {
		return
	}
	f, _ := amount.Float64()
	r.transferred.Add(f)
}
