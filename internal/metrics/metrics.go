package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ledgerOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_operations_total",
			Help: "Total number of ledger operations by operation and status",
		},
		[]string{"operation", "status"},
	)

	ledgerOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ledger_operation_duration_milliseconds",
			Help:    "Ledger operation duration in milliseconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 14),
		},
		[]string{"operation"},
	)

	transferAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "transfer_amount",
			Help:    "Transfer amount in account currency units",
			Buckets: prometheus.ExponentialBuckets(1, 10, 8),
		},
	)

	accountsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "accounts_total",
			Help: "Current number of open accounts in the ledger",
		},
	)
)

// RecordOperation counts one ledger operation outcome
func RecordOperation(operation, status string) {
	ledgerOperationsTotal.WithLabelValues(operation, status).Inc()
}

// ObserveDuration records how long a ledger operation took
func ObserveDuration(operation string, d time.Duration) {
	ledgerOperationDuration.WithLabelValues(operation).Observe(float64(d.Microseconds()) / 1000.0)
}

// ObserveTransferAmount records the amount moved by a completed transfer
func ObserveTransferAmount(amount float64) {
	transferAmount.Observe(amount)
}

// SetAccountsTotal updates the open-accounts gauge
func SetAccountsTotal(n int) {
	accountsTotal.Set(float64(n))
}
