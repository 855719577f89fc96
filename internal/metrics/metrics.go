package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TransactionsCreated counts ledger entries by type and status.
	TransactionsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_transactions_created_total",
			Help: "Number of transactions created, by type and status",
		},
		[]string{"type", "status"},
	)

	// PointsMoved totals the absolute points credited and debited.
	PointsMoved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_points_moved_total",
			Help: "Total points moved through the ledger, by direction",
		},
		[]string{"direction"},
	)

	// PromotionUses counts consumed promotions by category.
	PromotionUses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_promotion_uses_total",
			Help: "Number of promotion applications, by promotion type",
		},
		[]string{"type"},
	)

	// OperationDuration tracks ledger operation latency.
	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ledger_operation_duration_seconds",
			Help:    "Duration of ledger operations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		},
		[]string{"operation", "status"},
	)
)

// RecordTransaction bumps the transaction counter and the moved-points
// totals for a freshly created ledger entry.
func RecordTransaction(txnType, status string, points int) {
	TransactionsCreated.WithLabelValues(txnType, status).Inc()
	if points >= 0 {
		PointsMoved.WithLabelValues("credit").Add(float64(points))
	} else {
		PointsMoved.WithLabelValues("debit").Add(float64(-points))
	}
}

// ObserveOperation records one timed ledger operation.
func ObserveOperation(operation, status string, seconds float64) {
	OperationDuration.WithLabelValues(operation, status).Observe(seconds)
}
