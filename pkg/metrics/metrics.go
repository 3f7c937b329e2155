package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	SalesRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shift_sales_recorded_total",
			Help: "Sales recorded in the active shift, by payment method",
		},
		[]string{"method"},
	)

	TransactionsDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shift_transactions_deleted_total",
			Help: "Transactions removed from the active shift",
		},
	)

	SessionsOpened = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shift_sessions_opened_total",
			Help: "Shift sessions started",
		},
	)

	SessionsClosed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shift_sessions_closed_total",
			Help: "Shift sessions closed and archived",
		},
	)
)

func Init() {
	prometheus.MustRegister(SalesRecorded, TransactionsDeleted, SessionsOpened, SessionsClosed)
}
