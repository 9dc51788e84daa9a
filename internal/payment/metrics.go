package payment

import "github.com/prometheus/client_golang/prometheus"

var (
	TenderRecomputeTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payment_tender_recompute_total",
			Help: "Number of tender summary recomputations",
		},
	)
	TenderCompleteTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_tender_complete_total",
			Help: "Tender completion attempts grouped by result code",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(TenderRecomputeTotal, TenderCompleteTotal)
}
