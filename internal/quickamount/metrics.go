package quickamount

import "github.com/prometheus/client_golang/prometheus"

var SuggestTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "quickamount_suggest_total",
		Help: "Quick amount suggestions computed, grouped by magnitude band",
	},
	[]string{"band"},
)

func init() {
	prometheus.MustRegister(SuggestTotal)
}
