package numpad

import "github.com/prometheus/client_golang/prometheus"

var RejectedKeysTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "numpad_rejected_keys_total",
		Help: "Keypad input rejected by the buffer, grouped by reason",
	},
	[]string{"reason"},
)

func init() {
	prometheus.MustRegister(RejectedKeysTotal)
}
