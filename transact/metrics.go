package transact

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var txResultCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "rippled",
	Subsystem: "transact",
	Name:      "results_total",
	Help:      "Special transactions processed, by kind and result.",
}, []string{"kind", "result"})

func observe(kind TxKind, res Result) {
	txResultCounter.WithLabelValues(kind.String(), res.String()).Inc()
}
