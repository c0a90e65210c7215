package discovery

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	queriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "events",
		Subsystem: "discovery",
		Name:      "queries_total",
		Help:      "Discovery queries by kind and outcome.",
	}, []string{"kind", "outcome"})

	resultSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "events",
		Subsystem: "discovery",
		Name:      "result_size",
		Help:      "Number of events returned per discovery query.",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
	}, []string{"kind"})

	geoDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "events",
		Subsystem: "discovery",
		Name:      "geo_filtered_total",
		Help:      "Events removed by the in-memory radius filter.",
	})
)
