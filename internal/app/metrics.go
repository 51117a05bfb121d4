package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	aggregationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orgcontributors_aggregations_total",
			Help: "Number of organization contributors aggregations by result",
		},
		[]string{"result"},
	)

	aggregationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "orgcontributors_aggregation_duration_seconds",
			Help:    "Duration of organization contributors aggregations",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
	)
)
