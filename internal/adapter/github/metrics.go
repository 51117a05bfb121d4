package github

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "orgcontributors_github_requests_total",
		Help: "Number of github api requests by endpoint and http status",
	},
	[]string{"endpoint", "status"},
)
