package rpcclient

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics for request monitoring.
var (
	//requestsTotal prometheus metric.
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Help:      "Number of RPC requests sent by method",
			Name:      "rpc_requests_total",
			Namespace: "neotxkit",
		},
		[]string{"method"},
	)
	//failedRequestsTotal prometheus metric.
	failedRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Help:      "Number of failed RPC requests by method",
			Name:      "rpc_failed_requests_total",
			Namespace: "neotxkit",
		},
		[]string{"method"},
	)
)

func init() {
	prometheus.MustRegister(
		requestsTotal,
		failedRequestsTotal,
	)
}
