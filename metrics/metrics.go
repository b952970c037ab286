// Package metrics holds the Prometheus collectors shared across the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RPCRequests counts outbound RPC calls by method.
	RPCRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "soldash_rpc_requests_total",
			Help: "Outbound Solana RPC requests by method",
		},
		[]string{"method"},
	)

	// TxSubmitted counts transactions submitted by program.
	TxSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "soldash_tx_submitted_total",
			Help: "Transactions submitted by program",
		},
		[]string{"program"},
	)

	// TxFailed counts failed transaction submissions by program.
	TxFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "soldash_tx_failed_total",
			Help: "Failed transaction submissions by program",
		},
		[]string{"program"},
	)
)

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
