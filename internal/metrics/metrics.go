// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RPCRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "choretracker_rpc_requests_total",
		Help: "Total number of RPC calls, labelled by procedure and result code.",
	}, []string{"procedure", "code"})

	RPCDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "choretracker_rpc_duration_seconds",
		Help:    "RPC handling latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"procedure"})

	CostsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "choretracker_costs_created_total",
		Help: "Total number of costs recorded, labelled by split mode (even or manual).",
	}, []string{"mode"})

	SplitMismatches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "choretracker_split_mismatches_total",
		Help: "Total number of manual splits rejected because shares did not add up.",
	})

	UnrecognizedRepeatRules = promauto.NewCounter(prometheus.CounterOpts{
		Name: "choretracker_unrecognized_repeat_rules_total",
		Help: "Total number of stored events read with a malformed repeat rule.",
	})

	DigestMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "choretracker_digest_messages_total",
		Help: "Total number of daily digest messages, labelled by status.",
	}, []string{"status"})
)
