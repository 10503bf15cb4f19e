package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	TokensHeld = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "scanner_tokens_held",
		Help: "Reconciled token entries currently held",
	})

	TotalRows = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "scanner_total_rows",
		Help: "Server-reported row count for the active filter set",
	})

	WSMessages = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scanner_ws_messages_total",
		Help: "Inbound websocket messages by event",
	}, []string{"event"})

	WSErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scanner_ws_errors_total",
		Help: "Websocket read/decode failures",
	})

	FetchErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scanner_fetch_errors_total",
		Help: "Failed REST page fetches",
	})

	FetchLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "scanner_fetch_latency_seconds",
		Help:    "Time to fetch one scanner page",
		Buckets: prometheus.DefBuckets,
	})

	SubEvictions = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scanner_sub_evictions_total",
		Help: "Pair subscriptions evicted from the bounded tracker",
	})
)

func init() {
	prometheus.MustRegister(
		TokensHeld,
		TotalRows,
		WSMessages,
		WSErrors,
		FetchErrors,
		FetchLatency,
		SubEvictions,
	)
}
