package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// WsConnections counts currently open websocket connections.
	WsConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "edustream_ws_connections",
		Help: "Open websocket connections.",
	})

	// WsEvents counts inbound room events by event name.
	WsEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "edustream_ws_events_total",
		Help: "Inbound websocket events.",
	}, []string{"event"})

	// WsEventErrors counts rejected events by event name.
	WsEventErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "edustream_ws_event_errors_total",
		Help: "Rejected websocket events.",
	}, []string{"event"})
)

// Handler exposes Prometheus metrics at /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
