package diagnostics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counters for failures the engine swallows on purpose. The display path
// never surfaces these to the user; this is the only place they stay
// observable.
var (
	PollFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trafficviz_poll_failures_total",
		Help: "Live-data polls that failed and were silently dropped.",
	})
	PollStaleDiscards = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trafficviz_poll_stale_discards_total",
		Help: "Live-data responses discarded by the monotonic sequence guard.",
	})
	PollApplied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trafficviz_poll_applied_total",
		Help: "Live-data snapshots applied and published to subscribers.",
	})
	RouteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trafficviz_route_failures_total",
		Help: "Route requests that failed; the prior route overlay is kept.",
	})
	RouteStaleDiscards = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trafficviz_route_stale_discards_total",
		Help: "Route responses dropped because the selection changed in flight.",
	})
	GeolocationMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trafficviz_geolocation_misses_total",
		Help: "Geolocation picks farther than the snap radius from every node.",
	})
)

// Handler exposes the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
