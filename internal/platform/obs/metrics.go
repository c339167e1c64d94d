package obs

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mediroute_http_requests_total",
		Help: "HTTP requests by path and status code",
	}, []string{"path", "status"})
	OperationDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mediroute_operation_duration_ms",
		Help:    "Duration of timed operations in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000, 5000},
	}, []string{"op"})
	PlaceSearchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mediroute_place_search_total",
		Help: "Upstream place searches by category and outcome (ok, empty, error)",
	}, []string{"category", "outcome"})
	CacheLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mediroute_cache_lookups_total",
		Help: "Place cache lookups by backend and result (hit, miss, error)",
	}, []string{"backend", "result"})
	SOSAlertsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mediroute_sos_alerts_total",
		Help: "SOS alerts by delivery outcome",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(OperationDurationMs)
	prometheus.MustRegister(PlaceSearchTotal)
	prometheus.MustRegister(CacheLookupsTotal)
	prometheus.MustRegister(SOSAlertsTotal)
}

// Handler exposes the registered metrics for scraping.
func Handler() http.Handler { return promhttp.Handler() }
