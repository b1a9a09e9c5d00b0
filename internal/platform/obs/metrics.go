package obs

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is a private Prometheus registry with the service's collectors.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	TruckMiles          *prometheus.GaugeVec
	TruckStops          *prometheus.GaugeVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{registry: reg}

	m.HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_server_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	m.HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_server_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	m.TruckMiles = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "parcel_truck_route_miles",
		Help: "Planned route length per truck in miles",
	}, []string{"truck_id"})

	m.TruckStops = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "parcel_truck_route_stops",
		Help: "Number of deliveries on each truck's route",
	}, []string{"truck_id"})

	reg.MustRegister(m.HTTPRequestsTotal, m.HTTPRequestDuration, m.TruckMiles, m.TruckStops)
	return m
}

// Record the outcome of one routed truck.
func (m *Metrics) ObserveRoute(truckID int, miles float64, stops int) {
	if m == nil {
		return
	}
	id := strconv.Itoa(truckID)
	m.TruckMiles.WithLabelValues(id).Set(miles)
	m.TruckStops.WithLabelValues(id).Set(float64(stops))
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
