package api

import (
	"net/http"
	"parcel-route-service/internal/api/handlers"
	"parcel-route-service/internal/platform/obs"
	"parcel-route-service/internal/ports"
	"time"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// Times in query strings are read as a time of day on serviceDay. A nil
// metrics disables the /metrics endpoint.
func NewRouter(tracker ports.DeliveryTracker, serviceDay time.Time, metrics *obs.Metrics) http.Handler {
	mux := http.NewServeMux()

	pkgHandler := &handlers.PackageHandler{Tracker: tracker, Day: serviceDay}
	truckHandler := &handlers.TruckHandler{Tracker: tracker}
	healthHandler := &handlers.HealthHandler{Tracker: tracker}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/packages", pkgHandler.List)
	mux.HandleFunc("/packages/{id}", pkgHandler.Get)
	mux.HandleFunc("/trucks", truckHandler.List)
	mux.HandleFunc("/mileage", truckHandler.Mileage)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics.Handler())
	}

	return requestIDMiddleware(loggingMiddleware(metrics, mux))
}
