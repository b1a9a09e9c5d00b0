package main

import (
	"context"
	"log"
	"net/http"
	"parcel-route-service/internal/api"
	"parcel-route-service/internal/app"
	"parcel-route-service/internal/config"
	"parcel-route-service/internal/platform/obs"
	"parcel-route-service/internal/services"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It loads the service day, routes every truck once, publishes the schedule and
// serves the read-only reporting API.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logs := obs.SetupLogging(obs.LogConfig{File: cfg.LogFile, MaxSizeMB: 50, MaxBackups: 5, MaxAgeDays: 14})
	defer logs.Close()

	ctx := context.Background()

	storage, err := app.OpenStorage(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer storage.Close()

	metrics := obs.NewMetrics()

	// A failed routing run is fatal: there is no partial schedule to serve.
	depot, err := app.BuildDepot(ctx, cfg, storage.Packages, metrics)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("routing complete total_miles=%.1f", depot.TotalMileage())

	if err := services.PublishSchedule(ctx, depot, storage.Sinks...); err != nil {
		log.Fatal(err)
	}

	router := api.NewRouter(depot, cfg.ServiceDate, metrics)

	log.Printf("Server listening addr=:%s", cfg.Port)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
