package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"parcel-route-service/internal/app"
	"parcel-route-service/internal/cli"
	"parcel-route-service/internal/config"
	"parcel-route-service/internal/platform/obs"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// main runs the interactive tracker. The menu is written to stdout; logs go
// to stderr and LOG_FILE.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logs := obs.SetupLogging(obs.LogConfig{File: cfg.LogFile, MaxSizeMB: 50, MaxBackups: 5, MaxAgeDays: 14})
	defer logs.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	storage, err := app.OpenStorage(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer storage.Close()

	fmt.Println("Loading package and truck information... Please wait.")

	depot, err := app.BuildDepot(ctx, cfg, storage.Packages, nil)
	if err != nil {
		log.Fatal(err)
	}

	tracker := &cli.Tracker{Depot: depot, Day: cfg.ServiceDate, In: os.Stdin, Out: os.Stdout}
	if err := tracker.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal(err)
	}
}
