package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"parcel-route-service/internal/adapters/csvdata"
	"parcel-route-service/internal/adapters/repositories"
	"parcel-route-service/internal/config"
	"parcel-route-service/internal/domain"
	"parcel-route-service/internal/platform/db"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.OpenDriver(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	pkgs, err := csvdata.LoadPackages(cfg.PackagesCSV)
	if err != nil {
		log.Fatal(err)
	}

	if err := initAndSeed(context.Background(), cfg.DBDriver, conn, pkgs); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(ctx context.Context, driver string, conn *sql.DB, pkgs []*domain.Package) error {
	initSchema, seed := repositories.InitSQLSchema, repositories.SeedSQLPackages
	if driver == "sqlite" {
		initSchema, seed = repositories.InitSchema, repositories.SeedPackages
	}

	log.Printf("Initializing database schema driver=%s...", driver)
	if err := initSchema(ctx, conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Println("Schema ready.")

	log.Printf("Seeding database packages=%d...", len(pkgs))
	if err := seed(ctx, conn, pkgs); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	log.Println("Seeding complete.")

	return nil
}
