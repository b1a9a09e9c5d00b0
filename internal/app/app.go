// Package app assembles the adapters named by the configuration into a routed
// Depot. It is shared by the server and tracker composition roots.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"parcel-route-service/internal/adapters/cache"
	"parcel-route-service/internal/adapters/csvdata"
	"parcel-route-service/internal/adapters/distance"
	"parcel-route-service/internal/adapters/repositories"
	"parcel-route-service/internal/config"
	"parcel-route-service/internal/platform/db"
	"parcel-route-service/internal/platform/obs"
	"parcel-route-service/internal/ports"
	"parcel-route-service/internal/services"

	"github.com/redis/go-redis/v9"
)

// Storage holds the package source and the destinations for the computed schedule.
type Storage struct {
	Packages ports.PackageRepository
	Sinks    []ports.ScheduleSink

	closers []func() error
}

// Open the package source and schedule sinks named by cfg. Packages come from
// the database when DATABASE_URL is set and from the package CSV otherwise.
func OpenStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	s := &Storage{Packages: csvdata.NewCSVPackageRepository(cfg.PackagesCSV)}

	if cfg.DatabaseURL != "" {
		conn, err := db.OpenDriver(cfg.DBDriver, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open storage: %w", err)
		}
		s.closers = append(s.closers, conn.Close)

		repo, err := openRepository(ctx, cfg.DBDriver, conn)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("open storage: %w", err)
		}
		s.Packages = repo
		s.Sinks = append(s.Sinks, repo)
		log.Printf("storage: packages from %s database", cfg.DBDriver)
	}

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		s.closers = append(s.closers, client.Close)

		if err := client.Ping(ctx).Err(); err != nil {
			s.Close()
			return nil, fmt.Errorf("open storage: ping redis %q: %w", cfg.RedisAddr, err)
		}
		s.Sinks = append(s.Sinks, cache.NewRedisScheduleCache(client, cfg.RedisPrefix, cfg.RedisTTL))
		log.Printf("storage: publishing schedule to redis addr=%s prefix=%s", cfg.RedisAddr, cfg.RedisPrefix)
	}

	return s, nil
}

type packageRepository interface {
	ports.PackageRepository
	ports.ScheduleSink
}

func openRepository(ctx context.Context, driver string, conn *sql.DB) (packageRepository, error) {
	switch driver {
	case "sqlite":
		if err := repositories.InitSchema(ctx, conn); err != nil {
			return nil, err
		}
		return repositories.NewSqlitePackageRepository(conn), nil
	case "pgx", "postgres":
		if err := repositories.InitSQLSchema(ctx, conn); err != nil {
			return nil, err
		}
		return repositories.NewSQLPackageRepository(conn), nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
}

// Close releases every connection opened by OpenStorage.
func (s *Storage) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	s.closers = nil
	return errors.Join(errs...)
}

// Load packages, addresses and distances, build the fleet and route it.
func BuildDepot(
	ctx context.Context,
	cfg *config.Config,
	repo ports.PackageRepository,
	metrics *obs.Metrics,
) (_ *services.Depot, err error) {
	defer obs.Time(ctx, "app.BuildDepot")(&err)

	pkgs, err := repo.ListPackages(ctx)
	if err != nil {
		return nil, fmt.Errorf("build depot: %w", err)
	}

	addresses, err := csvdata.LoadAddresses(cfg.AddressesCSV)
	if err != nil {
		return nil, fmt.Errorf("build depot: %w", err)
	}

	matrix, err := csvdata.LoadDistances(cfg.DistancesCSV)
	if err != nil {
		return nil, fmt.Errorf("build depot: %w", err)
	}

	trucks, err := config.BuildTrucks(cfg.Fleet, cfg.HubAddress, cfg.ServiceDate)
	if err != nil {
		return nil, fmt.Errorf("build depot: %w", err)
	}

	log.Printf("depot: packages=%d addresses=%d trucks=%d", len(pkgs), len(addresses), len(trucks))

	d := services.NewDepot(
		services.NewPackageStore(pkgs),
		distance.NewMatrixOracle(addresses, matrix),
		trucks,
		services.WithReturnToStart(cfg.ReturnToHub),
		services.WithMetrics(metrics),
	)
	if err := d.Run(ctx); err != nil {
		return nil, fmt.Errorf("build depot: %w", err)
	}

	return d, nil
}
