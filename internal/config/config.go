package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process configuration, read once at startup.
type Config struct {
	PackagesCSV  string
	AddressesCSV string
	DistancesCSV string

	HubAddress  string
	ServiceDate time.Time
	ReturnToHub bool
	Fleet       []TruckConfig

	Port string

	// DBDriver selects "sqlite" or "pgx"; an empty DatabaseURL disables the database.
	DBDriver    string
	DatabaseURL string

	// An empty RedisAddr disables schedule publishing.
	RedisAddr   string
	RedisPrefix string
	RedisTTL    time.Duration

	LogFile string
}

// Return the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads an optional .env file and builds the configuration from the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg := &Config{
		PackagesCSV:  Get("PACKAGES_CSV", "data/packages.csv"),
		AddressesCSV: Get("ADDRESSES_CSV", "data/addresses.csv"),
		DistancesCSV: Get("DISTANCES_CSV", "data/distances.csv"),
		HubAddress:   Get("HUB_ADDRESS", "4001 South 700 East"),
		Port:         Get("PORT", "8080"),
		DBDriver:     Get("DB_DRIVER", "sqlite"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		RedisPrefix:  Get("REDIS_PREFIX", "parcel"),
		LogFile:      os.Getenv("LOG_FILE"),
	}

	var err error
	if cfg.ServiceDate, err = serviceDate(Get("SERVICE_DATE", "")); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cfg.ReturnToHub, err = strconv.ParseBool(Get("RETURN_TO_HUB", "false")); err != nil {
		return nil, fmt.Errorf("load config: RETURN_TO_HUB: %w", err)
	}

	if cfg.RedisTTL, err = time.ParseDuration(Get("REDIS_TTL", "24h")); err != nil {
		return nil, fmt.Errorf("load config: REDIS_TTL: %w", err)
	}

	cfg.Fleet = DefaultFleet()
	if path := strings.TrimSpace(os.Getenv("FLEET_PATH")); path != "" {
		if cfg.Fleet, err = LoadFleet(path); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	return cfg, nil
}

// serviceDate parses a YYYY-MM-DD day in local time; empty means today.
func serviceDate(s string) (time.Time, error) {
	if s == "" {
		y, m, d := time.Now().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.Local), nil
	}

	t, err := time.ParseInLocation(time.DateOnly, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("SERVICE_DATE %q: %w", s, err)
	}
	return t, nil
}
