package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"parcel-route-service/internal/domain"
)

// Initialize the Postgres database schema.
func InitSQLSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`
	CREATE TABLE IF NOT EXISTS packages (
		package_id INTEGER PRIMARY KEY,
		address TEXT NOT NULL,
		city TEXT NOT NULL DEFAULT '',
		state TEXT NOT NULL DEFAULT '',
		zip TEXT NOT NULL DEFAULT '',
		deadline TEXT NOT NULL DEFAULT '',
		weight TEXT NOT NULL DEFAULT '',
		truck_id INTEGER,
		departed_at TIMESTAMPTZ,
		delivered_at TIMESTAMPTZ
	);
	`,
		`
	CREATE INDEX IF NOT EXISTS idx_packages_truck_id
	ON packages(truck_id);
	`,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the Postgres packages table, replacing rows with the same ID.
func SeedSQLPackages(ctx context.Context, db *sql.DB, pkgs []*domain.Package) error {
	if err := upsertSQL(ctx, db, pkgs); err != nil {
		return fmt.Errorf("seed packages: %w", err)
	}
	return nil
}

func upsertSQL(ctx context.Context, db *sql.DB, pkgs []*domain.Package) error {
	if db == nil {
		return errors.New("DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO packages (package_id, address, city, state, zip, deadline, weight, truck_id, departed_at, delivered_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (package_id) DO UPDATE
	SET address = EXCLUDED.address,
		city = EXCLUDED.city,
		state = EXCLUDED.state,
		zip = EXCLUDED.zip,
		deadline = EXCLUDED.deadline,
		weight = EXCLUDED.weight,
		truck_id = EXCLUDED.truck_id,
		departed_at = EXCLUDED.departed_at,
		delivered_at = EXCLUDED.delivered_at;
	`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, p := range pkgs {
		if p.PackageID <= 0 {
			return fmt.Errorf("invalid package_id=%d", p.PackageID)
		}

		_, err := stmt.ExecContext(ctx,
			p.PackageID, p.Address, p.City, p.State, p.Zip, p.Deadline, p.Weight,
			nullTruck(p.TruckID), nullTime(p.DepartedAt), nullTime(p.DeliveredAt),
		)
		if err != nil {
			return fmt.Errorf("upsert package_id=%d: %w", p.PackageID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}
