package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"parcel-route-service/internal/domain"
	"time"
)

// SQLite-backed implementation of the PackageRepository and ScheduleSink ports.
// Times are stored as RFC 3339 text.
type SqlitePackageRepository struct{ DB *sql.DB }

func NewSqlitePackageRepository(db *sql.DB) *SqlitePackageRepository {
	return &SqlitePackageRepository{DB: db}
}

// Return all packages stored in the database.
func (s *SqlitePackageRepository) ListPackages(ctx context.Context) ([]*domain.Package, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite package repository: DB is nil")
	}

	query := `
	SELECT
		package_id,
		address,
		city,
		state,
		zip,
		deadline,
		weight,
		truck_id,
		departed_at,
		delivered_at
	FROM packages
	ORDER BY package_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list packages: query packages table: %w", err)
	}
	defer rows.Close()

	packages := make([]*domain.Package, 0, 64)
	for rows.Next() {
		var (
			p                     domain.Package
			truckID               sql.NullInt64
			departedAt, delivered sql.NullString
		)
		err := rows.Scan(&p.PackageID, &p.Address, &p.City, &p.State, &p.Zip, &p.Deadline, &p.Weight,
			&truckID, &departedAt, &delivered)
		if err != nil {
			return nil, fmt.Errorf("list packages: scan row: %w", err)
		}

		p.TruckID = int(truckID.Int64)
		if p.DepartedAt, err = parseTime(departedAt); err != nil {
			return nil, fmt.Errorf("list packages: package_id=%d departed_at: %w", p.PackageID, err)
		}
		if p.DeliveredAt, err = parseTime(delivered); err != nil {
			return nil, fmt.Errorf("list packages: package_id=%d delivered_at: %w", p.PackageID, err)
		}
		p.Status = domain.StatusAtHub
		packages = append(packages, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list packages: row iteration: %w", err)
	}

	return packages, nil
}

// Store the computed schedule of the given packages.
func (s *SqlitePackageRepository) SaveSchedule(ctx context.Context, pkgs []*domain.Package) error {
	if err := upsertSqlite(ctx, s.DB, pkgs); err != nil {
		return fmt.Errorf("save schedule: %w", err)
	}
	return nil
}

func nullTruck(id int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(id), Valid: id != 0}
}

func formatTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(time.RFC3339Nano), Valid: true}
}

func parseTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
