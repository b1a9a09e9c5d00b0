package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"parcel-route-service/internal/domain"
	"parcel-route-service/internal/platform/obs"
	"time"
)

// SQLPackageRepository is a Postgres-backed implementation of the
// PackageRepository and ScheduleSink ports.
type SQLPackageRepository struct {
	DB *sql.DB
}

func NewSQLPackageRepository(db *sql.DB) *SQLPackageRepository {
	return &SQLPackageRepository{DB: db}
}

// Return all packages stored in the database.
func (s *SQLPackageRepository) ListPackages(ctx context.Context) (_ []*domain.Package, err error) {
	defer obs.Time(ctx, "packages.sql.List")(&err)

	if s.DB == nil {
		return nil, errors.New("sql package repository: DB is nil")
	}

	q := `
	SELECT package_id, address, city, state, zip, deadline, weight, truck_id, departed_at, delivered_at
	FROM packages
	ORDER BY package_id;
	`

	rows, err := s.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list packages: query packages table: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Package, 0, 64)
	for rows.Next() {
		var (
			p                     domain.Package
			truckID               sql.NullInt64
			departedAt, delivered sql.NullTime
		)
		if err := rows.Scan(&p.PackageID, &p.Address, &p.City, &p.State, &p.Zip, &p.Deadline, &p.Weight,
			&truckID, &departedAt, &delivered); err != nil {
			return nil, fmt.Errorf("list packages: scan rows: %w", err)
		}

		p.TruckID = int(truckID.Int64)
		p.DepartedAt = timePtr(departedAt)
		p.DeliveredAt = timePtr(delivered)
		p.Status = domain.StatusAtHub
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list packages: row iteration: %w", err)
	}

	return out, nil
}

// Store the computed schedule of the given packages.
func (s *SQLPackageRepository) SaveSchedule(ctx context.Context, pkgs []*domain.Package) (err error) {
	defer obs.Time(ctx, "packages.sql.SaveSchedule")(&err)

	if err := upsertSQL(ctx, s.DB, pkgs); err != nil {
		return fmt.Errorf("save schedule: %w", err)
	}
	return nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
