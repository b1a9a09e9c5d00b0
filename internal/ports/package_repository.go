package ports

import (
	"context"
	"parcel-route-service/internal/domain"
)

// Port: a boundary for retrieving Package entities from a data source.
type PackageRepository interface {
	// Retrieve all packages available for routing.
	ListPackages(ctx context.Context) ([]*domain.Package, error)
}

// Port: a destination for the computed delivery schedule.
type ScheduleSink interface {
	// Persist truck assignment and departure/delivery times of the packages.
	SaveSchedule(ctx context.Context, pkgs []*domain.Package) error
}

// Keyed access to the packages loaded for a run. Returned packages are shared:
// mutations are visible to later lookups.
type PackageStore interface {
	Lookup(id int) (*domain.Package, bool)
}
