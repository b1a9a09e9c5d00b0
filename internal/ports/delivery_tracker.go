package ports

import (
	"io"
	"parcel-route-service/internal/domain"
	"time"
)

// Port: read-side view of a routed service day, consumed by the reporting layers.
type DeliveryTracker interface {
	// Return one package with its status computed for at.
	Package(id int, at time.Time) (domain.Package, error)
	// Return all packages ordered by ID with statuses computed for at.
	Statuses(at time.Time) []domain.Package
	Plans() []*domain.RoutePlan
	TotalMileage() float64

	// Render the package status table as of at.
	StatusReport(w io.Writer, at time.Time) error
	// Render per-truck mileage followed by the fleet total.
	MileageReport(w io.Writer) error
}
