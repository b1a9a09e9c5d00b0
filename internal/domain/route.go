package domain

import "time"

// Represents a single stop in a delivery route: arriving at a package's
// destination after driving LegMiles from the previous stop.
type RouteStop struct {
	Package     *Package
	Destination string
	LegMiles    float64
	ArriveAt    time.Time
}

// Represents the planned delivery route for a single truck.
// A RoutePlan is the output of the routing algorithm and describes the ordered
// sequence of delivery stops along with aggregate mileage and finishing time.
// It is planning data only; Truck.ApplyPlan carries out its side effects.
type RoutePlan struct {
	TruckID    int
	DepartAt   time.Time
	Start      string
	Stops      []RouteStop
	TotalMiles float64
	// ReturnMiles is the length of the optional leg back to Start, already
	// included in TotalMiles.
	ReturnMiles float64
	FinishAt    time.Time
	// End is where the truck finishes: the last destination, or Start when
	// the plan includes the return leg.
	End string
}

// Return the package IDs in visiting order.
func (p *RoutePlan) PackageIDs() []int {
	ids := make([]int, 0, len(p.Stops))
	for _, s := range p.Stops {
		ids = append(ids, s.Package.PackageID)
	}
	return ids
}
