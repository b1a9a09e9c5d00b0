package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"parcel-route-service/internal/domain"
	"parcel-route-service/internal/platform/obs"
	"parcel-route-service/internal/ports"
	"slices"
)

// Plan a delivery route for the truck's packages using a greedy nearest-neighbor algorithm.
//
// Starting from the truck's current address and clock, the closest remaining
// destination is visited next until every package is delivered. Candidates are
// scanned in the truck's package order and the first minimum wins, so routes
// are reproducible. The algorithm is O(n²) in the truck's package count and
// does not attempt global route optimization.
//
// The truck and packages are left untouched; see Truck.ApplyPlan.
func PlanTruckRoute(
	ctx context.Context,
	truck *domain.Truck,
	store ports.PackageStore,
	oracle ports.DistanceOracle,
	returnToStart bool,
) (_ *domain.RoutePlan, err error) {
	defer obs.Time(ctx, "route.PlanTruckRoute")(&err)

	if truck == nil {
		return nil, errors.New("plan truck route: truck must be non-nil")
	}
	if truck.Address == "" {
		return nil, fmt.Errorf("plan truck route: truck %d start address must be non-empty", truck.TruckID)
	}
	if truck.Speed <= 0 {
		return nil, fmt.Errorf("plan truck route: truck %d speed must be positive, got %g", truck.TruckID, truck.Speed)
	}

	remaining := make([]*domain.Package, 0, len(truck.PackageIDs))
	for _, id := range truck.PackageIDs {
		pkg, ok := store.Lookup(id)
		if !ok {
			return nil, fmt.Errorf("plan truck route: truck %d package_id=%d: %w", truck.TruckID, id, ports.ErrNotFound)
		}
		remaining = append(remaining, pkg)
	}

	currentTime := truck.Time
	currentLocation := truck.Address

	stops := make([]domain.RouteStop, 0, len(remaining))
	totalMiles := 0.0

	for len(remaining) > 0 {
		bestIdx := -1
		minMiles := math.Inf(1)

		// Select next stop by minimum distance (greedy step); strict < keeps the first tie.
		for i, pkg := range remaining {
			miles, err := oracle.DistanceBetween(currentLocation, pkg.Address)
			if err != nil {
				return nil, fmt.Errorf(
					"plan truck route: truck %d from %q to package_id=%d at %q: %w",
					truck.TruckID, currentLocation, pkg.PackageID, pkg.Address, err,
				)
			}
			if miles < minMiles {
				minMiles = miles
				bestIdx = i
			}
		}

		best := remaining[bestIdx]
		currentTime = currentTime.Add(truck.TravelTime(minMiles))
		totalMiles += minMiles

		stops = append(stops, domain.RouteStop{
			Package:     best,
			Destination: best.Address,
			LegMiles:    minMiles,
			ArriveAt:    currentTime,
		})

		remaining = slices.Delete(remaining, bestIdx, bestIdx+1)
		currentLocation = best.Address
	}

	plan := &domain.RoutePlan{
		TruckID:    truck.TruckID,
		DepartAt:   truck.DepartAt,
		Start:      truck.Address,
		Stops:      stops,
		TotalMiles: totalMiles,
		FinishAt:   currentTime,
		End:        currentLocation,
	}

	// Optionally includes return leg to the start address for total route metrics.
	if returnToStart && len(stops) > 0 {
		back, err := oracle.DistanceBetween(currentLocation, truck.Address)
		if err != nil {
			return nil, fmt.Errorf(
				"plan truck route: truck %d return leg from %q to %q: %w",
				truck.TruckID, currentLocation, truck.Address, err,
			)
		}

		plan.ReturnMiles = back
		plan.TotalMiles += back
		plan.FinishAt = currentTime.Add(truck.TravelTime(back))
		plan.End = truck.Address
	}

	return plan, nil
}

// Plan the truck's route and apply it, leaving the visiting order in
// truck.PackageIDs and the delivery times on the stored packages.
// On error nothing is mutated.
func DeliverPackages(
	ctx context.Context,
	truck *domain.Truck,
	store ports.PackageStore,
	oracle ports.DistanceOracle,
	returnToStart bool,
) (*domain.RoutePlan, error) {
	plan, err := PlanTruckRoute(ctx, truck, store, oracle, returnToStart)
	if err != nil {
		return nil, fmt.Errorf("deliver packages: %w", err)
	}

	if err := truck.ApplyPlan(plan); err != nil {
		return nil, fmt.Errorf("deliver packages: truck %d: %w", truck.TruckID, err)
	}

	return plan, nil
}
