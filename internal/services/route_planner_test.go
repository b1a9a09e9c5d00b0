package services

import (
	"context"
	"errors"
	"math"
	"parcel-route-service/internal/adapters/distance"
	"parcel-route-service/internal/domain"
	"parcel-route-service/internal/ports"
	"slices"
	"testing"
	"time"
)

var depart = time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

func TestRoutePlannerNearestNeighbor(t *testing.T) {
	pairs := []distance.MockPair{
		{From: "A", To: "B", Miles: 2},
		{From: "A", To: "C", Miles: 5},
		{From: "B", To: "C", Miles: 4},
	}
	oracle := distance.NewMockOracle(pairs)

	store := NewPackageStore([]*domain.Package{
		{PackageID: 1, Address: "A"},
		{PackageID: 2, Address: "B"},
		{PackageID: 3, Address: "C"},
	})
	truck := domain.NewTruck(1, 16, 18, "A", depart, []int{3, 2, 1})

	plan, err := DeliverPackages(context.Background(), truck, store, oracle, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Package 1 sits at the start address (distance 0), then B (2), then C (4).
	if got, want := truck.PackageIDs, []int{1, 2, 3}; !slices.Equal(got, want) {
		t.Fatalf("route = %v, want %v", got, want)
	}
	if truck.Mileage != 6 {
		t.Fatalf("mileage = %v, want 6", truck.Mileage)
	}
	if plan.TotalMiles != 6 {
		t.Fatalf("plan miles = %v, want 6", plan.TotalMiles)
	}
	if truck.Address != "C" {
		t.Fatalf("address = %q, want %q", truck.Address, "C")
	}

	wantFinish := depart.Add(truck.TravelTime(2)).Add(truck.TravelTime(4))
	if !truck.Time.Equal(wantFinish) {
		t.Fatalf("time = %v, want %v", truck.Time, wantFinish)
	}

	pkgC, _ := store.Lookup(3)
	if pkgC.DeliveredAt == nil || !pkgC.DeliveredAt.Equal(wantFinish) {
		t.Fatalf("package 3 DeliveredAt = %v, want %v", pkgC.DeliveredAt, wantFinish)
	}
}

func TestRoutePlannerScenarioWithoutStartPackage(t *testing.T) {
	oracle := distance.NewMockOracle([]distance.MockPair{
		{From: "A", To: "B", Miles: 2},
		{From: "A", To: "C", Miles: 5},
		{From: "B", To: "C", Miles: 4},
	})
	store := NewPackageStore([]*domain.Package{
		{PackageID: 10, Address: "C"},
		{PackageID: 11, Address: "B"},
	})
	truck := domain.NewTruck(1, 16, 18, "A", depart, []int{10, 11})

	if _, err := DeliverPackages(context.Background(), truck, store, oracle, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, want := truck.PackageIDs, []int{11, 10}; !slices.Equal(got, want) {
		t.Fatalf("route = %v, want %v", got, want)
	}
	if truck.Mileage != 6 {
		t.Fatalf("mileage = %v, want 6", truck.Mileage)
	}
}

func TestRoutePlannerProperties(t *testing.T) {
	addresses := []string{"HUB", "P", "Q", "R", "S", "T"}
	var pairs []distance.MockPair
	for i := range addresses {
		for j := i + 1; j < len(addresses); j++ {
			pairs = append(pairs, distance.MockPair{
				From:  addresses[i],
				To:    addresses[j],
				Miles: float64((i*7+j*3)%11) + 0.5,
			})
		}
	}
	oracle := distance.NewMockOracle(pairs)

	var pkgs []*domain.Package
	var ids []int
	for i := 1; i <= 10; i++ {
		pkgs = append(pkgs, &domain.Package{PackageID: i, Address: addresses[1+i%5]})
		ids = append(ids, i)
	}
	store := NewPackageStore(pkgs)
	truck := domain.NewTruck(2, 16, 18, "HUB", depart, ids)

	plan, err := DeliverPackages(context.Background(), truck, store, oracle, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Output order is a permutation of the input.
	got := slices.Clone(truck.PackageIDs)
	slices.Sort(got)
	if !slices.Equal(got, ids) {
		t.Fatalf("route %v is not a permutation of %v", truck.PackageIDs, ids)
	}

	// Mileage is the sum of consecutive distances along the route.
	sum := 0.0
	at := "HUB"
	for _, id := range truck.PackageIDs {
		pkg, _ := store.Lookup(id)
		d, err := oracle.DistanceBetween(at, pkg.Address)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		sum += d
		at = pkg.Address
	}
	if math.Abs(sum-truck.Mileage) > 1e-9 {
		t.Fatalf("mileage = %v, want %v", truck.Mileage, sum)
	}
	if len(plan.Stops) != len(ids) {
		t.Fatalf("stops = %d, want %d", len(plan.Stops), len(ids))
	}

	for _, id := range ids {
		pkg, _ := store.Lookup(id)
		if pkg.DepartedAt == nil || !pkg.DepartedAt.Equal(depart) {
			t.Fatalf("package %d DepartedAt = %v, want %v", id, pkg.DepartedAt, depart)
		}
		if pkg.DeliveredAt == nil || pkg.DeliveredAt.Before(*pkg.DepartedAt) {
			t.Fatalf("package %d DeliveredAt = %v before departure", id, pkg.DeliveredAt)
		}
	}
}

func TestRoutePlannerTieKeepsFirst(t *testing.T) {
	oracle := distance.NewMockOracle([]distance.MockPair{
		{From: "HUB", To: "X", Miles: 3},
		{From: "HUB", To: "Y", Miles: 3},
		{From: "X", To: "Y", Miles: 1},
	})
	store := NewPackageStore([]*domain.Package{
		{PackageID: 1, Address: "X"},
		{PackageID: 2, Address: "Y"},
	})

	truck := domain.NewTruck(1, 16, 18, "HUB", depart, []int{2, 1})
	plan, err := PlanTruckRoute(context.Background(), truck, store, oracle, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := plan.PackageIDs(); !slices.Equal(got, []int{2, 1}) {
		t.Fatalf("route = %v, want [2 1]", got)
	}
}

func TestRoutePlannerSinglePackage(t *testing.T) {
	oracle := distance.NewMockOracle([]distance.MockPair{{From: "HUB", To: "X", Miles: 9}})
	store := NewPackageStore([]*domain.Package{{PackageID: 5, Address: "X"}})
	truck := domain.NewTruck(1, 16, 18, "HUB", depart, []int{5})

	plan, err := PlanTruckRoute(context.Background(), truck, store, oracle, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.Stops) != 1 || plan.TotalMiles != 9 {
		t.Fatalf("plan = %+v, want one 9 mile stop", plan)
	}
	if !plan.Stops[0].ArriveAt.Equal(depart.Add(30 * time.Minute)) {
		t.Fatalf("arrive = %v, want %v", plan.Stops[0].ArriveAt, depart.Add(30*time.Minute))
	}
}

func TestRoutePlannerReturnToStart(t *testing.T) {
	oracle := distance.NewMockOracle([]distance.MockPair{
		{From: "HUB", To: "X", Miles: 9},
	})
	store := NewPackageStore([]*domain.Package{{PackageID: 1, Address: "X"}})
	truck := domain.NewTruck(1, 16, 18, "HUB", depart, []int{1})

	if _, err := DeliverPackages(context.Background(), truck, store, oracle, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if truck.Mileage != 18 {
		t.Fatalf("mileage = %v, want 18", truck.Mileage)
	}
	if truck.Address != "HUB" {
		t.Fatalf("address = %q, want HUB", truck.Address)
	}
	if !truck.Time.Equal(depart.Add(time.Hour)) {
		t.Fatalf("time = %v, want %v", truck.Time, depart.Add(time.Hour))
	}

	pkg, _ := store.Lookup(1)
	if !pkg.DeliveredAt.Equal(depart.Add(30 * time.Minute)) {
		t.Fatalf("DeliveredAt = %v, want %v", pkg.DeliveredAt, depart.Add(30*time.Minute))
	}
}

func TestRoutePlannerOracleFailureLeavesStateUntouched(t *testing.T) {
	oracle := distance.NewMockOracle([]distance.MockPair{
		{From: "HUB", To: "X", Miles: 1},
	})
	store := NewPackageStore([]*domain.Package{
		{PackageID: 1, Address: "X"},
		{PackageID: 2, Address: "Nowhere"},
	})
	truck := domain.NewTruck(1, 16, 18, "HUB", depart, []int{1, 2})

	_, err := DeliverPackages(context.Background(), truck, store, oracle, false)
	if !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	if !slices.Equal(truck.PackageIDs, []int{1, 2}) || truck.Mileage != 0 || truck.Address != "HUB" {
		t.Fatalf("truck mutated after failure: %+v", truck)
	}
	pkg, _ := store.Lookup(1)
	if pkg.DeliveredAt != nil || pkg.DepartedAt != nil {
		t.Fatalf("package mutated after failure: %+v", pkg)
	}
}

func TestRoutePlannerUnknownPackage(t *testing.T) {
	oracle := distance.NewMockOracle(nil)
	store := NewPackageStore(nil)
	truck := domain.NewTruck(1, 16, 18, "HUB", depart, []int{99})

	if _, err := PlanTruckRoute(context.Background(), truck, store, oracle, false); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRoutePlannerRejectsBadTruck(t *testing.T) {
	oracle := distance.NewMockOracle(nil)
	store := NewPackageStore(nil)

	if _, err := PlanTruckRoute(context.Background(), nil, store, oracle, false); err == nil {
		t.Fatal("expected error for nil truck")
	}
	if _, err := PlanTruckRoute(context.Background(), domain.NewTruck(1, 16, 0, "HUB", depart, nil), store, oracle, false); err == nil {
		t.Fatal("expected error for zero speed")
	}
	if _, err := PlanTruckRoute(context.Background(), domain.NewTruck(1, 16, 18, "", depart, nil), store, oracle, false); err == nil {
		t.Fatal("expected error for empty start address")
	}
}
