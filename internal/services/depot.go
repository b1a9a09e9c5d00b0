package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"parcel-route-service/internal/domain"
	"parcel-route-service/internal/hashtable"
	"parcel-route-service/internal/platform/obs"
	"parcel-route-service/internal/ports"
	"slices"
	"sync"
	"time"
)

// Depot holds everything loaded for one service day: the package store, the
// distance oracle and the fleet. It is built once at startup and shared by the
// routing run and the reporting layers.
//
// All access to the store goes through the Depot's mutex: status queries
// mutate the cached status on packages, and the store itself is unsynchronized.
type Depot struct {
	mu            sync.Mutex
	store         *hashtable.Table[int, *domain.Package]
	oracle        ports.DistanceOracle
	trucks        []*domain.Truck
	returnToStart bool
	metrics       *obs.Metrics
	plans         []*domain.RoutePlan
}

type DepotOption func(*Depot)

// Include the leg back to each truck's start address in mileage and finish time.
func WithReturnToStart(v bool) DepotOption {
	return func(d *Depot) { d.returnToStart = v }
}

// Publish per-truck route gauges after each run.
func WithMetrics(m *obs.Metrics) DepotOption {
	return func(d *Depot) { d.metrics = m }
}

func NewDepot(
	store *hashtable.Table[int, *domain.Package],
	oracle ports.DistanceOracle,
	trucks []*domain.Truck,
	opts ...DepotOption,
) *Depot {
	d := &Depot{store: store, oracle: oracle, trucks: trucks}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Build a store from a package list. A later duplicate ID replaces an earlier one.
func NewPackageStore(pkgs []*domain.Package) *hashtable.Table[int, *domain.Package] {
	store := hashtable.New[int, *domain.Package](hashtable.DefaultCapacity)
	for _, pkg := range pkgs {
		store.Insert(pkg.PackageID, pkg)
	}
	return store
}

// Run routes every truck. Plans for the whole fleet are computed first and only
// applied once all of them succeeded, so a failing run leaves no truck or package
// partially updated.
func (d *Depot) Run(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.plans != nil {
		return errors.New("run depot: routes already computed")
	}

	plans := make([]*domain.RoutePlan, 0, len(d.trucks))
	for _, truck := range d.trucks {
		plan, err := PlanTruckRoute(ctx, truck, d.store, d.oracle, d.returnToStart)
		if err != nil {
			return fmt.Errorf("run depot: %w", err)
		}
		plans = append(plans, plan)
	}

	// Schedules loaded with the packages belong to an earlier run; a package
	// no truck carries today stays at the hub.
	d.store.Range(func(_ int, pkg *domain.Package) bool {
		pkg.ResetSchedule()
		return true
	})

	// Trucks are applied in fleet order: a package assigned to two trucks
	// ends up with the later truck's times.
	for i, truck := range d.trucks {
		if err := truck.ApplyPlan(plans[i]); err != nil {
			return fmt.Errorf("run depot: %w", err)
		}
		log.Printf(
			"truck_id=%d stops=%d miles=%.1f depart=%s finish=%s",
			truck.TruckID, len(plans[i].Stops), truck.Mileage,
			truck.DepartAt.Format(time.TimeOnly), truck.Time.Format(time.TimeOnly),
		)
		d.metrics.ObserveRoute(truck.TruckID, plans[i].TotalMiles, len(plans[i].Stops))
	}

	d.plans = plans
	return nil
}

// Plans returns the applied route plans, nil before Run.
func (d *Depot) Plans() []*domain.RoutePlan {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.plans
}

// Return snapshots of the fleet taken under the lock.
func (d *Depot) Trucks() []domain.Truck {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]domain.Truck, 0, len(d.trucks))
	for _, t := range d.trucks {
		snap := *t
		snap.PackageIDs = slices.Clone(t.PackageIDs)
		snap.Load = slices.Clone(t.Load)
		out = append(out, snap)
	}
	return out
}

// Return the sum of all trucks' mileage.
func (d *Depot) TotalMileage() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	total := 0.0
	for _, t := range d.trucks {
		total += t.Mileage
	}
	return total
}

// Return all package IDs in ascending order.
func (d *Depot) PackageIDs() []int {
	d.mu.Lock()
	defer d.mu.Unlock()

	ids := d.store.Keys()
	slices.Sort(ids)
	return ids
}

// Return a snapshot of one package with its status computed for at.
func (d *Depot) Package(id int, at time.Time) (domain.Package, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	pkg, ok := d.store.Lookup(id)
	if !ok {
		return domain.Package{}, fmt.Errorf("package status: package_id=%d: %w", id, ports.ErrNotFound)
	}

	pkg.UpdateStatus(at)
	return *pkg, nil
}

// Return snapshots of every package, ordered by ID, with statuses computed for at.
func (d *Depot) Statuses(at time.Time) []domain.Package {
	d.mu.Lock()
	defer d.mu.Unlock()

	ids := d.store.Keys()
	slices.Sort(ids)

	out := make([]domain.Package, 0, len(ids))
	for _, id := range ids {
		pkg, _ := d.store.Lookup(id)
		pkg.UpdateStatus(at)
		out = append(out, *pkg)
	}
	return out
}

// Return the stored packages ordered by ID. The pointers are shared with the
// store; callers must not mutate them while the Depot is in use.
func (d *Depot) Packages() []*domain.Package {
	d.mu.Lock()
	defer d.mu.Unlock()

	ids := d.store.Keys()
	slices.Sort(ids)

	out := make([]*domain.Package, 0, len(ids))
	for _, id := range ids {
		pkg, _ := d.store.Lookup(id)
		out = append(out, pkg)
	}
	return out
}
