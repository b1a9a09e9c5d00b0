package domain

import (
	"errors"
	"fmt"
	"time"
)

// Delivery truck holding its package assignment and simulated position.
// Capacity and Load are informational; routing does not enforce them.
type Truck struct {
	TruckID    int
	Capacity   int
	Speed      float64
	Load       []int
	PackageIDs []int
	Mileage    float64
	Address    string
	DepartAt   time.Time
	Time       time.Time
}

func NewTruck(id int, capacity int, speed float64, hub string, departAt time.Time, packageIDs []int) *Truck {
	return &Truck{
		TruckID:    id,
		Capacity:   capacity,
		Speed:      speed,
		PackageIDs: append([]int(nil), packageIDs...),
		Address:    hub,
		DepartAt:   departAt,
		Time:       departAt,
	}
}

// Apply a planned route: rewrite the package list into visiting order, advance
// mileage, position and clock, and stamp every visited package.
func (t *Truck) ApplyPlan(plan *RoutePlan) error {
	if plan == nil {
		return errors.New("apply plan: plan must be non-nil")
	}
	if plan.TruckID != t.TruckID {
		return fmt.Errorf("apply plan: plan for truck %d applied to truck %d", plan.TruckID, t.TruckID)
	}

	t.PackageIDs = t.PackageIDs[:0]
	for _, stop := range plan.Stops {
		departAt := t.DepartAt
		arriveAt := stop.ArriveAt

		t.PackageIDs = append(t.PackageIDs, stop.Package.PackageID)
		t.Mileage += stop.LegMiles
		t.Address = stop.Destination
		t.Time = arriveAt

		stop.Package.TruckID = t.TruckID
		stop.Package.DepartedAt = &departAt
		stop.Package.DeliveredAt = &arriveAt
	}

	t.Mileage += plan.ReturnMiles
	t.Address = plan.End
	t.Time = plan.FinishAt

	return nil
}

// Time needed to drive miles at the truck's speed.
func (t *Truck) TravelTime(miles float64) time.Duration {
	return time.Duration(miles / t.Speed * float64(time.Hour))
}

func (t *Truck) String() string {
	return fmt.Sprintf(
		"Truck %d: Capacity: %d, Speed: %g, Packages: %v, Mileage: %.1f, Address: %s, Departure Time: %s",
		t.TruckID, t.Capacity, t.Speed, t.PackageIDs, t.Mileage, t.Address, t.DepartAt.Format(time.TimeOnly),
	)
}
