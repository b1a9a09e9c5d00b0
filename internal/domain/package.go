package domain

import (
	"fmt"
	"time"
)

// Represents a single delivery unit handled by the system.
// The business fields are fixed once the package is loaded; the timestamps
// are populated when a truck's route plan is applied.
type Package struct {
	PackageID int
	Address   string
	City      string
	State     string
	Zip       string
	Deadline  string
	Weight    string

	Status      Status
	TruckID     int
	DepartedAt  *time.Time
	DeliveredAt *time.Time
}

// StatusAt derives the delivery state of the package at the given time.
// A package that departed but has no delivery time yet is treated as en route.
func (p *Package) StatusAt(at time.Time) Status {
	switch {
	case p.DeliveredAt != nil && !at.Before(*p.DeliveredAt):
		return StatusDelivered
	case p.DepartedAt != nil && !at.Before(*p.DepartedAt):
		return StatusEnRoute
	default:
		return StatusAtHub
	}
}

// Drop any truck assignment and times, returning the package to the hub.
func (p *Package) ResetSchedule() {
	p.TruckID = 0
	p.DepartedAt = nil
	p.DeliveredAt = nil
	p.Status = StatusAtHub
}

// Recompute the status for the given time and keep it on the package.
func (p *Package) UpdateStatus(at time.Time) Status {
	p.Status = p.StatusAt(at)
	return p.Status
}

func (p *Package) String() string {
	return fmt.Sprintf(
		"ID: %d, Address: %s, City: %s, State: %s, Zipcode: %s, Deadline: %s, Weight: %s, Delivery Time: %s, Status: %s",
		p.PackageID, p.Address, p.City, p.State, p.Zip, p.Deadline, p.Weight, formatClock(p.DeliveredAt), p.Status,
	)
}
