package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"parcel-route-service/internal/domain"
	"time"
)

// TruckConfig is the static description of one truck: its fixed package
// assignment and departure time of day ("HH:MM:SS").
type TruckConfig struct {
	TruckID    int     `json:"truck_id"`
	Capacity   int     `json:"capacity"`
	Speed      float64 `json:"speed"`
	PackageIDs []int   `json:"package_ids"`
	DepartAt   string  `json:"depart_at"`
}

// The three-truck fleet of the reference data set. Package 6 is assigned to
// both truck 2 and truck 3; the later truck's schedule is the one kept.
func DefaultFleet() []TruckConfig {
	return []TruckConfig{
		{TruckID: 1, Capacity: 16, Speed: 18, DepartAt: "08:00:00",
			PackageIDs: []int{1, 13, 14, 15, 16, 20, 29, 30, 31, 34, 37, 40}},
		{TruckID: 2, Capacity: 16, Speed: 18, DepartAt: "10:20:00",
			PackageIDs: []int{3, 6, 12, 17, 18, 19, 21, 22, 23, 24, 26, 27, 35, 36, 38, 39}},
		{TruckID: 3, Capacity: 16, Speed: 18, DepartAt: "09:05:00",
			PackageIDs: []int{2, 4, 5, 6, 7, 8, 9, 10, 11, 25, 28, 32, 33}},
	}
}

// Read a fleet description from a JSON array of trucks.
func LoadFleet(path string) ([]TruckConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load fleet: read %q: %w", path, err)
	}

	var fleet []TruckConfig
	if err := json.Unmarshal(b, &fleet); err != nil {
		return nil, fmt.Errorf("load fleet: parse json: %w", err)
	}
	if len(fleet) == 0 {
		return nil, errors.New("load fleet: truck list must not be empty")
	}

	return fleet, nil
}

// Build the trucks for a service day, all starting at hub.
func BuildTrucks(fleet []TruckConfig, hub string, day time.Time) ([]*domain.Truck, error) {
	trucks := make([]*domain.Truck, 0, len(fleet))
	seen := make(map[int]struct{}, len(fleet))

	for i, tc := range fleet {
		if tc.TruckID <= 0 {
			return nil, fmt.Errorf("build trucks: invalid truck_id at index %d: %d", i, tc.TruckID)
		}
		if _, dup := seen[tc.TruckID]; dup {
			return nil, fmt.Errorf("build trucks: duplicate truck_id %d", tc.TruckID)
		}
		seen[tc.TruckID] = struct{}{}

		if tc.Speed <= 0 {
			return nil, fmt.Errorf("build trucks: truck %d: speed must be positive", tc.TruckID)
		}

		departAt, err := domain.ParseClock(day, tc.DepartAt)
		if err != nil {
			return nil, fmt.Errorf("build trucks: truck %d: %w", tc.TruckID, err)
		}

		trucks = append(trucks, domain.NewTruck(tc.TruckID, tc.Capacity, tc.Speed, hub, departAt, tc.PackageIDs))
	}

	return trucks, nil
}
