package dto

import "time"

type PackageResponse struct {
	PackageID   int        `json:"package_id"`
	Address     string     `json:"address"`
	City        string     `json:"city"`
	State       string     `json:"state"`
	Zip         string     `json:"zip"`
	Deadline    string     `json:"deadline"`
	Weight      string     `json:"weight"`
	Status      string     `json:"status"`
	TruckID     int        `json:"truck_id,omitempty"`
	DepartedAt  *time.Time `json:"departed_at"`
	DeliveredAt *time.Time `json:"delivered_at"`
}

type ListPackagesResponse struct {
	At       time.Time         `json:"at"`
	Packages []PackageResponse `json:"packages"`
}
