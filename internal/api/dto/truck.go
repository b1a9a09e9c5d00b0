package dto

import "time"

type StopResponse struct {
	PackageID   int       `json:"package_id"`
	Destination string    `json:"destination"`
	LegMiles    float64   `json:"leg_miles"`
	ArriveAt    time.Time `json:"arrive_at"`
}

type TruckResponse struct {
	TruckID    int            `json:"truck_id"`
	DepartAt   time.Time      `json:"depart_at"`
	FinishAt   time.Time      `json:"finish_at"`
	TotalMiles float64        `json:"total_miles"`
	Stops      []StopResponse `json:"stops"`
}

type ListTrucksResponse struct {
	Trucks []TruckResponse `json:"trucks"`
}

type MileageResponse struct {
	TotalMiles float64 `json:"total_miles"`
}
