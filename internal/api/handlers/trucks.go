package handlers

import (
	"net/http"
	"parcel-route-service/internal/api/dto"
	"parcel-route-service/internal/ports"
)

// TruckHandler exposes the computed routes and mileage.
type TruckHandler struct {
	Tracker ports.DeliveryTracker
}

// List returns every truck's route in visiting order.
func (h *TruckHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	plans := h.Tracker.Plans()
	res := dto.ListTrucksResponse{Trucks: make([]dto.TruckResponse, 0, len(plans))}
	for _, p := range plans {
		stops := make([]dto.StopResponse, 0, len(p.Stops))
		for _, s := range p.Stops {
			stops = append(stops, dto.StopResponse{
				PackageID:   s.Package.PackageID,
				Destination: s.Destination,
				LegMiles:    s.LegMiles,
				ArriveAt:    s.ArriveAt,
			})
		}

		res.Trucks = append(res.Trucks, dto.TruckResponse{
			TruckID:    p.TruckID,
			DepartAt:   p.DepartAt,
			FinishAt:   p.FinishAt,
			TotalMiles: p.TotalMiles,
			Stops:      stops,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *TruckHandler) Mileage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.MileageResponse{TotalMiles: h.Tracker.TotalMileage()})
}
