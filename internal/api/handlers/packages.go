package handlers

import (
	"errors"
	"log"
	"net/http"
	"parcel-route-service/internal/api/dto"
	"parcel-route-service/internal/domain"
	"parcel-route-service/internal/ports"
	"strconv"
	"time"
)

// PackageHandler exposes read-only package status endpoints.
type PackageHandler struct {
	Tracker ports.DeliveryTracker
	Day     time.Time
}

// List reports every package with its status at the ?at= time of day.
func (h *PackageHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	at, err := queryTime(r, h.Day)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid input")
		return
	}

	pkgs := h.Tracker.Statuses(at)
	res := dto.ListPackagesResponse{
		At:       at,
		Packages: make([]dto.PackageResponse, 0, len(pkgs)),
	}
	for i := range pkgs {
		res.Packages = append(res.Packages, packageResponse(&pkgs[i]))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Get reports a single package with its status at the ?at= time of day.
func (h *PackageHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid input")
		return
	}

	at, err := queryTime(r, h.Day)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid input")
		return
	}

	pkg, err := h.Tracker.Package(id, at)
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "package not found")
		return
	}
	if err != nil {
		log.Printf("get package failed: package_id=%d err=%v", id, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, packageResponse(&pkg))
}

func packageResponse(p *domain.Package) dto.PackageResponse {
	return dto.PackageResponse{
		PackageID:   p.PackageID,
		Address:     p.Address,
		City:        p.City,
		State:       p.State,
		Zip:         p.Zip,
		Deadline:    p.Deadline,
		Weight:      p.Weight,
		Status:      string(p.Status),
		TruckID:     p.TruckID,
		DepartedAt:  p.DepartedAt,
		DeliveredAt: p.DeliveredAt,
	}
}

// queryTime reads ?at=HH:MM:SS on day. Without it, the end of day is used so
// that the final state of every package is reported.
func queryTime(r *http.Request, day time.Time) (time.Time, error) {
	raw := r.URL.Query().Get("at")
	if raw == "" {
		return domain.ParseClock(day, "23:59:59")
	}
	return domain.ParseClock(day, raw)
}
