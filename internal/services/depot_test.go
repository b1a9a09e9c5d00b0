package services

import (
	"bytes"
	"context"
	"errors"
	"parcel-route-service/internal/adapters/distance"
	"parcel-route-service/internal/domain"
	"parcel-route-service/internal/platform/obs"
	"parcel-route-service/internal/ports"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestDepot(t *testing.T, extra ...*domain.Package) *Depot {
	t.Helper()

	oracle := distance.NewMockOracle([]distance.MockPair{
		{From: "HUB", To: "A", Miles: 9},
		{From: "HUB", To: "B", Miles: 18},
		{From: "A", To: "B", Miles: 4.5},
	})

	pkgs := append([]*domain.Package{
		{PackageID: 3, Address: "B", Status: domain.StatusAtHub},
		{PackageID: 1, Address: "A", Status: domain.StatusAtHub},
		{PackageID: 2, Address: "B", Status: domain.StatusAtHub},
	}, extra...)

	trucks := []*domain.Truck{
		domain.NewTruck(1, 16, 18, "HUB", depart, []int{1, 3}),
		domain.NewTruck(2, 16, 18, "HUB", depart.Add(time.Hour), []int{2}),
	}
	for _, p := range extra {
		trucks[1].PackageIDs = append(trucks[1].PackageIDs, p.PackageID)
	}

	return NewDepot(NewPackageStore(pkgs), oracle, trucks)
}

func TestDepotRun(t *testing.T) {
	d := newTestDepot(t)
	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := d.TotalMileage(); got != 9+4.5+18 {
		t.Fatalf("total mileage = %v, want %v", got, 9+4.5+18)
	}
	if len(d.Plans()) != 2 {
		t.Fatalf("plans = %d, want 2", len(d.Plans()))
	}
	if err := d.Run(context.Background()); err == nil {
		t.Fatal("expected error on second run")
	}

	pkg, err := d.Package(3, depart.Add(40*time.Minute))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pkg.Status != domain.StatusEnRoute {
		t.Fatalf("status = %q, want %q", pkg.Status, domain.StatusEnRoute)
	}
	if pkg.TruckID != 1 {
		t.Fatalf("truck = %d, want 1", pkg.TruckID)
	}

	// Truck 2 departs at 09:00 and reaches B at 10:00.
	statuses := d.Statuses(depart.Add(90 * time.Minute))
	want := []domain.Status{domain.StatusDelivered, domain.StatusEnRoute, domain.StatusDelivered}
	for i, p := range statuses {
		if p.PackageID != i+1 {
			t.Fatalf("statuses[%d].PackageID = %d, want %d", i, p.PackageID, i+1)
		}
		if p.Status != want[i] {
			t.Errorf("package %d status = %q, want %q", p.PackageID, p.Status, want[i])
		}
	}

	if got := d.Statuses(depart.Add(-time.Minute)); got[0].Status != domain.StatusAtHub {
		t.Fatalf("status before departure = %q, want %q", got[0].Status, domain.StatusAtHub)
	}
}

func TestDepotRunIsAllOrNothing(t *testing.T) {
	d := newTestDepot(t, &domain.Package{PackageID: 4, Address: "Unknown"})

	err := d.Run(context.Background())
	if !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	if d.TotalMileage() != 0 {
		t.Fatalf("mileage = %v after failed run, want 0", d.TotalMileage())
	}
	for _, p := range d.Packages() {
		if p.DeliveredAt != nil {
			t.Fatalf("package %d delivered after failed run", p.PackageID)
		}
	}
	if d.Plans() != nil {
		t.Fatal("plans recorded after failed run")
	}
}

func TestDepotRunClearsStaleSchedule(t *testing.T) {
	yesterday := depart.Add(-24 * time.Hour)
	stale := &domain.Package{
		PackageID:   9,
		Address:     "A",
		TruckID:     3,
		DepartedAt:  &yesterday,
		DeliveredAt: &yesterday,
		Status:      domain.StatusDelivered,
	}
	d := newTestDepot(t)
	d.store.Insert(stale.PackageID, stale)

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pkg, err := d.Package(9, depart.Add(12*time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pkg.Status != domain.StatusAtHub {
		t.Fatalf("status = %q, want %q", pkg.Status, domain.StatusAtHub)
	}
	if pkg.TruckID != 0 || pkg.DepartedAt != nil || pkg.DeliveredAt != nil {
		t.Fatalf("stale schedule kept: %+v", pkg)
	}
}

func TestDepotFailedRunKeepsLoadedSchedule(t *testing.T) {
	yesterday := depart.Add(-24 * time.Hour)
	d := newTestDepot(t, &domain.Package{PackageID: 4, Address: "Unknown"})
	pkg, _ := d.store.Lookup(1)
	pkg.DeliveredAt = &yesterday

	if err := d.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if pkg.DeliveredAt == nil || !pkg.DeliveredAt.Equal(yesterday) {
		t.Fatalf("failed run modified package 1: DeliveredAt = %v", pkg.DeliveredAt)
	}
}

func TestDepotTrucksAreSnapshots(t *testing.T) {
	d := newTestDepot(t)
	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	trucks := d.Trucks()
	if len(trucks) != 2 || trucks[0].Mileage != 13.5 {
		t.Fatalf("trucks = %+v, want 2 with truck 1 at 13.5 miles", trucks)
	}

	trucks[0].Mileage = 0
	trucks[0].PackageIDs[0] = 99
	if again := d.Trucks(); again[0].Mileage != 13.5 || again[0].PackageIDs[0] != 1 {
		t.Fatalf("snapshot shares state with the depot: %+v", again[0])
	}
}

func TestDepotPackageNotFound(t *testing.T) {
	d := newTestDepot(t)
	if _, err := d.Package(42, depart); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDepotPackageIDsSorted(t *testing.T) {
	d := newTestDepot(t)
	ids := d.PackageIDs()
	if len(ids) != 3 || ids[0] != 1 || ids[1] != 2 || ids[2] != 3 {
		t.Fatalf("ids = %v, want [1 2 3]", ids)
	}
}

func TestDepotReturnToStart(t *testing.T) {
	d := newTestDepot(t)
	d = NewDepot(d.store, d.oracle, d.trucks, WithReturnToStart(true))

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Truck 1: HUB-A-B-HUB = 9+4.5+18, truck 2: HUB-B-HUB = 36.
	if got := d.TotalMileage(); got != 31.5+36 {
		t.Fatalf("total mileage = %v, want %v", got, 31.5+36)
	}
}

func TestDepotMetrics(t *testing.T) {
	m := obs.NewMetrics()
	d := newTestDepot(t)
	d = NewDepot(d.store, d.oracle, d.trucks, WithMetrics(m))

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := testutil.ToFloat64(m.TruckMiles.WithLabelValues("1")); got != 13.5 {
		t.Fatalf("truck 1 miles = %v, want 13.5", got)
	}
	if got := testutil.ToFloat64(m.TruckStops.WithLabelValues("2")); got != 1 {
		t.Fatalf("truck 2 stops = %v, want 1", got)
	}
}

func TestDepotReports(t *testing.T) {
	d := newTestDepot(t)
	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := d.StatusReport(&buf, depart.Add(12*time.Hour)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("report lines = %d, want 4:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "ID") || !strings.Contains(lines[1], "Delivered") {
		t.Fatalf("unexpected report:\n%s", buf.String())
	}

	buf.Reset()
	if err := d.MileageReport(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "Total mileage traveled by all trucks: 31.5 miles") {
		t.Fatalf("unexpected mileage report:\n%s", buf.String())
	}
}

type recordingSink struct {
	ids []int
	err error
}

func (s *recordingSink) SaveSchedule(_ context.Context, pkgs []*domain.Package) error {
	for _, p := range pkgs {
		s.ids = append(s.ids, p.PackageID)
	}
	return s.err
}

func TestPublishSchedule(t *testing.T) {
	d := newTestDepot(t)
	first, second := &recordingSink{}, &recordingSink{}

	if err := PublishSchedule(context.Background(), d, first, second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first.ids) != 3 || len(second.ids) != 3 {
		t.Fatalf("sinks saw %v and %v, want 3 packages each", first.ids, second.ids)
	}

	failing := &recordingSink{err: errors.New("boom")}
	after := &recordingSink{}
	if err := PublishSchedule(context.Background(), d, failing, after); err == nil {
		t.Fatal("expected error from failing sink")
	}
	if len(after.ids) != 0 {
		t.Fatal("sink after a failure should not be called")
	}
}
