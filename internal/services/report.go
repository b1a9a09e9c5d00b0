package services

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"
)

// Write an aligned status table of every package as of at.
func (d *Depot) StatusReport(w io.Writer, at time.Time) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "ID\tAddress\tCity\tZip\tDeadline\tWeight\tTruck\tDeparted\tDelivered\tStatus")
	for _, p := range d.Statuses(at) {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.PackageID, p.Address, p.City, p.Zip, p.Deadline, p.Weight,
			truckLabel(p.TruckID), clockLabel(p.DepartedAt), clockLabel(p.DeliveredAt), p.Status,
		)
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("status report: flush: %w", err)
	}
	return nil
}

// Write each truck's mileage followed by the fleet total.
func (d *Depot) MileageReport(w io.Writer) error {
	for _, t := range d.Trucks() {
		if _, err := fmt.Fprintf(w, "Truck %d: %.1f miles, route %v\n", t.TruckID, t.Mileage, t.PackageIDs); err != nil {
			return fmt.Errorf("mileage report: %w", err)
		}
	}
	if _, err := fmt.Fprintf(w, "Total mileage traveled by all trucks: %.1f miles\n", d.TotalMileage()); err != nil {
		return fmt.Errorf("mileage report: %w", err)
	}
	return nil
}

func truckLabel(id int) string {
	if id == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", id)
}

func clockLabel(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(time.TimeOnly)
}
