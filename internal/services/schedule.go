package services

import (
	"context"
	"fmt"
	"parcel-route-service/internal/platform/obs"
	"parcel-route-service/internal/ports"
)

// Hand the computed schedule to every sink (databases, caches) in order,
// stopping at the first failure.
func PublishSchedule(ctx context.Context, d *Depot, sinks ...ports.ScheduleSink) (err error) {
	defer obs.Time(ctx, "schedule.Publish")(&err)

	pkgs := d.Packages()
	for _, sink := range sinks {
		if err := sink.SaveSchedule(ctx, pkgs); err != nil {
			return fmt.Errorf("publish schedule: %w", err)
		}
	}
	return nil
}
