package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"garage/internal/core"
	ports "garage/internal/sheets"
)

// Projector computes upcoming maintenance from the type catalog and each
// vehicle's service history.
type Projector struct {
	types    ports.TypeCatalog
	log      ports.MaintenanceLog
	vehicles ports.VehicleCatalog
	limit    int
}

// VehicleUpcoming is the projection for one vehicle.
type VehicleUpcoming struct {
	Vehicle  core.Vehicle
	Services []core.UpcomingService
}

func NewProjector(types ports.TypeCatalog, log ports.MaintenanceLog, vehicles ports.VehicleCatalog) *Projector {
	return &Projector{types: types, log: log, vehicles: vehicles, limit: 4}
}

// Upcoming returns one entry per maintenance type for vehicleID, ordered by
// type name.
func (p *Projector) Upcoming(ctx context.Context, vehicleID int64) ([]core.UpcomingService, error) {
	types, err := p.types.ListMaintenanceTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list maintenance types: %w", err)
	}
	return p.upcoming(ctx, types, vehicleID)
}

func (p *Projector) upcoming(ctx context.Context, types []core.MaintenanceType, vehicleID int64) ([]core.UpcomingService, error) {
	recs, err := p.log.LoadRecordsFor(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("load records for vehicle %d: %w", vehicleID, err)
	}
	return project(types, recs), nil
}

// UpcomingAll projects every vehicle, loading histories concurrently. The
// result follows the catalog's vehicle order.
func (p *Projector) UpcomingAll(ctx context.Context) ([]VehicleUpcoming, error) {
	vehicles, err := p.vehicles.ListVehicles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	types, err := p.types.ListMaintenanceTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list maintenance types: %w", err)
	}

	out := make([]VehicleUpcoming, len(vehicles))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.limit)
	for i, v := range vehicles {
		i, v := i, v
		g.Go(func() error {
			services, err := p.upcoming(gctx, types, v.ID)
			if err != nil {
				return err
			}
			out[i] = VehicleUpcoming{Vehicle: v, Services: services}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "Projected upcoming maintenance", "vehicles", len(out), "types", len(types))
	return out, nil
}

func sortedTypes(types []core.MaintenanceType) []core.MaintenanceType {
	out := append([]core.MaintenanceType(nil), types...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
