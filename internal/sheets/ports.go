package sheets

import (
	"context"

	"garage/internal/core"
	"garage/internal/records"
)

// Ports for outbound adapters.
type (
	// TableStore persists one whole table. Save is a full overwrite: after a
	// successful Save the backing store holds exactly the given headers and
	// rows, and a failed Save leaves no partial table behind.
	TableStore interface {
		Load(ctx context.Context) (headers []string, rows []records.Row, err error)
		Save(ctx context.Context, headers []string, rows []records.Row) error
	}

	// MaintenanceLog is the typed record store keyed by vehicle.
	MaintenanceLog interface {
		// LoadRecordsFor returns the vehicle's records, newest service date first.
		LoadRecordsFor(ctx context.Context, vehicleID int64) ([]core.MaintenanceRecord, error)
		AddRecord(ctx context.Context, r core.MaintenanceRecord) (int64, error)
		EditRecord(ctx context.Context, r core.MaintenanceRecord) error
		DeleteRecord(ctx context.Context, vehicleID, recordID int64) error
	}

	VehicleCatalog interface {
		AddVehicle(ctx context.Context, v core.Vehicle) (int64, error)
		ListVehicles(ctx context.Context) ([]core.Vehicle, error)
		GetVehicle(ctx context.Context, id int64) (core.Vehicle, error)
	}

	// TypeCatalog lists maintenance types ordered by name.
	TypeCatalog interface {
		ListMaintenanceTypes(ctx context.Context) ([]core.MaintenanceType, error)
	}
)
