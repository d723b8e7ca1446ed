package adapters

import (
	"context"
	"fmt"

	"garage/internal/core"
	"garage/internal/records"
	ports "garage/internal/sheets"
)

var _ ports.TableStore = (*VehicleTable)(nil)

// VehicleTableHeaders is the column layout of a vehicle's records view.
var VehicleTableHeaders = []string{"Date", "Service Type", "Cost", "Mileage", "Provider", "Notes"}

// VehicleTable adapts one vehicle's relational records to sheets.TableStore so
// the table engine can search and total them. The view is read-only.
type VehicleTable struct {
	log       ports.MaintenanceLog
	vehicleID int64
}

func NewVehicleTable(log ports.MaintenanceLog, vehicleID int64) *VehicleTable {
	return &VehicleTable{log: log, vehicleID: vehicleID}
}

// Load implements sheets.TableStore. Rows are newest first.
func (t *VehicleTable) Load(ctx context.Context) ([]string, []records.Row, error) {
	recs, err := t.log.LoadRecordsFor(ctx, t.vehicleID)
	if err != nil {
		return nil, nil, err
	}
	rows := make([]records.Row, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, RecordRow(r))
	}
	return append([]string(nil), VehicleTableHeaders...), rows, nil
}

// Save implements sheets.TableStore. Relational records cannot be rewritten
// in bulk.
func (t *VehicleTable) Save(context.Context, []string, []records.Row) error {
	return fmt.Errorf("save vehicle %d records: %w", t.vehicleID, core.ErrNotImplemented)
}

// RecordRow lays a record out in VehicleTableHeaders order.
func RecordRow(r core.MaintenanceRecord) records.Row {
	row := records.Row{
		records.DateCell(r.ServiceDate.Time),
		records.Text(r.ServiceType),
		records.Empty(),
		records.Empty(),
		records.Text(r.Provider),
		records.Text(r.Notes),
	}
	if r.Cost != nil {
		row[2] = records.Text(r.Cost.String())
	}
	if r.Distance != nil {
		row[3] = records.Number(float64(*r.Distance))
	}
	return row
}
