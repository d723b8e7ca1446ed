package storage

import (
	"context"
	"database/sql"
)

const createVehicle = `INSERT INTO vehicles (make, model, year, vin)
VALUES (?, ?, ?, ?)
RETURNING id, make, model, year, vin`

type CreateVehicleParams struct {
	Make  string
	Model string
	Year  int64
	Vin   sql.NullString
}

func (q *Queries) CreateVehicle(ctx context.Context, arg CreateVehicleParams) (Vehicle, error) {
	row := q.db.QueryRowContext(ctx, createVehicle, arg.Make, arg.Model, arg.Year, arg.Vin)
	var i Vehicle
	err := row.Scan(&i.ID, &i.Make, &i.Model, &i.Year, &i.Vin)
	return i, err
}

const getVehicle = `SELECT id, make, model, year, vin FROM vehicles WHERE id = ?`

func (q *Queries) GetVehicle(ctx context.Context, id int64) (Vehicle, error) {
	row := q.db.QueryRowContext(ctx, getVehicle, id)
	var i Vehicle
	err := row.Scan(&i.ID, &i.Make, &i.Model, &i.Year, &i.Vin)
	return i, err
}

const listVehicles = `SELECT id, make, model, year, vin FROM vehicles ORDER BY id`

func (q *Queries) ListVehicles(ctx context.Context) ([]Vehicle, error) {
	rows, err := q.db.QueryContext(ctx, listVehicles)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Vehicle
	for rows.Next() {
		var i Vehicle
		if err := rows.Scan(&i.ID, &i.Make, &i.Model, &i.Year, &i.Vin); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createMaintenanceRecord = `INSERT INTO maintenance_records
    (vehicle_id, service_date, service_type, description, cost_cents, mileage, service_provider, notes)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id, created_at`

type CreateMaintenanceRecordParams struct {
	VehicleID       int64
	ServiceDate     string
	ServiceType     string
	Description     string
	CostCents       sql.NullInt64
	Mileage         sql.NullInt64
	ServiceProvider string
	Notes           string
}

type CreateMaintenanceRecordRow struct {
	ID        int64
	CreatedAt string
}

func (q *Queries) CreateMaintenanceRecord(ctx context.Context, arg CreateMaintenanceRecordParams) (CreateMaintenanceRecordRow, error) {
	row := q.db.QueryRowContext(ctx, createMaintenanceRecord,
		arg.VehicleID,
		arg.ServiceDate,
		arg.ServiceType,
		arg.Description,
		arg.CostCents,
		arg.Mileage,
		arg.ServiceProvider,
		arg.Notes,
	)
	var i CreateMaintenanceRecordRow
	err := row.Scan(&i.ID, &i.CreatedAt)
	return i, err
}

const listRecordsByVehicle = `SELECT id, vehicle_id, service_date, service_type, description,
    cost_cents, mileage, service_provider, notes, created_at
FROM maintenance_records
WHERE vehicle_id = ?
ORDER BY service_date DESC, id DESC`

func (q *Queries) ListRecordsByVehicle(ctx context.Context, vehicleID int64) ([]MaintenanceRecord, error) {
	rows, err := q.db.QueryContext(ctx, listRecordsByVehicle, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []MaintenanceRecord
	for rows.Next() {
		var i MaintenanceRecord
		if err := rows.Scan(
			&i.ID,
			&i.VehicleID,
			&i.ServiceDate,
			&i.ServiceType,
			&i.Description,
			&i.CostCents,
			&i.Mileage,
			&i.ServiceProvider,
			&i.Notes,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listMaintenanceTypes = `SELECT id, name, description, recommended_interval_months, recommended_interval_miles
FROM maintenance_types
ORDER BY name`

func (q *Queries) ListMaintenanceTypes(ctx context.Context) ([]MaintenanceType, error) {
	rows, err := q.db.QueryContext(ctx, listMaintenanceTypes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []MaintenanceType
	for rows.Next() {
		var i MaintenanceType
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Description,
			&i.RecommendedIntervalMonths,
			&i.RecommendedIntervalMiles,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
