package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"garage/internal/core"
	ports "garage/internal/sheets"
)

var (
	_ ports.MaintenanceLog = (*SQLiteRepository)(nil)
	_ ports.VehicleCatalog = (*SQLiteRepository)(nil)
	_ ports.TypeCatalog    = (*SQLiteRepository)(nil)
)

const createdAtLayout = "2006-01-02 15:04:05"

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return NewRepositoryFromDB(db), nil
}

// NewRepositoryFromDB wraps an already migrated database.
func NewRepositoryFromDB(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, queries: New(db)}
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// AddVehicle implements sheets.VehicleCatalog
func (r *SQLiteRepository) AddVehicle(ctx context.Context, v core.Vehicle) (int64, error) {
	if err := v.Validate(); err != nil {
		return 0, err
	}
	vin := strings.TrimSpace(v.VIN)
	row, err := r.queries.CreateVehicle(ctx, CreateVehicleParams{
		Make:  strings.TrimSpace(v.Make),
		Model: strings.TrimSpace(v.Model),
		Year:  int64(v.Year),
		Vin:   sql.NullString{String: vin, Valid: vin != ""},
	})
	if err != nil {
		if isConstraint(err, sqlite3.SQLITE_CONSTRAINT_UNIQUE) {
			return 0, fmt.Errorf("%w: %s", core.ErrDuplicateVIN, vin)
		}
		return 0, fmt.Errorf("create vehicle: %w", err)
	}

	slog.InfoContext(ctx, "Vehicle saved to SQLite", "id", row.ID, "make", row.Make, "model", row.Model, "year", row.Year)
	return row.ID, nil
}

// ListVehicles implements sheets.VehicleCatalog
func (r *SQLiteRepository) ListVehicles(ctx context.Context) ([]core.Vehicle, error) {
	rows, err := r.queries.ListVehicles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	out := make([]core.Vehicle, 0, len(rows))
	for _, v := range rows {
		out = append(out, toVehicle(v))
	}
	return out, nil
}

// GetVehicle implements sheets.VehicleCatalog
func (r *SQLiteRepository) GetVehicle(ctx context.Context, id int64) (core.Vehicle, error) {
	v, err := r.queries.GetVehicle(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Vehicle{}, fmt.Errorf("%w: vehicle %d", core.ErrNotFound, id)
	}
	if err != nil {
		return core.Vehicle{}, fmt.Errorf("get vehicle %d: %w", id, err)
	}
	return toVehicle(v), nil
}

// LoadRecordsFor implements sheets.MaintenanceLog. Records come newest first.
func (r *SQLiteRepository) LoadRecordsFor(ctx context.Context, vehicleID int64) ([]core.MaintenanceRecord, error) {
	rows, err := r.queries.ListRecordsByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("list records for vehicle %d: %w", vehicleID, err)
	}
	out := make([]core.MaintenanceRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := toRecord(row)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// AddRecord implements sheets.MaintenanceLog
func (r *SQLiteRepository) AddRecord(ctx context.Context, rec core.MaintenanceRecord) (int64, error) {
	if err := rec.Validate(); err != nil {
		return 0, err
	}
	if _, err := r.GetVehicle(ctx, rec.VehicleID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return 0, fmt.Errorf("%w: %d", core.ErrMissingVehicle, rec.VehicleID)
		}
		return 0, err
	}

	row, err := r.queries.CreateMaintenanceRecord(ctx, recordParams(rec))
	if err != nil {
		return 0, fmt.Errorf("create maintenance record: %w", err)
	}

	slog.InfoContext(ctx, "Maintenance record saved to SQLite",
		"id", row.ID,
		"vehicle_id", rec.VehicleID,
		"service_type", rec.ServiceType,
		"service_date", rec.ServiceDate.String())
	return row.ID, nil
}

// AddRecords inserts all records in one transaction: either every record is
// stored or none is.
func (r *SQLiteRepository) AddRecords(ctx context.Context, recs []core.MaintenanceRecord) (int, error) {
	for i, rec := range recs {
		if err := rec.Validate(); err != nil {
			return 0, fmt.Errorf("record %d: %w", i+1, err)
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	q := r.queries.WithTx(tx)
	for i, rec := range recs {
		if _, err := q.CreateMaintenanceRecord(ctx, recordParams(rec)); err != nil {
			return 0, fmt.Errorf("create maintenance record %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return len(recs), nil
}

// EditRecord is not supported by the relational store.
func (r *SQLiteRepository) EditRecord(context.Context, core.MaintenanceRecord) error {
	return fmt.Errorf("edit maintenance record: %w", core.ErrNotImplemented)
}

// DeleteRecord is not supported by the relational store.
func (r *SQLiteRepository) DeleteRecord(context.Context, int64, int64) error {
	return fmt.Errorf("delete maintenance record: %w", core.ErrNotImplemented)
}

// ListMaintenanceTypes implements sheets.TypeCatalog
func (r *SQLiteRepository) ListMaintenanceTypes(ctx context.Context) ([]core.MaintenanceType, error) {
	rows, err := r.queries.ListMaintenanceTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list maintenance types: %w", err)
	}
	out := make([]core.MaintenanceType, 0, len(rows))
	for _, t := range rows {
		out = append(out, core.MaintenanceType{
			ID:               t.ID,
			Name:             t.Name,
			Description:      t.Description,
			IntervalMonths:   int(t.RecommendedIntervalMonths),
			IntervalDistance: int(t.RecommendedIntervalMiles),
		})
	}
	return out, nil
}

func recordParams(rec core.MaintenanceRecord) CreateMaintenanceRecordParams {
	p := CreateMaintenanceRecordParams{
		VehicleID:       rec.VehicleID,
		ServiceDate:     rec.ServiceDate.String(),
		ServiceType:     strings.TrimSpace(rec.ServiceType),
		Description:     rec.Description,
		ServiceProvider: rec.Provider,
		Notes:           rec.Notes,
	}
	if rec.Cost != nil {
		p.CostCents = sql.NullInt64{Int64: rec.Cost.Cents, Valid: true}
	}
	if rec.Distance != nil {
		p.Mileage = sql.NullInt64{Int64: *rec.Distance, Valid: true}
	}
	return p
}

func toVehicle(v Vehicle) core.Vehicle {
	return core.Vehicle{ID: v.ID, Make: v.Make, Model: v.Model, Year: int(v.Year), VIN: v.Vin.String}
}

func toRecord(row MaintenanceRecord) (core.MaintenanceRecord, error) {
	date, ok := core.ParseDate(row.ServiceDate)
	if !ok {
		return core.MaintenanceRecord{}, fmt.Errorf("record %d: invalid service date %q", row.ID, row.ServiceDate)
	}
	rec := core.MaintenanceRecord{
		ID:          row.ID,
		VehicleID:   row.VehicleID,
		ServiceDate: date,
		ServiceType: row.ServiceType,
		Description: row.Description,
		Provider:    row.ServiceProvider,
		Notes:       row.Notes,
	}
	if row.CostCents.Valid {
		rec.Cost = &core.Money{Cents: row.CostCents.Int64}
	}
	if row.Mileage.Valid {
		m := row.Mileage.Int64
		rec.Distance = &m
	}
	if t, err := time.Parse(createdAtLayout, row.CreatedAt); err == nil {
		rec.CreatedAt = t
	}
	return rec, nil
}

func isConstraint(err error, code int) bool {
	var sqliteErr *sqlite.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code() == code
}
