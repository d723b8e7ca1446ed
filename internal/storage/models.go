package storage

import "database/sql"

type Vehicle struct {
	ID    int64
	Make  string
	Model string
	Year  int64
	Vin   sql.NullString
}

type MaintenanceRecord struct {
	ID              int64
	VehicleID       int64
	ServiceDate     string
	ServiceType     string
	Description     string
	CostCents       sql.NullInt64
	Mileage         sql.NullInt64
	ServiceProvider string
	Notes           string
	CreatedAt       string
}

type MaintenanceType struct {
	ID                        int64
	Name                      string
	Description               string
	RecommendedIntervalMonths int64
	RecommendedIntervalMiles  int64
}
