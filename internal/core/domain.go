package core

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

type (
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	Vehicle struct {
		ID    int64
		Make  string
		Model string
		Year  int
		VIN   string // optional, unique when set
	}

	// MaintenanceType is reference data describing a recommended service interval.
	MaintenanceType struct {
		ID               int64
		Name             string
		Description      string
		IntervalMonths   int
		IntervalDistance int
	}

	// MaintenanceRecord is one service event for a vehicle. ServiceType is free
	// text and is matched against MaintenanceType.Name by exact equality only.
	MaintenanceRecord struct {
		ID          int64
		VehicleID   int64
		ServiceDate Date
		ServiceType string
		Description string
		Cost        *Money
		Distance    *int64
		Provider    string
		Notes       string
		CreatedAt   time.Time
	}
)

var (
	ErrInvalidDay         = errors.New("invalid day")
	ErrInvalidMonth       = errors.New("invalid month")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidYear        = errors.New("invalid year")
	ErrEmptyServiceType   = errors.New("empty service type")
	ErrEmptyMake          = errors.New("empty make")
	ErrEmptyModel         = errors.New("empty model")
	ErrNegativeDistance   = errors.New("negative distance reading")
	ErrNotFound           = errors.New("not found")
	ErrSchemaMismatch     = errors.New("schema mismatch")
	ErrNotImplemented     = errors.New("not implemented")
	ErrPersistence        = errors.New("persistence failure")
	ErrDuplicateVIN       = errors.New("duplicate vin")
	ErrMissingVehicle     = errors.New("vehicle does not exist")
	errDescriptionTooLong = errors.New("description too long (max 500 characters)")
)

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	_, month, day := d.Date()
	if day < 1 || day > 31 {
		return ErrInvalidDay
	}
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, int(m), d)
}

// IsEmpty returns true if the date is zero, used for optional dates
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

// String renders the date as YYYY-MM-DD, or "" when empty.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (v Vehicle) Validate() error {
	if strings.TrimSpace(v.Make) == "" {
		return ErrEmptyMake
	}
	if strings.TrimSpace(v.Model) == "" {
		return ErrEmptyModel
	}
	if v.Year < 1886 || v.Year > 3000 {
		return ErrInvalidYear
	}
	return nil
}

// Label is the "year make model" display name.
func (v Vehicle) Label() string {
	return strings.TrimSpace(strings.Join([]string{strconv.Itoa(v.Year), v.Make, v.Model}, " "))
}

func (r MaintenanceRecord) Validate() error {
	if err := r.ServiceDate.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.ServiceType) == "" {
		return ErrEmptyServiceType
	}
	if len(r.Description) > 500 || len(r.Notes) > 500 {
		return errDescriptionTooLong
	}
	if r.Cost != nil && r.Cost.Cents < 0 {
		return ErrInvalidAmount
	}
	if r.Distance != nil && *r.Distance < 0 {
		return ErrNegativeDistance
	}
	return nil
}
