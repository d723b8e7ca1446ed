package memory

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"garage/internal/core"
	"garage/internal/records"
	ports "garage/internal/sheets"
)

var (
	_ ports.TableStore     = (*Table)(nil)
	_ ports.MaintenanceLog = (*Log)(nil)
	_ ports.VehicleCatalog = (*Log)(nil)
	_ ports.TypeCatalog    = (*Log)(nil)
)

// Table is an in-process TableStore. Saved data lives until the process exits.
type Table struct {
	mu      sync.Mutex
	headers []string
	rows    []records.Row
	saves   int
}

func NewTable(headers []string, rows []records.Row) *Table {
	t := &Table{}
	t.set(headers, rows)
	return t
}

// NewTableFromFile seeds a table from a comma separated text file: the first
// non-comment line is the header row. A missing file yields the default
// maintenance log headers and no rows.
func NewTableFromFile(path string) *Table {
	recs := readRecords(path)
	if len(recs) == 0 {
		return NewTable([]string{"Service Date", "Type", "Cost", "Mileage", "Notes"}, nil)
	}
	rows := make([]records.Row, 0, len(recs)-1)
	for _, r := range recs[1:] {
		rows = append(rows, records.TextRow(r...))
	}
	return NewTable(recs[0], rows)
}

func (t *Table) Load(_ context.Context) ([]string, []records.Row, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.headers...), cloneRows(t.rows), nil
}

func (t *Table) Save(_ context.Context, headers []string, rows []records.Row) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.set(headers, rows)
	t.saves++
	return nil
}

// Saves reports how many times Save succeeded.
func (t *Table) Saves() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.saves
}

func (t *Table) set(headers []string, rows []records.Row) {
	t.headers = append([]string(nil), headers...)
	t.rows = cloneRows(rows)
}

func cloneRows(in []records.Row) []records.Row {
	out := make([]records.Row, len(in))
	for i, r := range in {
		out[i] = r.Clone()
	}
	return out
}

// Log is an in-process relational store for vehicles, records and types.
type Log struct {
	mu       sync.Mutex
	vehicles []core.Vehicle
	records  []core.MaintenanceRecord
	types    []core.MaintenanceType
	nextID   int64
}

func NewLog(types []core.MaintenanceType) *Log {
	l := &Log{types: append([]core.MaintenanceType(nil), types...)}
	sort.SliceStable(l.types, func(i, j int) bool { return l.types[i].Name < l.types[j].Name })
	return l
}

func (l *Log) id() int64 {
	l.nextID++
	return l.nextID
}

func (l *Log) AddVehicle(_ context.Context, v core.Vehicle) (int64, error) {
	if err := v.Validate(); err != nil {
		return 0, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if v.VIN != "" {
		for _, o := range l.vehicles {
			if strings.EqualFold(o.VIN, v.VIN) {
				return 0, fmt.Errorf("%w: %s", core.ErrDuplicateVIN, v.VIN)
			}
		}
	}
	v.ID = l.id()
	l.vehicles = append(l.vehicles, v)
	return v.ID, nil
}

func (l *Log) ListVehicles(_ context.Context) ([]core.Vehicle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]core.Vehicle(nil), l.vehicles...), nil
}

func (l *Log) GetVehicle(_ context.Context, id int64) (core.Vehicle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, v := range l.vehicles {
		if v.ID == id {
			return v, nil
		}
	}
	return core.Vehicle{}, fmt.Errorf("%w: vehicle %d", core.ErrNotFound, id)
}

func (l *Log) LoadRecordsFor(_ context.Context, vehicleID int64) ([]core.MaintenanceRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []core.MaintenanceRecord
	for _, r := range l.records {
		if r.VehicleID == vehicleID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ServiceDate.After(out[j].ServiceDate.Time)
	})
	return out, nil
}

func (l *Log) AddRecord(_ context.Context, r core.MaintenanceRecord) (int64, error) {
	if err := r.Validate(); err != nil {
		return 0, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.hasVehicle(r.VehicleID) {
		return 0, fmt.Errorf("%w: %d", core.ErrMissingVehicle, r.VehicleID)
	}
	r.ID = l.id()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	l.records = append(l.records, r)
	return r.ID, nil
}

// AddRecords stores every record or none of them.
func (l *Log) AddRecords(_ context.Context, recs []core.MaintenanceRecord) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, r := range recs {
		if err := r.Validate(); err != nil {
			return 0, fmt.Errorf("record %d: %w", i+1, err)
		}
		if !l.hasVehicle(r.VehicleID) {
			return 0, fmt.Errorf("record %d: %w: %d", i+1, core.ErrMissingVehicle, r.VehicleID)
		}
	}
	now := time.Now().UTC()
	for _, r := range recs {
		r.ID = l.id()
		if r.CreatedAt.IsZero() {
			r.CreatedAt = now
		}
		l.records = append(l.records, r)
	}
	return len(recs), nil
}

func (l *Log) hasVehicle(id int64) bool {
	for _, v := range l.vehicles {
		if v.ID == id {
			return true
		}
	}
	return false
}

func (l *Log) EditRecord(context.Context, core.MaintenanceRecord) error {
	return fmt.Errorf("edit record: %w", core.ErrNotImplemented)
}

func (l *Log) DeleteRecord(context.Context, int64, int64) error {
	return fmt.Errorf("delete record: %w", core.ErrNotImplemented)
}

func (l *Log) ListMaintenanceTypes(_ context.Context) ([]core.MaintenanceType, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]core.MaintenanceType(nil), l.types...), nil
}

// readRecords parses a seed file. Quoted fields may contain commas, records
// may have any width and lines starting with '#' are skipped. A missing or
// malformed file yields no records.
func readRecords(path string) [][]string {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.Comment = '#'
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	recs, err := r.ReadAll()
	if err != nil {
		slog.Warn("Ignoring malformed seed file", "path", path, "error", err)
		return nil
	}
	for _, rec := range recs {
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
	}
	return recs
}
