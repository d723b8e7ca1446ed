package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"garage/internal/core"
	"garage/internal/records"
	ports "garage/internal/sheets"
)

const defaultServiceType = "General Service"

// Imported notes are cut to this many characters.
const maxNotesLen = 500

// BatchWriter stores many records at once, all or none.
type BatchWriter interface {
	AddRecords(ctx context.Context, recs []core.MaintenanceRecord) (int, error)
}

// Importer copies a free-form maintenance sheet into the relational log.
type Importer struct {
	source   ports.TableStore
	vehicles ports.VehicleCatalog
	writer   BatchWriter
}

// ImportReport counts what an import did. SkippedRows holds 1-based data row
// numbers of rows without a usable date.
type ImportReport struct {
	Imported    int
	Skipped     int
	SkippedRows []int
}

func NewImporter(source ports.TableStore, vehicles ports.VehicleCatalog, writer BatchWriter) *Importer {
	return &Importer{source: source, vehicles: vehicles, writer: writer}
}

// importColumns maps record fields to sheet columns; -1 means absent. Each
// field takes the first header containing one of its keywords. The service
// column never reuses the date column, so "Service Date" stays a date.
type importColumns struct {
	date, service, cost, mileage, provider, notes int
}

func detectImportColumns(headers []string) importColumns {
	lower := make([]string, len(headers))
	for i, h := range headers {
		lower[i] = strings.ToLower(h)
	}
	first := func(skip int, keywords ...string) int {
		for i, h := range lower {
			if i == skip {
				continue
			}
			for _, k := range keywords {
				if strings.Contains(h, k) {
					return i
				}
			}
		}
		return -1
	}
	date := first(-1, "date")
	return importColumns{
		date:     date,
		service:  first(date, "service", "type"),
		cost:     first(-1, "cost", "price"),
		mileage:  first(-1, "mile", "odometer"),
		provider: first(-1, "provider", "shop"),
		notes:    first(-1, "note", "description"),
	}
}

// Import reads the source table and stores one record per row that has a
// valid date. Rows without one are counted as skipped.
func (im *Importer) Import(ctx context.Context, vehicleID int64) (ImportReport, error) {
	if _, err := im.vehicles.GetVehicle(ctx, vehicleID); err != nil {
		return ImportReport{}, err
	}
	headers, rows, err := im.source.Load(ctx)
	if err != nil {
		return ImportReport{}, fmt.Errorf("%w: load sheet: %w", core.ErrPersistence, err)
	}

	cols := detectImportColumns(headers)
	var report ImportReport
	recs := make([]core.MaintenanceRecord, 0, len(rows))
	for i, row := range rows {
		rec, ok := toImportRecord(row, cols)
		if !ok {
			report.Skipped++
			report.SkippedRows = append(report.SkippedRows, i+1)
			continue
		}
		rec.VehicleID = vehicleID
		recs = append(recs, rec)
	}

	if len(recs) > 0 {
		n, err := im.writer.AddRecords(ctx, recs)
		if err != nil {
			return ImportReport{}, fmt.Errorf("import records: %w", err)
		}
		report.Imported = n
	}

	slog.InfoContext(ctx, "Sheet imported", "vehicle_id", vehicleID, "imported", report.Imported, "skipped", report.Skipped)
	return report, nil
}

func toImportRecord(row records.Row, cols importColumns) (core.MaintenanceRecord, bool) {
	date, ok := importDate(cellAt(row, cols.date))
	if !ok {
		return core.MaintenanceRecord{}, false
	}
	rec := core.MaintenanceRecord{
		ServiceDate: date,
		ServiceType: strings.TrimSpace(cellAt(row, cols.service).String()),
		Provider:    strings.TrimSpace(cellAt(row, cols.provider).String()),
		Notes:       strings.TrimSpace(cellAt(row, cols.notes).String()),
	}
	if rec.ServiceType == "" {
		rec.ServiceType = defaultServiceType
	}
	rec.Description = rec.Notes
	if m, ok := records.CellAmount(cellAt(row, cols.cost)); ok && m.Cents >= 0 {
		rec.Cost = &m
	}
	if d, ok := importMileage(cellAt(row, cols.mileage)); ok {
		rec.Distance = &d
	}
	if utf8.RuneCountInString(rec.Notes) > maxNotesLen {
		rec.Notes = string([]rune(rec.Notes)[:maxNotesLen])
		rec.Description = rec.Notes
	}
	return rec, true
}

func cellAt(row records.Row, i int) records.Cell {
	if i < 0 || i >= len(row) {
		return records.Empty()
	}
	return row[i]
}

func importDate(c records.Cell) (core.Date, bool) {
	if d, ok := c.Date(); ok {
		return d, true
	}
	if c.Kind() != records.KindText {
		return core.Date{}, false
	}
	return core.ParseDateLenient(c.String())
}

func importMileage(c records.Cell) (int64, bool) {
	var f float64
	switch c.Kind() {
	case records.KindNumber:
		f, _ = c.Number()
	case records.KindText:
		v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(c.String()), ",", ""), 64)
		if err != nil {
			return 0, false
		}
		f = v
	default:
		return 0, false
	}
	if f < 0 || math.IsNaN(f) || f > math.MaxInt32*1000.0 {
		return 0, false
	}
	return int64(f), true
}
