// Package xlsx stores a table in one worksheet of a local .xlsx workbook.
package xlsx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"garage/internal/records"
	ports "garage/internal/sheets"
)

var _ ports.TableStore = (*Workbook)(nil)

const dateFormat = "yyyy-mm-dd"

// Workbook reads and writes a single worksheet. An empty Sheet selects the
// workbook's active sheet.
type Workbook struct {
	Path  string
	Sheet string
}

func New(path, sheet string) *Workbook {
	return &Workbook{Path: path, Sheet: strings.TrimSpace(sheet)}
}

// Load returns the first row as headers and every following row as data.
// Numeric cells formatted as dates come back as date cells.
func (w *Workbook) Load(ctx context.Context) ([]string, []records.Row, error) {
	f, err := excelize.OpenFile(w.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook %s: %w", w.Path, err)
	}
	defer f.Close()

	sheet, err := w.sheetName(f)
	if err != nil {
		return nil, nil, err
	}
	display, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(display) == 0 {
		return nil, nil, nil
	}

	headers := make([]string, len(display[0]))
	for i, h := range display[0] {
		headers[i] = strings.TrimSpace(h)
	}
	use1904 := uses1904(f)
	rows := make([]records.Row, 0, len(display)-1)
	for r := 1; r < len(display); r++ {
		row := make(records.Row, len(display[r]))
		for c := range display[r] {
			row[c], err = w.cell(f, sheet, c+1, r+1, display[r][c], at(raw, r, c), use1904)
			if err != nil {
				return nil, nil, err
			}
		}
		rows = append(rows, row)
	}

	slog.DebugContext(ctx, "Loaded workbook", "path", w.Path, "sheet", sheet, "rows", len(rows))
	return headers, rows, nil
}

func (w *Workbook) cell(f *excelize.File, sheet string, col, row int, display, raw string, use1904 bool) (records.Cell, error) {
	if display == "" && raw == "" {
		return records.Empty(), nil
	}
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return records.Cell{}, err
	}
	typ, err := f.GetCellType(sheet, ref)
	if err != nil {
		return records.Cell{}, fmt.Errorf("cell %s: %w", ref, err)
	}
	switch typ {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		n, perr := strconv.ParseFloat(raw, 64)
		if perr != nil {
			return records.Text(display), nil
		}
		if isDateStyle(f, sheet, ref) {
			t, derr := excelize.ExcelDateToTime(n, use1904)
			if derr == nil {
				return records.DateCell(t), nil
			}
		}
		return records.Number(n), nil
	case excelize.CellTypeDate:
		if t, perr := time.Parse(time.RFC3339, raw); perr == nil {
			return records.DateCell(t), nil
		}
		return records.Text(display), nil
	default:
		return records.Text(display), nil
	}
}

// Save replaces the worksheet with headers followed by rows. The workbook is
// written to a temporary file and renamed over the original, so a failure
// leaves the previous file intact.
func (w *Workbook) Save(ctx context.Context, headers []string, rows []records.Row) error {
	f, err := w.openOrCreate()
	if err != nil {
		return err
	}
	defer f.Close()

	sheet, err := w.sheetName(f)
	if err != nil {
		sheet = w.Sheet
	}
	tmp := "_garage_tmp"
	if _, err := f.NewSheet(tmp); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr(dateFormat)})
	if err != nil {
		return fmt.Errorf("create date style: %w", err)
	}

	head := make([]interface{}, len(headers))
	for i, h := range headers {
		head[i] = h
	}
	if err := f.SetSheetRow(tmp, "A1", &head); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}
	for r, row := range rows {
		for c, cell := range row {
			if err := writeCell(f, tmp, c+1, r+2, cell, dateStyle); err != nil {
				return err
			}
		}
	}

	if idx, _ := f.GetSheetIndex(sheet); idx >= 0 {
		if err := f.DeleteSheet(sheet); err != nil {
			return fmt.Errorf("replace sheet %q: %w", sheet, err)
		}
	}
	if err := f.SetSheetName(tmp, sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if idx, err := f.GetSheetIndex(sheet); err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}

	if err := w.writeAtomically(f); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Saved workbook", "path", w.Path, "sheet", sheet, "rows", len(rows))
	return nil
}

func writeCell(f *excelize.File, sheet string, col, row int, c records.Cell, dateStyle int) error {
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	switch c.Kind() {
	case records.KindEmpty:
		return nil
	case records.KindNumber:
		n, _ := c.Number()
		err = f.SetCellFloat(sheet, ref, n, -1, 64)
	case records.KindDate:
		d, _ := c.Date()
		if err = f.SetCellValue(sheet, ref, d.Time); err == nil {
			err = f.SetCellStyle(sheet, ref, ref, dateStyle)
		}
	default:
		err = f.SetCellStr(sheet, ref, c.String())
	}
	if err != nil {
		return fmt.Errorf("write cell %s: %w", ref, err)
	}
	return nil
}

func (w *Workbook) openOrCreate() (*excelize.File, error) {
	f, err := excelize.OpenFile(w.Path)
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("open workbook %s: %w", w.Path, err)
	}
	f = excelize.NewFile()
	if w.Sheet != "" {
		if err := f.SetSheetName("Sheet1", w.Sheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("name sheet: %w", err)
		}
	}
	return f, nil
}

func (w *Workbook) writeAtomically(f *excelize.File) error {
	dir := filepath.Dir(w.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create workbook dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".garage-*.xlsx")
	if err != nil {
		return fmt.Errorf("create temp workbook: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()

	if err := f.SaveAs(tmpPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write workbook: %w", err)
	}
	if err := os.Rename(tmpPath, w.Path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace workbook: %w", err)
	}
	return nil
}

func (w *Workbook) sheetName(f *excelize.File) (string, error) {
	if w.Sheet != "" {
		if idx, err := f.GetSheetIndex(w.Sheet); err != nil || idx < 0 {
			return "", fmt.Errorf("sheet %q not found in %s", w.Sheet, w.Path)
		}
		return w.Sheet, nil
	}
	name := f.GetSheetName(f.GetActiveSheetIndex())
	if name == "" {
		return "", fmt.Errorf("no active sheet in %s", w.Path)
	}
	return name, nil
}

// isDateStyle reports whether the cell's number format renders a date.
func isDateStyle(f *excelize.File, sheet, ref string) bool {
	id, err := f.GetCellStyle(sheet, ref)
	if err != nil || id == 0 {
		return false
	}
	style, err := f.GetStyle(id)
	if err != nil || style == nil {
		return false
	}
	if style.CustomNumFmt != nil {
		return isDateFormat(*style.CustomNumFmt)
	}
	return isBuiltinDateFormat(style.NumFmt)
}

func isBuiltinDateFormat(id int) bool {
	return (id >= 14 && id <= 17) || id == 22 || (id >= 27 && id <= 36) || (id >= 50 && id <= 58)
}

// isDateFormat checks a custom format code for day or year tokens outside
// quoted literals and bracketed sections.
func isDateFormat(code string) bool {
	var b strings.Builder
	depth, quoted := 0, false
	for _, r := range strings.ToLower(code) {
		switch {
		case r == '"':
			quoted = !quoted
		case quoted:
		case r == '[':
			depth++
		case r == ']':
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	plain := b.String()
	return strings.ContainsAny(plain, "yd")
}

func uses1904(f *excelize.File) bool {
	props, err := f.GetWorkbookProps()
	if err != nil || props.Date1904 == nil {
		return false
	}
	return *props.Date1904
}

func at(rows [][]string, r, c int) string {
	if r >= len(rows) || c >= len(rows[r]) {
		return ""
	}
	return rows[r][c]
}

func strPtr(s string) *string { return &s }
