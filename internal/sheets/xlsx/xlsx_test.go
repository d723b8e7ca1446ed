package xlsx

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"garage/internal/records"
)

func TestWorkbookRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "log.xlsx")
	wb := New(path, "Maintenance")

	headers := []string{"Service Date", "Type", "Cost", "Mileage", "Notes"}
	rows := []records.Row{
		{records.DateCell(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)), records.Text("Oil Change"), records.Text("$45.00"), records.Number(45210), records.Empty()},
		{records.Text("2023-01-10"), records.Text("Tire Rotation"), records.Number(30), records.Empty(), records.Text("front left low")},
	}
	require.NoError(t, wb.Save(ctx, headers, rows))

	gotHeaders, gotRows, err := wb.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, headers, gotHeaders)
	require.Len(t, gotRows, 2)

	d, ok := gotRows[0][0].Date()
	require.True(t, ok, "date cell should load as a date")
	assert.Equal(t, "2024-01-10", d.String())
	assert.Equal(t, records.KindText, gotRows[0][2].Kind())
	n, ok := gotRows[0][3].Number()
	require.True(t, ok)
	assert.Equal(t, 45210.0, n)

	assert.Equal(t, "2023-01-10", gotRows[1][0].String())
	assert.Equal(t, "front left low", gotRows[1][4].String())

	// Saving what was loaded changes nothing.
	require.NoError(t, wb.Save(ctx, gotHeaders, gotRows))
	againHeaders, againRows, err := wb.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, gotHeaders, againHeaders)
	require.Len(t, againRows, len(gotRows))
	for i := range gotRows {
		assert.Equal(t, gotRows[i].Strings(), againRows[i].Strings())
	}
}

func TestWorkbookSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	wb := New(filepath.Join(t.TempDir(), "log.xlsx"), "")

	require.NoError(t, wb.Save(ctx, []string{"A", "B"}, []records.Row{
		records.TextRow("1", "2"), records.TextRow("3", "4"), records.TextRow("5", "6"),
	}))
	require.NoError(t, wb.Save(ctx, []string{"A", "B"}, []records.Row{records.TextRow("7", "8")}))

	_, rows, err := wb.Load(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"7", "8"}, rows[0].Strings())
}

func TestWorkbookKeepsOtherSheets(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "log.xlsx")

	f := excelize.NewFile()
	_, err := f.NewSheet("Notes")
	require.NoError(t, err)
	require.NoError(t, f.SetCellStr("Notes", "A1", "keep me"))
	require.NoError(t, f.SetCellStr("Sheet1", "A1", "Date"))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	wb := New(path, "Sheet1")
	require.NoError(t, wb.Save(ctx, []string{"Date"}, []records.Row{records.TextRow("2024-01-01")}))

	f, err = excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue("Notes", "A1")
	require.NoError(t, err)
	assert.Equal(t, "keep me", v)
}

func TestWorkbookLoadMissingFile(t *testing.T) {
	_, _, err := New(filepath.Join(t.TempDir(), "nope.xlsx"), "").Load(context.Background())
	assert.Error(t, err)
}

func TestWorkbookLoadUnknownSheet(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "log.xlsx")
	require.NoError(t, New(path, "").Save(ctx, []string{"A"}, nil))

	_, _, err := New(path, "Missing").Load(ctx)
	assert.ErrorContains(t, err, "not found")
}

func TestIsDateFormat(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"yyyy-mm-dd", true},
		{"mm/dd/yy", true},
		{"d-mmm", true},
		{"#,##0.00", false},
		{"[Red]#,##0", false},
		{`"day "0`, false},
		{"0.00%", false},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, isDateFormat(tt.code))
		})
	}
	assert.True(t, isBuiltinDateFormat(14))
	assert.False(t, isBuiltinDateFormat(2))
}
