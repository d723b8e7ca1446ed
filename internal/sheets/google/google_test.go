package google

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"garage/internal/records"
)

func TestNew_MissingSpreadsheetID(t *testing.T) {
	_, err := New(context.Background(), Options{})
	if err == nil {
		t.Fatal("expected error for missing spreadsheet id")
	}
	if err.Error() != "missing GOOGLE_SPREADSHEET_ID" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNew_MissingCredentials(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")

	_, err := New(context.Background(), Options{SpreadsheetID: "test-id"})
	if err == nil {
		t.Fatal("expected error without credentials")
	}
	if !strings.Contains(err.Error(), "missing service account credentials") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNew_UnreadableCredentialsFile(t *testing.T) {
	_, err := New(context.Background(), Options{
		SpreadsheetID:      "test-id",
		ServiceAccountFile: filepath.Join(t.TempDir(), "missing.json"),
	})
	if err == nil || !strings.Contains(err.Error(), "read service account file") {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestNew_InvalidCredentialsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sa.json")
	if err := os.WriteFile(path, []byte("not-json"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := New(context.Background(), Options{SpreadsheetID: "test-id", ServiceAccountFile: path})
	if err == nil {
		t.Fatal("expected error with invalid credentials")
	}
}

func TestClient_UninitializedService(t *testing.T) {
	c := &Client{spreadsheetID: "test", sheetName: "Maintenance"}
	if _, _, err := c.Load(context.Background()); err == nil {
		t.Error("expected load error without service")
	}
	if err := c.Save(context.Background(), []string{"A"}, nil); err == nil {
		t.Error("expected save error without service")
	}
}

func TestParseValues(t *testing.T) {
	values := [][]interface{}{
		{"Service Date ", "Type", "Cost"},
		{"2024-01-10", "Oil Change", 45.0},
		{},
		{"2023-01-10", "Tire Rotation", "N/A", true},
	}
	headers, rows := parseValues(values)

	if strings.Join(headers, "|") != "Service Date|Type|Cost" {
		t.Fatalf("unexpected headers: %v", headers)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if n, ok := rows[0][2].Number(); !ok || n != 45 {
		t.Errorf("expected numeric cost, got %v", rows[0][2])
	}
	if len(rows[1]) != 0 {
		t.Errorf("expected empty row, got %v", rows[1])
	}
	if got := rows[2][3].String(); got != "true" {
		t.Errorf("expected bool rendered as text, got %q", got)
	}
	if rows[2][0].Kind() != records.KindText {
		t.Errorf("expected text date, got kind %v", rows[2][0].Kind())
	}
}

func TestParseValuesEmpty(t *testing.T) {
	headers, rows := parseValues(nil)
	if headers != nil || rows != nil {
		t.Errorf("expected nothing, got %v %v", headers, rows)
	}
}

func TestBuildGridClearsStaleCells(t *testing.T) {
	rows := []records.Row{
		records.TextRow("2024-01-10", "Oil Change"),
		{records.Empty(), records.Number(30)},
	}
	grid := buildGrid([]string{"Date", "Type"}, rows, 5, 4)

	if len(grid) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(grid))
	}
	for i, line := range grid {
		if len(line) != 4 {
			t.Fatalf("row %d: expected 4 columns, got %d", i, len(line))
		}
	}
	if grid[0][0] != "Date" || grid[1][1] != "Oil Change" {
		t.Errorf("unexpected layout: %v", grid[:2])
	}
	if grid[2][0] != "" || grid[2][1] != 30.0 {
		t.Errorf("unexpected second row: %v", grid[2])
	}
	if grid[4][3] != "" || grid[1][3] != "" {
		t.Error("stale cells should be blanked")
	}
}

func TestBuildGridShrinksToTable(t *testing.T) {
	grid := buildGrid([]string{"A", "B"}, []records.Row{records.TextRow("1", "2")}, 0, 0)
	if len(grid) != 2 || len(grid[0]) != 2 {
		t.Fatalf("unexpected grid size: %v", grid)
	}
}

func TestExtent(t *testing.T) {
	r, c := extent([][]interface{}{{"a"}, {"a", "b", "c"}, {}})
	if r != 3 || c != 3 {
		t.Errorf("got %d x %d", r, c)
	}
}

func TestToValueKeepsTextLiteral(t *testing.T) {
	cases := []struct {
		cell records.Cell
		want interface{}
	}{
		{records.Text("007"), "'007"},
		{records.Text("1/2"), "'1/2"},
		{records.Text("=x"), "'=x"},
		{records.Text("+1"), "'+1"},
		{records.Text("-20"), "'-20"},
		{records.Text("'quoted"), "''quoted"},
		{records.Text("$45.50"), "'$45.50"},
		{records.Text("1,234"), "'1,234"},
		{records.Text("12%"), "'12%"},
		{records.Text("10:30"), "'10:30"},
		{records.Text("TRUE"), "'TRUE"},
		{records.Text("Oil Change"), "Oil Change"},
		{records.Text("5W-30 synthetic"), "5W-30 synthetic"},
		{records.Text("2024-01-10"), "2024-01-10"},
		{records.Text("1/10/2024"), "1/10/2024"},
		{records.Number(45), 45.0},
		{records.Empty(), ""},
	}
	for _, tc := range cases {
		if got := toValue(tc.cell); got != tc.want {
			t.Errorf("toValue(%q) = %v, want %v", tc.cell.String(), got, tc.want)
		}
	}
}

func TestBuildGridLiteralHeadersAndText(t *testing.T) {
	grid := buildGrid([]string{"2024", "Part"}, []records.Row{records.TextRow("=SUM(A1)", "007")}, 0, 0)
	if grid[0][0] != "'2024" || grid[0][1] != "Part" {
		t.Errorf("unexpected headers: %v", grid[0])
	}
	if grid[1][0] != "'=SUM(A1)" || grid[1][1] != "'007" {
		t.Errorf("unexpected row: %v", grid[1])
	}
}
