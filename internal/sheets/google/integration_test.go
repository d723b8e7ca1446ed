//go:build integration

package google

import (
	"context"
	"os"
	"testing"

	"garage/internal/records"
)

// Integration tests require a scratch spreadsheet and a service account.
// Run with: go test -tags=integration ./internal/sheets/google

func TestIntegration_SaveLoadRoundTrip(t *testing.T) {
	spreadsheetID := os.Getenv("GOOGLE_SPREADSHEET_ID")
	if spreadsheetID == "" {
		t.Skip("GOOGLE_SPREADSHEET_ID not set, skipping integration test")
	}

	ctx := context.Background()
	client, err := New(ctx, Options{
		SpreadsheetID:      spreadsheetID,
		SheetName:          os.Getenv("GOOGLE_SHEET_NAME"),
		ServiceAccountJSON: os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"),
		ServiceAccountFile: os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"),
	})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	headers := []string{"Service Date", "Type", "Cost"}
	rows := []records.Row{
		records.TextRow("2024-01-10", "Oil Change", "45"),
		records.TextRow("2023-01-10", "Tire Rotation", "30"),
	}
	if err := client.Save(ctx, headers, rows); err != nil {
		t.Fatalf("save: %v", err)
	}

	gotHeaders, gotRows, err := client.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(gotHeaders) != 3 || len(gotRows) != 2 {
		t.Fatalf("unexpected table: %v %v", gotHeaders, gotRows)
	}
	if gotRows[1][1].String() != "Tire Rotation" {
		t.Errorf("unexpected row order: %v", gotRows)
	}

	if err := client.Save(ctx, gotHeaders, gotRows); err != nil {
		t.Fatalf("second save: %v", err)
	}
}
