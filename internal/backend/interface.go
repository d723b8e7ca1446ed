package backend

import (
	"context"

	"garage/internal/services"
	ports "garage/internal/sheets"
	"garage/internal/storage"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// TableResult contains the sheet store and optional cleanup function
type TableResult struct {
	Store   ports.TableStore
	Cleanup CleanupFunc
}

// LogResult contains the relational log, the services built on it and a
// cleanup function releasing the database and broker connections.
type LogResult struct {
	Repo      *storage.SQLiteRepository
	Records   *services.RecordService
	Projector *services.Projector
	Cleanup   CleanupFunc
}

// Factory creates stores based on configuration
type Factory interface {
	// CreateTableStore opens the sheet backend selected by config.Type
	CreateTableStore(ctx context.Context, config Config) (*TableResult, error)
	// CreateLog opens the relational maintenance log
	CreateLog(ctx context.Context, config Config) (*LogResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	// Sheet backend type
	Type BackendType

	// Workbook specific
	WorkbookPath  string
	WorksheetName string

	// Google Sheets specific
	GoogleSpreadsheetID      string
	GoogleSheetName          string
	GoogleServiceAccountFile string
	GoogleServiceAccountJSON string

	// Memory backend specific
	SeedFile string

	// Relational log
	SQLiteDBPath string
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// BackendType represents the type of sheet backend
type BackendType string

const (
	XLSXBackend   BackendType = "xlsx"
	SheetsBackend BackendType = "sheets"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case XLSXBackend, SheetsBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
