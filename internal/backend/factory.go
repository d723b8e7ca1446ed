package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"garage/internal/amqp"
	"garage/internal/services"
	gsheet "garage/internal/sheets/google"
	"garage/internal/sheets/memory"
	"garage/internal/sheets/xlsx"
	"garage/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// CreateTableStore implements Factory.CreateTableStore
func (f *DefaultFactory) CreateTableStore(ctx context.Context, config Config) (*TableResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case XLSXBackend:
		return f.createWorkbookBackend(config)
	case SheetsBackend:
		return f.createSheetsBackend(ctx, config)
	case MemoryBackend:
		return f.createMemoryBackend(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createWorkbookBackend(config Config) (*TableResult, error) {
	wb := xlsx.New(config.WorkbookPath, config.WorksheetName)

	f.logger.Info("Initialized workbook backend",
		"component", "backend",
		"path", config.WorkbookPath,
		"sheet", config.WorksheetName)

	return &TableResult{Store: wb}, nil
}

func (f *DefaultFactory) createSheetsBackend(ctx context.Context, config Config) (*TableResult, error) {
	cli, err := gsheet.New(ctx, gsheet.Options{
		SpreadsheetID:      config.GoogleSpreadsheetID,
		SheetName:          config.GoogleSheetName,
		ServiceAccountFile: config.GoogleServiceAccountFile,
		ServiceAccountJSON: config.GoogleServiceAccountJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
	}

	f.logger.Info("Initialized Google Sheets backend", "component", "backend", "sheet", config.GoogleSheetName)

	return &TableResult{Store: cli}, nil
}

func (f *DefaultFactory) createMemoryBackend(config Config) (*TableResult, error) {
	store := memory.NewTableFromFile(config.SeedFile)

	f.logger.Info("Initialized memory backend", "component", "backend", "seed_file", config.SeedFile)

	return &TableResult{Store: store}, nil
}

// CreateLog implements Factory.CreateLog. The AMQP publisher is optional: a
// broker that cannot be reached is logged and the log works without events.
func (f *DefaultFactory) CreateLog(ctx context.Context, config Config) (*LogResult, error) {
	if config.SQLiteDBPath == "" {
		return nil, fmt.Errorf("SQLite database path is required")
	}

	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	var publisher services.Publisher
	var amqpClient *amqp.Client
	if config.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(ctx, config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
		if err != nil {
			f.logger.Warn("Failed to initialize AMQP client, continuing without events",
				"component", "backend", "error", err)
		} else {
			publisher = amqpClient
			f.logger.Info("Initialized AMQP client",
				"component", "backend",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
		}
	}

	f.logger.Info("Initialized SQLite log",
		"component", "backend",
		"db_path", config.SQLiteDBPath,
		"amqp_enabled", publisher != nil)

	return &LogResult{
		Repo:      repo,
		Records:   services.NewRecordService(repo, repo, publisher),
		Projector: services.NewProjector(repo, repo, repo),
		Cleanup: func() error {
			var errs []error
			if amqpClient != nil {
				errs = append(errs, amqpClient.Close())
			}
			errs = append(errs, repo.Close())
			return errors.Join(errs...)
		},
	}, nil
}
