package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// Sheet backend
	SheetBackend  string
	WorkbookPath  string
	WorksheetName string

	// Google Sheets
	GoogleSpreadsheetID      string
	GoogleSheetName          string
	GoogleServiceAccountFile string
	GoogleServiceAccountJSON string

	// Database
	SQLiteDBPath string

	// AMQP, optional
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Preferences
	PrefsPath string

	// Recency buckets, in days
	RecencyNewDays int
	RecencyOldDays int

	LogLevel string
}

func Load() *Config {
	return &Config{
		SheetBackend:  strings.ToLower(getEnv("SHEET_BACKEND", "xlsx")),
		WorkbookPath:  getEnv("WORKBOOK_PATH", "./data/maintenance.xlsx"),
		WorksheetName: getEnv("WORKSHEET_NAME", ""),

		GoogleSpreadsheetID:      getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:          getEnv("GOOGLE_SHEET_NAME", "Maintenance"),
		GoogleServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", ""),
		GoogleServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/garage.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "garage"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "maintenance_records"),

		PrefsPath: getEnv("PREFS_PATH", "./data/prefs.bolt"),

		RecencyNewDays: getEnvInt("RECENCY_NEW_DAYS", 90),
		RecencyOldDays: getEnvInt("RECENCY_OLD_DAYS", 180),

		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}
}

// ValidSheetBackends lists the accepted SHEET_BACKEND values.
var ValidSheetBackends = []string{"xlsx", "sheets", "memory"}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	isValidBackend := false
	for _, backend := range ValidSheetBackends {
		if c.SheetBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid sheet backend '%s': must be one of %v", c.SheetBackend, ValidSheetBackends))
	}

	switch c.SheetBackend {
	case "xlsx":
		if c.WorkbookPath == "" {
			errors = append(errors, "workbook path cannot be empty when using xlsx backend")
		} else if !strings.HasSuffix(strings.ToLower(c.WorkbookPath), ".xlsx") {
			errors = append(errors, fmt.Sprintf("workbook path '%s' must end in .xlsx", c.WorkbookPath))
		}
	case "sheets":
		if c.GoogleSpreadsheetID == "" {
			errors = append(errors, "Google Spreadsheet ID is required when using sheets backend")
		}
		if c.GoogleServiceAccountFile == "" && c.GoogleServiceAccountJSON == "" && os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") == "" {
			errors = append(errors, "either GOOGLE_SERVICE_ACCOUNT_FILE or GOOGLE_SERVICE_ACCOUNT_JSON must be provided for sheets backend")
		}
		if c.GoogleServiceAccountFile != "" {
			if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
				errors = append(errors, fmt.Sprintf("Google service account file does not exist: %s", c.GoogleServiceAccountFile))
			}
		}
	}

	if c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty")
	}
	if c.PrefsPath == "" {
		errors = append(errors, "preferences path cannot be empty")
	}

	// AMQP is optional; when set it must be a usable broker URL
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.RecencyNewDays < 1 {
		errors = append(errors, fmt.Sprintf("invalid recency new days %d: must be at least 1", c.RecencyNewDays))
	}
	if c.RecencyOldDays < c.RecencyNewDays {
		errors = append(errors, fmt.Sprintf("invalid recency old days %d: must be at least the new days (%d)", c.RecencyOldDays, c.RecencyNewDays))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
