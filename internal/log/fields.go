package log

import "sort"

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldSuccess     = "success"
	FieldDuration    = "duration_ms"
	FieldBackend     = "backend"
	FieldVehicleID   = "vehicle_id"
	FieldRecordID    = "record_id"
	FieldServiceType = "service_type"
	FieldCostCents   = "cost_cents"
	FieldRows        = "rows"
	FieldColumns     = "columns"
	FieldPath        = "path"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentCLI      = "cli"
	ComponentSession  = "session"
	ComponentStorage  = "storage"
	ComponentAMQP     = "amqp"
	ComponentSheets   = "sheets"
	ComponentImporter = "importer"
	ComponentBackend  = "backend"
	ComponentPrefs    = "prefs"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpRead     = "read"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpList     = "list"
	OpSave     = "save"
	OpLoad     = "load"
	OpImport   = "import"
	OpProject  = "project"
	OpShutdown = "shutdown"
	OpStartup  = "startup"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithRecord adds maintenance record fields
func (f LogFields) WithRecord(vehicleID, recordID int64, serviceType string) LogFields {
	f[FieldVehicleID] = vehicleID
	if recordID > 0 {
		f[FieldRecordID] = recordID
	}
	if serviceType != "" {
		f[FieldServiceType] = serviceType
	}
	return f
}

// WithTable adds table shape fields
func (f LogFields) WithTable(columns, rows int) LogFields {
	f[FieldColumns] = columns
	f[FieldRows] = rows
	return f
}

// ToSlice converts LogFields to a slice for slog. Keys are emitted in
// sorted order so log lines are stable.
func (f LogFields) ToSlice() []any {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	slice := make([]any, 0, len(f)*2)
	for _, k := range keys {
		slice = append(slice, k, f[k])
	}
	return slice
}
