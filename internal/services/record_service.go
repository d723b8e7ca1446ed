package services

import (
	"context"
	"fmt"
	"log/slog"

	"garage/internal/amqp"
	"garage/internal/core"
	applog "garage/internal/log"
	ports "garage/internal/sheets"
)

// Publisher announces stored records. *amqp.Client implements it.
type Publisher interface {
	PublishRecordAdded(ctx context.Context, msg *amqp.RecordAddedMessage) error
}

// RecordService orchestrates vehicle and record operations across the
// relational log and the optional event publisher.
type RecordService struct {
	log       ports.MaintenanceLog
	vehicles  ports.VehicleCatalog
	publisher Publisher
}

// NewRecordService wires the service. publisher may be nil.
func NewRecordService(log ports.MaintenanceLog, vehicles ports.VehicleCatalog, publisher Publisher) *RecordService {
	return &RecordService{log: log, vehicles: vehicles, publisher: publisher}
}

func (s *RecordService) AddVehicle(ctx context.Context, v core.Vehicle) (int64, error) {
	id, err := s.vehicles.AddVehicle(ctx, v)
	if err != nil {
		return 0, fmt.Errorf("add vehicle: %w", err)
	}
	return id, nil
}

func (s *RecordService) ListVehicles(ctx context.Context) ([]core.Vehicle, error) {
	return s.vehicles.ListVehicles(ctx)
}

func (s *RecordService) Vehicle(ctx context.Context, id int64) (core.Vehicle, error) {
	return s.vehicles.GetVehicle(ctx, id)
}

// Records returns the vehicle's records, newest first.
func (s *RecordService) Records(ctx context.Context, vehicleID int64) ([]core.MaintenanceRecord, error) {
	if _, err := s.vehicles.GetVehicle(ctx, vehicleID); err != nil {
		return nil, err
	}
	return s.log.LoadRecordsFor(ctx, vehicleID)
}

// AddRecord stores the record and then publishes an event. A publish failure
// is logged and does not fail the call: the record is already stored.
func (s *RecordService) AddRecord(ctx context.Context, r core.MaintenanceRecord) (int64, error) {
	id, err := s.log.AddRecord(ctx, r)
	if err != nil {
		return 0, fmt.Errorf("add record: %w", err)
	}

	if err := s.publish(ctx, amqp.NewRecordAddedMessage(id, r.VehicleID, r.ServiceType, r.ServiceDate.String())); err != nil {
		f := applog.NewFields().
			WithComponent(applog.ComponentAMQP).
			WithRecord(r.VehicleID, id, r.ServiceType).
			WithError(err)
		slog.ErrorContext(ctx, "Failed to publish record added message", f.ToSlice()...)
	}
	return id, nil
}

// EditRecord passes through to the log, which may report core.ErrNotImplemented.
func (s *RecordService) EditRecord(ctx context.Context, r core.MaintenanceRecord) error {
	return s.log.EditRecord(ctx, r)
}

// DeleteRecord passes through to the log, which may report core.ErrNotImplemented.
func (s *RecordService) DeleteRecord(ctx context.Context, vehicleID, recordID int64) error {
	return s.log.DeleteRecord(ctx, vehicleID, recordID)
}

func (s *RecordService) publish(ctx context.Context, msg *amqp.RecordAddedMessage) error {
	if s.publisher == nil {
		slog.DebugContext(ctx, "AMQP publisher not configured, skipping record added message")
		return nil
	}
	return s.publisher.PublishRecordAdded(ctx, msg)
}
