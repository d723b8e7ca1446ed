package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"garage/internal/amqp"
	"garage/internal/core"
	"garage/internal/sheets/memory"
)

type recordingPublisher struct {
	msgs []*amqp.RecordAddedMessage
	err  error
}

func (p *recordingPublisher) PublishRecordAdded(_ context.Context, msg *amqp.RecordAddedMessage) error {
	p.msgs = append(p.msgs, msg)
	return p.err
}

func newServiceWithVehicle(t *testing.T, pub Publisher) (*RecordService, int64) {
	t.Helper()
	log := memory.NewLog(nil)
	svc := NewRecordService(log, log, pub)
	id, err := svc.AddVehicle(context.Background(), core.Vehicle{Make: "Honda", Model: "Civic", Year: 2015})
	require.NoError(t, err)
	return svc, id
}

func TestRecordServiceAddRecordPublishes(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	svc, vid := newServiceWithVehicle(t, pub)

	id, err := svc.AddRecord(ctx, core.MaintenanceRecord{VehicleID: vid, ServiceDate: core.NewDate(2024, 1, 10), ServiceType: "Oil Change"})
	require.NoError(t, err)

	require.Len(t, pub.msgs, 1)
	assert.Equal(t, id, pub.msgs[0].RecordID)
	assert.Equal(t, vid, pub.msgs[0].VehicleID)
	assert.Equal(t, "2024-01-10", pub.msgs[0].ServiceDate)
}

func TestRecordServicePublishFailureDoesNotFailAdd(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc, vid := newServiceWithVehicle(t, pub)

	_, err := svc.AddRecord(ctx, core.MaintenanceRecord{VehicleID: vid, ServiceDate: core.NewDate(2024, 1, 10), ServiceType: "Oil Change"})
	require.NoError(t, err)

	recs, err := svc.Records(ctx, vid)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestRecordServiceWithoutPublisher(t *testing.T) {
	svc, vid := newServiceWithVehicle(t, nil)
	_, err := svc.AddRecord(context.Background(), core.MaintenanceRecord{VehicleID: vid, ServiceDate: core.NewDate(2024, 1, 10), ServiceType: "Oil Change"})
	assert.NoError(t, err)
}

func TestRecordServiceRejectsInvalidRecord(t *testing.T) {
	pub := &recordingPublisher{}
	svc, vid := newServiceWithVehicle(t, pub)

	_, err := svc.AddRecord(context.Background(), core.MaintenanceRecord{VehicleID: vid, ServiceDate: core.NewDate(2024, 1, 10)})
	assert.ErrorIs(t, err, core.ErrEmptyServiceType)
	assert.Empty(t, pub.msgs)
}

func TestRecordServiceEditDeleteUnsupported(t *testing.T) {
	ctx := context.Background()
	svc, vid := newServiceWithVehicle(t, nil)

	assert.ErrorIs(t, svc.EditRecord(ctx, core.MaintenanceRecord{ID: 1, VehicleID: vid}), core.ErrNotImplemented)
	assert.ErrorIs(t, svc.DeleteRecord(ctx, vid, 1), core.ErrNotImplemented)
}

func TestRecordServiceRecordsUnknownVehicle(t *testing.T) {
	svc, _ := newServiceWithVehicle(t, nil)
	_, err := svc.Records(context.Background(), 404)
	assert.ErrorIs(t, err, core.ErrNotFound)
}
