package amqp

import (
	"encoding/json"
	"time"
)

// RecordAddedMessage announces a maintenance record stored in the relational
// log. Consumers read the full record back by ID when they need more.
type RecordAddedMessage struct {
	RecordID    int64     `json:"record_id"`
	VehicleID   int64     `json:"vehicle_id"`
	ServiceType string    `json:"service_type"`
	ServiceDate string    `json:"service_date"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewRecordAddedMessage(recordID, vehicleID int64, serviceType, serviceDate string) *RecordAddedMessage {
	return &RecordAddedMessage{
		RecordID:    recordID,
		VehicleID:   vehicleID,
		ServiceType: serviceType,
		ServiceDate: serviceDate,
		Timestamp:   time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *RecordAddedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RecordAddedMessageFromJSON(data []byte) (*RecordAddedMessage, error) {
	var msg RecordAddedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
