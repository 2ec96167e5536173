package model

import "time"

const (
	TableName  = "booking_notifications"
	EntityName = "notification"

	FieldID       = "id"
	FieldBrokerID = "broker_id"
	FieldIsRead   = "is_read"
)

// Notification tells a broker (hotel owner) about activity on one of their bookings.
type Notification struct {
	ID        string    `json:"id"`
	BookingID string    `json:"booking_id"`
	BrokerID  string    `json:"broker_id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}
