package model

import "time"

const (
	TableName  = "reviews"
	EntityName = "review"

	FieldID = "id"

	// TableBookingRoom and TableBookingRoomHotel are the embedded paths used to
	// reach a reviewed hotel through the review's booking.
	TableBookingRoom      = "booking.room"
	TableBookingRoomHotel = "booking.room.hotel"
)

type Review struct {
	ID        string    `json:"id"`
	BookingID string    `json:"booking_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}
