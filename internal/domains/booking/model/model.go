package model

import "hostel/shared/model"

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID     = "id"
	FieldRoomID = "room_id"
	FieldUserID = "user_id"
	FieldStatus = "status"

	// TableRoomHotel is the embedded path to the booked room's hotel.
	TableRoomHotel = "room.hotel"
)

type Booking struct {
	ID         string     `json:"id"`
	RoomID     string     `json:"room_id"`
	UserID     string     `json:"user_id"`
	CheckIn    model.Date `json:"check_in"`
	CheckOut   model.Date `json:"check_out"`
	TotalPrice float64    `json:"total_price"`
	Status     string     `json:"status"`
	model.Timestamps
}
