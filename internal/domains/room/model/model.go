package model

import "hostel/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID      = "id"
	FieldHotelID = "hotel_id"
	FieldStatus  = "status"
)

type Room struct {
	ID           string   `json:"id"`
	HotelID      string   `json:"hotel_id"`
	RoomNumber   string   `json:"room_number"`
	Type         string   `json:"type"`
	Price        float64  `json:"price"`
	Status       string   `json:"status"`
	FloorNumber  *int     `json:"floor_number"`
	RoomCategory *string  `json:"room_category"`
	Description  *string  `json:"description"`
	Amenities    []string `json:"amenities"`
	model.Timestamps
}
