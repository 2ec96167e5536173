package dto

import (
	hotelModel "hostel/internal/domains/hotel/model"
	"hostel/internal/domains/room/model"
)

type CreateRoomRequest struct {
	HotelID      string   `json:"hotel_id"`
	RoomNumber   string   `json:"room_number"`
	Type         string   `json:"type"`
	Price        float64  `json:"price"`
	Status       string   `json:"status,omitempty"`
	FloorNumber  *int     `json:"floor_number,omitempty"`
	RoomCategory *string  `json:"room_category,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Amenities    []string `json:"amenities"`
}

type UpdateRoomRequest struct {
	RoomNumber   *string   `json:"room_number"`
	Type         *string   `json:"type"`
	Price        *float64  `json:"price"`
	Status       *string   `json:"status"`
	FloorNumber  *int      `json:"floor_number"`
	RoomCategory *string   `json:"room_category"`
	Description  *string   `json:"description"`
	Amenities    *[]string `json:"amenities"`
}

// RoomDetail is a room with its hotel.
type RoomDetail struct {
	model.Room
	Hotel *hotelModel.Hotel `json:"hotel" embed:"hotels"`
}
