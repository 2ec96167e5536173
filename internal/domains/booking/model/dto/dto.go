package dto

import (
	"hostel/internal/domains/booking/model"
	hotelModel "hostel/internal/domains/hotel/model"
	profileModel "hostel/internal/domains/profile/model"
	roomModel "hostel/internal/domains/room/model"
	gModel "hostel/shared/model"
)

type CreateBookingRequest struct {
	RoomID     string      `json:"room_id"`
	UserID     string      `json:"user_id"`
	CheckIn    gModel.Date `json:"check_in"`
	CheckOut   gModel.Date `json:"check_out"`
	TotalPrice float64     `json:"total_price"`
	Status     string      `json:"status,omitempty"`
}

// NewCreateBookingRequest prices a stay in room at its nightly rate.
func NewCreateBookingRequest(room roomModel.Room, userID string, checkIn, checkOut gModel.Date) CreateBookingRequest {
	return CreateBookingRequest{
		RoomID:     room.ID,
		UserID:     userID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		TotalPrice: room.Price * float64(gModel.Nights(checkIn, checkOut)),
	}
}

type UpdateBookingRequest struct {
	CheckIn    *gModel.Date `json:"check_in"`
	CheckOut   *gModel.Date `json:"check_out"`
	TotalPrice *float64     `json:"total_price"`
	Status     *string      `json:"status"`
}

// BookingDetail is a booking with its room and booker.
type BookingDetail struct {
	model.Booking
	Room *roomModel.Room       `json:"room" embed:"rooms"`
	User *profileModel.Profile `json:"user" embed:"profiles"`
}

type RoomWithHotel struct {
	roomModel.Room
	Hotel *hotelModel.Hotel `json:"hotel" embed:"hotels!inner"`
}

// OwnerBooking is a booking reached through room and hotel, both inner joined so the
// owner filter on room.hotel drops unrelated rows.
type OwnerBooking struct {
	model.Booking
	Room *RoomWithHotel        `json:"room" embed:"rooms!inner"`
	User *profileModel.Profile `json:"user" embed:"profiles"`
}
