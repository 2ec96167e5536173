package dto

import (
	bookingModel "hostel/internal/domains/booking/model"
	bookingDto "hostel/internal/domains/booking/model/dto"
	profileModel "hostel/internal/domains/profile/model"
	"hostel/internal/domains/review/model"
	roomModel "hostel/internal/domains/room/model"
)

type CreateReviewRequest struct {
	BookingID string `json:"booking_id"`
	UserID    string `json:"user_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

// ReviewDetail is a review with its booking and author.
type ReviewDetail struct {
	model.Review
	Booking *bookingModel.Booking `json:"booking" embed:"bookings"`
	User    *profileModel.Profile `json:"user" embed:"profiles"`
}

type BookingWithRoom struct {
	bookingModel.Booking
	Room *roomModel.Room `json:"room" embed:"rooms!inner"`
}

// HotelReview is a review reached through its booking's room.
type HotelReview struct {
	model.Review
	Booking *BookingWithRoom      `json:"booking" embed:"bookings!inner"`
	User    *profileModel.Profile `json:"user" embed:"profiles"`
}

type BookingWithHotel struct {
	bookingModel.Booking
	Room *bookingDto.RoomWithHotel `json:"room" embed:"rooms!inner"`
}

// OwnerReview is a review reached through booking, room and hotel.
type OwnerReview struct {
	model.Review
	Booking *BookingWithHotel     `json:"booking" embed:"bookings!inner"`
	User    *profileModel.Profile `json:"user" embed:"profiles"`
}
