package dto

import (
	bookingDto "hostel/internal/domains/booking/model/dto"
	"hostel/internal/domains/notification/model"
)

// NotificationDetail is a notification with its booking, room and guest.
type NotificationDetail struct {
	model.Notification
	Booking *bookingDto.BookingDetail `json:"booking" embed:"bookings"`
}
