// Package db is the data-access façade: one service per entity of the store.
package db

import (
	"hostel/infras/otel"
	"hostel/infras/postgrest"
	"hostel/infras/s3"
	bookingRepo "hostel/internal/domains/booking/repository"
	bookingService "hostel/internal/domains/booking/service"
	hotelRepo "hostel/internal/domains/hotel/repository"
	hotelService "hostel/internal/domains/hotel/service"
	messageRepo "hostel/internal/domains/message/repository"
	messageService "hostel/internal/domains/message/service"
	notificationRepo "hostel/internal/domains/notification/repository"
	notificationService "hostel/internal/domains/notification/service"
	profileRepo "hostel/internal/domains/profile/repository"
	profileService "hostel/internal/domains/profile/service"
	reviewRepo "hostel/internal/domains/review/repository"
	reviewService "hostel/internal/domains/review/service"
	roomRepo "hostel/internal/domains/room/repository"
	roomService "hostel/internal/domains/room/service"
)

type DB struct {
	Profiles      profileService.Profile
	Hotels        hotelService.Hotel
	Rooms         roomService.Room
	Bookings      bookingService.Booking
	Reviews       reviewService.Review
	Messages      messageService.Message
	Notifications notificationService.Notification
}

func New(
	profiles profileService.Profile,
	hotels hotelService.Hotel,
	rooms roomService.Room,
	bookings bookingService.Booking,
	reviews reviewService.Review,
	messages messageService.Message,
	notifications notificationService.Notification,
) *DB {
	return &DB{
		Profiles:      profiles,
		Hotels:        hotels,
		Rooms:         rooms,
		Bookings:      bookings,
		Reviews:       reviews,
		Messages:      messages,
		Notifications: notifications,
	}
}

// Open builds every repository and service on top of one data API client.
func Open(client postgrest.Client, storage s3.S3, ot otel.Otel) *DB {
	rooms := roomRepo.New(client, ot)

	return New(
		profileService.New(profileRepo.New(client, ot), ot),
		hotelService.New(hotelRepo.New(client, ot), storage, ot),
		roomService.New(rooms, ot),
		bookingService.New(bookingRepo.New(client, ot), rooms, ot),
		reviewService.New(reviewRepo.New(client, ot), ot),
		messageService.New(messageRepo.New(client, ot), ot),
		notificationService.New(notificationRepo.New(client, ot), ot),
	)
}
