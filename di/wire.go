//go:build wireinject
// +build wireinject

package di

import (
	"hostel/config"
	"hostel/infras/gotrue"
	"hostel/infras/jwt"
	"hostel/infras/otel"
	"hostel/infras/postgrest"
	"hostel/infras/s3"
	"hostel/internal/app"
	"hostel/internal/db"
	"hostel/internal/session"
	"hostel/shared/storage"

	bookingRepository "hostel/internal/domains/booking/repository"
	bookingService "hostel/internal/domains/booking/service"
	hotelRepository "hostel/internal/domains/hotel/repository"
	hotelService "hostel/internal/domains/hotel/service"
	messageRepository "hostel/internal/domains/message/repository"
	messageService "hostel/internal/domains/message/service"
	notificationRepository "hostel/internal/domains/notification/repository"
	notificationService "hostel/internal/domains/notification/service"
	profileRepository "hostel/internal/domains/profile/repository"
	profileService "hostel/internal/domains/profile/service"
	reviewRepository "hostel/internal/domains/review/repository"
	reviewService "hostel/internal/domains/review/service"
	roomRepository "hostel/internal/domains/room/repository"
	roomService "hostel/internal/domains/room/service"

	authService "hostel/internal/domains/auth/service"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	otel.New,
	storage.New,
	jwt.New,
	gotrue.New,
	provideTokenSource,
	postgrest.New,
	s3.New,
)

var repositories = wire.NewSet(
	profileRepository.New,
	hotelRepository.New,
	roomRepository.New,
	bookingRepository.New,
	reviewRepository.New,
	messageRepository.New,
	notificationRepository.New,
)

var services = wire.NewSet(
	profileService.New,
	hotelService.New,
	roomService.New,
	bookingService.New,
	reviewService.New,
	messageService.New,
	notificationService.New,
	authService.New,
)

var domains = wire.NewSet(
	repositories,
	services,
	db.New,
	session.New,
)

func InitializeApp() *app.App {
	wire.Build(
		configurations,
		infrastructures,
		domains,
		app.New,
	)

	return &app.App{}
}
