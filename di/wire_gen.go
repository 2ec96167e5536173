//go:build !wireinject
// +build !wireinject

// Injector for wire.go, written in the shape `wire` emits and maintained by hand.
// Regenerate with `go run -mod=mod github.com/google/wire/cmd/wire` after changing a provider set.

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
	service8 "hostel/internal/domains/auth/service"
	"hostel/internal/domains/booking/repository"
	service4 "hostel/internal/domains/booking/service"
	repository2 "hostel/internal/domains/hotel/repository"
	service2 "hostel/internal/domains/hotel/service"
	repository6 "hostel/internal/domains/message/repository"
	service6 "hostel/internal/domains/message/service"
	repository7 "hostel/internal/domains/notification/repository"
	service7 "hostel/internal/domains/notification/service"
	repository3 "hostel/internal/domains/profile/repository"
	"hostel/internal/domains/profile/service"
	repository5 "hostel/internal/domains/review/repository"
	service5 "hostel/internal/domains/review/service"
	repository4 "hostel/internal/domains/room/repository"
	service3 "hostel/internal/domains/room/service"
	"hostel/internal/session"
	"hostel/shared/storage"
)

// Injectors from wire.go:

func InitializeApp() *app.App {
	configConfig := config.Get()
	otelOtel := otel.New(configConfig)
	storageStorage := storage.New(configConfig, otelOtel)
	jwtJWT := jwt.New(configConfig)
	client := gotrue.New(configConfig, storageStorage, jwtJWT, otelOtel)
	tokenSource := provideTokenSource(client)
	postgrestClient := postgrest.New(configConfig, tokenSource, otelOtel)
	profile := repository3.New(postgrestClient, otelOtel)
	serviceProfile := service.New(profile, otelOtel)
	hotel := repository2.New(postgrestClient, otelOtel)
	s3S3 := s3.New(configConfig, otelOtel)
	service2Hotel := service2.New(hotel, s3S3, otelOtel)
	room := repository4.New(postgrestClient, otelOtel)
	service3Room := service3.New(room, otelOtel)
	booking := repository.New(postgrestClient, otelOtel)
	service4Booking := service4.New(booking, room, otelOtel)
	review := repository5.New(postgrestClient, otelOtel)
	service5Review := service5.New(review, otelOtel)
	message := repository6.New(postgrestClient, otelOtel)
	service6Message := service6.New(message, otelOtel)
	notification := repository7.New(postgrestClient, otelOtel)
	service7Notification := service7.New(notification, otelOtel)
	dbDB := db.New(serviceProfile, service2Hotel, service3Room, service4Booking, service5Review, service6Message, service7Notification)
	auth := service8.New(client, serviceProfile, otelOtel)
	manager := session.New(auth, serviceProfile)
	appApp := app.New(dbDB, auth, manager, otelOtel)

	return appApp
}
