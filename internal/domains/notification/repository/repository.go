package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hostel/infras/otel"
	"hostel/infras/postgrest"
	"hostel/internal/domains/notification/model"
	"hostel/internal/domains/notification/model/dto"
	gDto "hostel/shared/dto"
	gRepo "hostel/shared/repository"
)

type Notification interface {
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]dto.NotificationDetail, error)
	UpdateMany(ctx context.Context, mod map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[dto.NotificationDetail]
}

func New(client postgrest.Client, otel otel.Otel) Notification {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[dto.NotificationDetail](model.EntityName, model.TableName, model.FieldID, client, otel),
	}
}
