package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hostel/infras/otel"
	"hostel/infras/postgrest"
	"hostel/internal/domains/message/model"
	"hostel/internal/domains/message/model/dto"
	gDto "hostel/shared/dto"
	gRepo "hostel/shared/repository"
)

type Message interface {
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]dto.MessageDetail, error)
	Insert(ctx context.Context, payload any) (dto.MessageDetail, error)
	UpdateMany(ctx context.Context, mod map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[dto.MessageDetail]
}

func New(client postgrest.Client, otel otel.Otel) Message {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[dto.MessageDetail](model.EntityName, model.TableName, model.FieldID, client, otel),
	}
}
