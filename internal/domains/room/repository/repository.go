package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hostel/infras/otel"
	"hostel/infras/postgrest"
	"hostel/internal/domains/room/model"
	"hostel/internal/domains/room/model/dto"
	gDto "hostel/shared/dto"
	gRepo "hostel/shared/repository"
)

type Room interface {
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	GetDetail(ctx context.Context, filter gDto.FilterGroup) (dto.RoomDetail, error)
	Insert(ctx context.Context, payload any) (model.Room, error)
	Update(ctx context.Context, id string, mod map[string]any) (model.Room, error)
	Delete(ctx context.Context, id string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
	details gRepo.Repository[dto.RoomDetail]
}

func New(client postgrest.Client, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, client, otel),
		details:    gRepo.NewRepository[dto.RoomDetail](model.EntityName, model.TableName, model.FieldID, client, otel),
	}
}

// GetDetail selects `*,hotel:hotels(*)`.
func (r *repositoryImpl) GetDetail(ctx context.Context, filter gDto.FilterGroup) (dto.RoomDetail, error) {
	return r.details.Get(ctx, filter) //nolint:wrapcheck
}
