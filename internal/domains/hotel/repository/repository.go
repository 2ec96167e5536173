package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hostel/infras/otel"
	"hostel/infras/postgrest"
	"hostel/internal/domains/hotel/model"
	"hostel/internal/domains/hotel/model/dto"
	gDto "hostel/shared/dto"
	gRepo "hostel/shared/repository"
)

type Hotel interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Hotel, error)
	GetDetail(ctx context.Context, filter gDto.FilterGroup) (dto.HotelDetail, error)
	GetAllDetails(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]dto.HotelDetail, error)
	GetAllWithRooms(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]dto.HotelWithRooms, error)
	Insert(ctx context.Context, payload any) (model.Hotel, error)
	Update(ctx context.Context, id string, mod map[string]any) (model.Hotel, error)
	Delete(ctx context.Context, id string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Hotel]
	details   gRepo.Repository[dto.HotelDetail]
	withRooms gRepo.Repository[dto.HotelWithRooms]
}

func New(client postgrest.Client, otel otel.Otel) Hotel {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Hotel](model.EntityName, model.TableName, model.FieldID, client, otel),
		details:    gRepo.NewRepository[dto.HotelDetail](model.EntityName, model.TableName, model.FieldID, client, otel),
		withRooms:  gRepo.NewRepository[dto.HotelWithRooms](model.EntityName, model.TableName, model.FieldID, client, otel),
	}
}

func (r *repositoryImpl) GetDetail(ctx context.Context, filter gDto.FilterGroup) (dto.HotelDetail, error) {
	return r.details.Get(ctx, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) GetAllDetails(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]dto.HotelDetail, error) {
	return r.details.GetAll(ctx, params, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) GetAllWithRooms(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]dto.HotelWithRooms, error) {
	return r.withRooms.GetAll(ctx, params, filter) //nolint:wrapcheck
}
