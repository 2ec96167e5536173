package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hostel/infras/otel"
	"hostel/infras/postgrest"
	"hostel/internal/domains/booking/model"
	"hostel/internal/domains/booking/model/dto"
	gDto "hostel/shared/dto"
	gRepo "hostel/shared/repository"
)

type Booking interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (dto.BookingDetail, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]dto.BookingDetail, error)
	GetAllForOwner(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]dto.OwnerBooking, error)
	CountForOwner(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Insert(ctx context.Context, payload any) (dto.BookingDetail, error)
	Update(ctx context.Context, id string, mod map[string]any) (dto.BookingDetail, error)
	UpdateWhere(ctx context.Context, filter gDto.FilterGroup, mod map[string]any) (dto.BookingDetail, error)
}

type repositoryImpl struct {
	gRepo.Repository[dto.BookingDetail]
	owned gRepo.Repository[dto.OwnerBooking]
}

func New(client postgrest.Client, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[dto.BookingDetail](model.EntityName, model.TableName, model.FieldID, client, otel),
		owned:      gRepo.NewRepository[dto.OwnerBooking](model.EntityName, model.TableName, model.FieldID, client, otel),
	}
}

func (r *repositoryImpl) GetAllForOwner(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]dto.OwnerBooking, error) {
	return r.owned.GetAll(ctx, params, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) CountForOwner(ctx context.Context, filter gDto.FilterGroup) (int, error) {
	return r.owned.Count(ctx, filter) //nolint:wrapcheck
}
