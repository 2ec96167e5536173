package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hostel/infras/otel"
	"hostel/infras/postgrest"
	"hostel/internal/domains/review/model"
	"hostel/internal/domains/review/model/dto"
	gDto "hostel/shared/dto"
	gRepo "hostel/shared/repository"
)

type Review interface {
	GetAllForHotel(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]dto.HotelReview, error)
	GetAllForOwner(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]dto.OwnerReview, error)
	Insert(ctx context.Context, payload any) (dto.ReviewDetail, error)
	Update(ctx context.Context, id string, mod map[string]any) (model.Review, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Review]
	details gRepo.Repository[dto.ReviewDetail]
	byHotel gRepo.Repository[dto.HotelReview]
	byOwner gRepo.Repository[dto.OwnerReview]
}

func New(client postgrest.Client, otel otel.Otel) Review {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Review](model.EntityName, model.TableName, model.FieldID, client, otel),
		details:    gRepo.NewRepository[dto.ReviewDetail](model.EntityName, model.TableName, model.FieldID, client, otel),
		byHotel:    gRepo.NewRepository[dto.HotelReview](model.EntityName, model.TableName, model.FieldID, client, otel),
		byOwner:    gRepo.NewRepository[dto.OwnerReview](model.EntityName, model.TableName, model.FieldID, client, otel),
	}
}

func (r *repositoryImpl) GetAllForHotel(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]dto.HotelReview, error) {
	return r.byHotel.GetAll(ctx, params, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) GetAllForOwner(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]dto.OwnerReview, error) {
	return r.byOwner.GetAll(ctx, params, filter) //nolint:wrapcheck
}

// Insert returns the new review with its booking and author.
func (r *repositoryImpl) Insert(ctx context.Context, payload any) (dto.ReviewDetail, error) {
	return r.details.Insert(ctx, payload) //nolint:wrapcheck
}
