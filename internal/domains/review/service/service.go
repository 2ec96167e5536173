package service

import (
	"context"
	"hostel/infras/otel"
	hotelModel "hostel/internal/domains/hotel/model"
	"hostel/internal/domains/review/model"
	"hostel/internal/domains/review/model/dto"
	"hostel/internal/domains/review/repository"
	roomModel "hostel/internal/domains/room/model"
	"hostel/shared"
	"hostel/shared/constant"
	gDto "hostel/shared/dto"

	"github.com/rs/zerolog/log"
)

type Review interface {
	GetByHotel(ctx context.Context, hotelID string) ([]dto.HotelReview, error)
	GetByOwner(ctx context.Context, ownerID string) ([]dto.OwnerReview, error)
	Create(ctx context.Context, req dto.CreateReviewRequest) (dto.ReviewDetail, error)
	Update(ctx context.Context, id string, req dto.UpdateReviewRequest) (model.Review, error)
}

type serviceImpl struct {
	repo repository.Review
	otel otel.Otel
}

func New(repo repository.Review, otel otel.Otel) Review {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

// GetByHotel lists reviews left on bookings of the hotel's rooms, newest first.
func (s *serviceImpl) GetByHotel(ctx context.Context, hotelID string) (res []dto.HotelReview, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".review.GetByHotel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(hotelID, roomModel.FieldHotelID, model.TableBookingRoom)

	res, err = s.repo.GetAllForHotel(ctx, gDto.Newest(), filter)
	if err != nil {
		log.Error().Err(err).Str("hotel_id", hotelID).Msg("failed to get hotel reviews")

		return res, err //nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) GetByOwner(ctx context.Context, ownerID string) (res []dto.OwnerReview, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".review.GetByOwner")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(ownerID, hotelModel.FieldOwnerID, model.TableBookingRoomHotel)

	res, err = s.repo.GetAllForOwner(ctx, gDto.Newest(), filter)
	if err != nil {
		log.Error().Err(err).Str("owner_id", ownerID).Msg("failed to get owner reviews")

		return res, err //nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReviewRequest) (res dto.ReviewDetail, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".review.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.Insert(ctx, req)
	if err != nil {
		log.Error().Err(err).Str("booking_id", req.BookingID).Msg("failed to create review")

		return res, err //nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateReviewRequest) (res model.Review, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".review.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.Update(ctx, id, shared.TransformFields(req))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update review")

		return res, err //nolint:wrapcheck
	}

	return res, nil
}
