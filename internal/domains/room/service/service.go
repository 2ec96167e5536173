package service

import (
	"context"
	"hostel/infras/otel"
	"hostel/internal/domains/room/model"
	"hostel/internal/domains/room/model/dto"
	"hostel/internal/domains/room/repository"
	"hostel/shared"
	"hostel/shared/constant"
	gDto "hostel/shared/dto"

	"github.com/rs/zerolog/log"
)

type Room interface {
	GetByHotel(ctx context.Context, hotelID string) ([]model.Room, error)
	GetByID(ctx context.Context, id string) (dto.RoomDetail, error)
	Create(ctx context.Context, req dto.CreateRoomRequest) (model.Room, error)
	Update(ctx context.Context, id string, req dto.UpdateRoomRequest) (model.Room, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo repository.Room
	otel otel.Otel
}

func New(repo repository.Room, otel otel.Otel) Room {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

// GetByHotel lists a hotel's rooms. An unknown hotel yields an empty list, not NotFound.
func (s *serviceImpl) GetByHotel(ctx context.Context, hotelID string) (res []model.Room, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.GetByHotel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByID(hotelID, model.FieldHotelID, ""))
	if err != nil {
		log.Error().Err(err).Str("hotel_id", hotelID).Msg("failed to get rooms")

		return res, err //nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) GetByID(ctx context.Context, id string) (res dto.RoomDetail, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.GetByID")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.GetDetail(ctx, shared.FilterByID(id, model.FieldID, ""))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get room")

		return res, err //nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res model.Room, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Status == "" {
		req.Status = constant.RoomStatusAvailable
	}

	if req.Amenities == nil {
		req.Amenities = []string{}
	}

	res, err = s.repo.Insert(ctx, req)
	if err != nil {
		log.Error().Err(err).Str("hotel_id", req.HotelID).Msg("failed to create room")

		return res, err //nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateRoomRequest) (res model.Room, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.Update(ctx, id, shared.TransformFields(req))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update room")

		return res, err //nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.repo.Delete(ctx, id); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete room")

		return err //nolint:wrapcheck
	}

	return nil
}
