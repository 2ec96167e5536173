package service

import (
	"context"
	"fmt"
	"hostel/infras/otel"
	"hostel/internal/domains/booking/model"
	"hostel/internal/domains/booking/model/dto"
	"hostel/internal/domains/booking/repository"
	hotelModel "hostel/internal/domains/hotel/model"
	roomModel "hostel/internal/domains/room/model"
	roomRepo "hostel/internal/domains/room/repository"
	"hostel/shared"
	"hostel/shared/constant"
	gDto "hostel/shared/dto"
	"hostel/shared/failure"

	"github.com/rs/zerolog/log"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingDetail, error)
	GetByID(ctx context.Context, id string) (dto.BookingDetail, error)
	GetByUser(ctx context.Context, userID string) ([]dto.BookingDetail, error)
	GetByOwner(ctx context.Context, ownerID string) ([]dto.OwnerBooking, error)
	CountPendingByOwner(ctx context.Context, ownerID string) (int, error)
	Update(ctx context.Context, id string, req dto.UpdateBookingRequest) (dto.BookingDetail, error)
	Confirm(ctx context.Context, id string) (dto.BookingDetail, error)
	Cancel(ctx context.Context, id string) (dto.BookingDetail, error)
}

type serviceImpl struct {
	repo     repository.Booking
	roomRepo roomRepo.Room
	otel     otel.Otel
}

func New(repo repository.Booking, roomRepo roomRepo.Room, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingDetail, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Status == "" {
		req.Status = constant.BookingStatusPending
	}

	res, err = s.repo.Insert(ctx, req)
	if err != nil {
		log.Error().Err(err).Str("room_id", req.RoomID).Msg("failed to create booking")

		return res, err //nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) GetByID(ctx context.Context, id string) (res dto.BookingDetail, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetByID")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, ""))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get booking")

		return res, err //nolint:wrapcheck
	}

	return res, nil
}

// GetByUser lists a guest's bookings, newest first.
func (s *serviceImpl) GetByUser(ctx context.Context, userID string) (res []dto.BookingDetail, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetByUser")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.GetAll(ctx, gDto.Newest(), shared.FilterByID(userID, model.FieldUserID, ""))
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to get user bookings")

		return res, err //nolint:wrapcheck
	}

	return res, nil
}

// GetByOwner lists bookings on every room of the owner's hotels, newest first.
func (s *serviceImpl) GetByOwner(ctx context.Context, ownerID string) (res []dto.OwnerBooking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetByOwner")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(ownerID, hotelModel.FieldOwnerID, model.TableRoomHotel)

	res, err = s.repo.GetAllForOwner(ctx, gDto.Newest(), filter)
	if err != nil {
		log.Error().Err(err).Str("owner_id", ownerID).Msg("failed to get owner bookings")

		return res, err //nolint:wrapcheck
	}

	return res, nil
}

// CountPendingByOwner counts the bookings awaiting the owner's decision.
func (s *serviceImpl) CountPendingByOwner(ctx context.Context, ownerID string) (count int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.CountPendingByOwner")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(ownerID, hotelModel.FieldOwnerID, model.TableRoomHotel)
	filter.Filters = append(filter.Filters, gDto.Filter{
		Field:    model.FieldStatus,
		Value:    constant.BookingStatusPending,
		Operator: gDto.FilterOperatorEq,
	})

	count, err = s.repo.CountForOwner(ctx, filter)
	if err != nil {
		log.Error().Err(err).Str("owner_id", ownerID).Msg("failed to count pending bookings")

		return 0, err //nolint:wrapcheck
	}

	return count, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateBookingRequest) (res dto.BookingDetail, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.Update(ctx, id, shared.TransformFields(req))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update booking")

		return res, err //nolint:wrapcheck
	}

	return res, nil
}

// Confirm moves a pending booking to confirmed and then marks its room booked.
// The two writes are independent: when the room write fails the booking stays
// confirmed and is returned together with the wrapped room error.
func (s *serviceImpl) Confirm(ctx context.Context, id string) (res dto.BookingDetail, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Confirm")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.transition(ctx, id, constant.BookingStatusConfirmed)
	if err != nil {
		return res, err
	}

	_, err = s.roomRepo.Update(ctx, res.RoomID, map[string]any{roomModel.FieldStatus: constant.RoomStatusBooked})
	if err != nil {
		log.Error().Err(err).Str("id", id).Str("room_id", res.RoomID).Msg("booking confirmed but room status not updated")
		scope.AddEvent("room status write failed")

		return res, fmt.Errorf("booking %s confirmed, marking room %s booked failed: %w", id, res.RoomID, err)
	}

	if res.Room != nil {
		res.Room.Status = constant.RoomStatusBooked
	}

	return res, nil
}

// Cancel moves a pending booking to cancelled. The room is left as it is.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (res dto.BookingDetail, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.transition(ctx, id, constant.BookingStatusCancelled)
}

// transition writes status only while the row is still pending, so a concurrent
// decision on the same booking loses with a conflict instead of overwriting.
func (s *serviceImpl) transition(ctx context.Context, id, status string) (dto.BookingDetail, error) {
	current, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, ""))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get booking")

		return current, err //nolint:wrapcheck
	}

	if current.Status != constant.BookingStatusPending {
		return current, failure.Conflict(fmt.Sprintf("booking is %s, only pending bookings can be %s", current.Status, status)) //nolint:wrapcheck
	}

	stillPending := shared.FilterByID(id, model.FieldID, "")
	stillPending.Filters = append(stillPending.Filters, gDto.Filter{
		Field:    model.FieldStatus,
		Value:    constant.BookingStatusPending,
		Operator: gDto.FilterOperatorEq,
	})

	res, err := s.repo.UpdateWhere(ctx, stillPending, map[string]any{model.FieldStatus: status})
	if failure.IsNotFound(err) {
		log.Warn().Str("id", id).Str("status", status).Msg("booking left pending before the write")

		return current, failure.Conflict(fmt.Sprintf("booking is no longer pending, it cannot be %s", status)) //nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Str("id", id).Str("status", status).Msg("failed to update booking status")

		return current, err //nolint:wrapcheck
	}

	return res, nil
}
