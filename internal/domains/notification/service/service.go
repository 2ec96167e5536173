package service

import (
	"context"
	"hostel/infras/otel"
	"hostel/internal/domains/notification/model"
	"hostel/internal/domains/notification/model/dto"
	"hostel/internal/domains/notification/repository"
	"hostel/shared"
	"hostel/shared/constant"
	gDto "hostel/shared/dto"

	"github.com/rs/zerolog/log"
)

type Notification interface {
	GetByBroker(ctx context.Context, brokerID string) ([]dto.NotificationDetail, error)
	MarkAsRead(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo repository.Notification
	otel otel.Otel
}

func New(repo repository.Notification, otel otel.Otel) Notification {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

func (s *serviceImpl) GetByBroker(ctx context.Context, brokerID string) (res []dto.NotificationDetail, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".notification.GetByBroker")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.GetAll(ctx, gDto.Newest(), shared.FilterByID(brokerID, model.FieldBrokerID, ""))
	if err != nil {
		log.Error().Err(err).Str("broker_id", brokerID).Msg("failed to get notifications")

		return res, err //nolint:wrapcheck
	}

	return res, nil
}

// MarkAsRead flags one notification as read. An unknown id is not an error.
func (s *serviceImpl) MarkAsRead(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".notification.MarkAsRead")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.repo.UpdateMany(ctx, map[string]any{model.FieldIsRead: true}, shared.FilterByID(id, model.FieldID, ""))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to mark notification as read")

		return err //nolint:wrapcheck
	}

	return nil
}
