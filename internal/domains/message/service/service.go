package service

import (
	"context"
	"hostel/infras/otel"
	"hostel/internal/domains/message/model"
	"hostel/internal/domains/message/model/dto"
	"hostel/internal/domains/message/repository"
	"hostel/shared"
	"hostel/shared/constant"
	gDto "hostel/shared/dto"

	"github.com/rs/zerolog/log"
)

type Message interface {
	GetConversation(ctx context.Context, userID, otherID string) ([]dto.MessageDetail, error)
	GetConversations(ctx context.Context, userID string) ([]dto.MessageDetail, error)
	Send(ctx context.Context, req dto.SendMessageRequest) (dto.MessageDetail, error)
	MarkAsRead(ctx context.Context, ids []string) error
}

type serviceImpl struct {
	repo repository.Message
	otel otel.Otel
}

func New(repo repository.Message, otel otel.Otel) Message {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

func between(from, to string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldSenderID, Value: from, Operator: gDto.FilterOperatorEq},
			gDto.Filter{Field: model.FieldReceiverID, Value: to, Operator: gDto.FilterOperatorEq},
		},
	}
}

// GetConversation returns the messages exchanged by two users in either direction, oldest first.
func (s *serviceImpl) GetConversation(ctx context.Context, userID, otherID string) (res []dto.MessageDetail, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".message.GetConversation")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters:  []any{between(userID, otherID), between(otherID, userID)},
	}

	res, err = s.repo.GetAll(ctx, gDto.Oldest(), filter)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("other_id", otherID).Msg("failed to get conversation")

		return res, err //nolint:wrapcheck
	}

	return res, nil
}

// GetConversations returns every message the user sent or received, newest first.
func (s *serviceImpl) GetConversations(ctx context.Context, userID string) (res []dto.MessageDetail, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".message.GetConversations")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters: []any{
			gDto.Filter{Field: model.FieldSenderID, Value: userID, Operator: gDto.FilterOperatorEq},
			gDto.Filter{Field: model.FieldReceiverID, Value: userID, Operator: gDto.FilterOperatorEq},
		},
	}

	res, err = s.repo.GetAll(ctx, gDto.Newest(), filter)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to get conversations")

		return res, err //nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) Send(ctx context.Context, req dto.SendMessageRequest) (res dto.MessageDetail, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".message.Send")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.Insert(ctx, req)
	if err != nil {
		log.Error().Err(err).Str("sender_id", req.SenderID).Msg("failed to send message")

		return res, err //nolint:wrapcheck
	}

	return res, nil
}

// MarkAsRead flags every listed message as read. Unknown ids are ignored.
func (s *serviceImpl) MarkAsRead(ctx context.Context, ids []string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".message.MarkAsRead")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if len(ids) == 0 {
		return nil
	}

	err = s.repo.UpdateMany(ctx, map[string]any{model.FieldRead: true}, shared.FilterByIDs(ids, model.FieldID))
	if err != nil {
		log.Error().Err(err).Strs("ids", ids).Msg("failed to mark messages as read")

		return err //nolint:wrapcheck
	}

	return nil
}
