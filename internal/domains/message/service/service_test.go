package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hostel/infras/otel/mocks"
	messageMocks "hostel/internal/domains/message/mocks"
	"hostel/internal/domains/message/model"
	"hostel/internal/domains/message/model/dto"
	"hostel/internal/domains/message/service"
	profileModel "hostel/internal/domains/profile/model"
	gDto "hostel/shared/dto"
	"hostel/shared/failure"
)

func TestMessageService_GetConversation(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := messageMocks.NewMockMessage(ctrl)
	svc := service.New(mockRepo, mocks.NewOtel())

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gDto.Oldest(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]dto.MessageDetail, error) {
			assert.Equal(t,
				"(and(sender_id.eq.u-1,receiver_id.eq.u-2),and(sender_id.eq.u-2,receiver_id.eq.u-1))",
				filter.GetQueryParams().Get("or"))

			return []dto.MessageDetail{
				{Message: model.Message{ID: "m-1", SenderID: "u-1"}, Sender: &profileModel.Profile{ID: "u-1"}},
				{Message: model.Message{ID: "m-2", SenderID: "u-2"}, Sender: &profileModel.Profile{ID: "u-2"}},
			}, nil
		})

	got, err := svc.GetConversation(context.Background(), "u-1", "u-2")

	require.NoError(t, err)
	assert.Equal(t, "m-1", got[0].ID)
	assert.Equal(t, "m-2", got[1].ID)
}

func TestMessageService_GetConversations(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := messageMocks.NewMockMessage(ctrl)
	svc := service.New(mockRepo, mocks.NewOtel())

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gDto.Newest(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]dto.MessageDetail, error) {
			assert.Equal(t, "(sender_id.eq.u-1,receiver_id.eq.u-1)", filter.GetQueryParams().Get("or"))

			return []dto.MessageDetail{}, nil
		})

	got, err := svc.GetConversations(context.Background(), "u-1")

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMessageService_Send(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := messageMocks.NewMockMessage(ctrl)
	svc := service.New(mockRepo, mocks.NewOtel())

	req := dto.SendMessageRequest{SenderID: "u-1", ReceiverID: "u-2", Content: "Is room 101 free in March?"}

	mockRepo.EXPECT().
		Insert(gomock.Any(), req).
		Return(dto.MessageDetail{
			Message:  model.Message{ID: "m-1", SenderID: "u-1", ReceiverID: "u-2", Content: req.Content},
			Sender:   &profileModel.Profile{ID: "u-1"},
			Receiver: &profileModel.Profile{ID: "u-2"},
		}, nil)

	got, err := svc.Send(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "u-2", got.Receiver.ID)
	assert.False(t, got.Read)
}

func TestMessageService_MarkAsRead(t *testing.T) {
	tests := []struct {
		name      string
		ids       []string
		setupMock func(repo *messageMocks.MockMessage)
		wantErr   bool
	}{
		{
			name: "set membership",
			ids:  []string{"m-1", "m-2"},
			setupMock: func(repo *messageMocks.MockMessage) {
				repo.EXPECT().
					UpdateMany(gomock.Any(), map[string]any{"read": true}, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ map[string]any, filter gDto.FilterGroup) error {
						assert.Equal(t, "in.(m-1,m-2)", filter.GetQueryParams().Get("id"))

						return nil
					})
			},
		},
		{
			name:      "nothing to mark",
			ids:       nil,
			setupMock: func(_ *messageMocks.MockMessage) {},
		},
		{
			name: "store failure",
			ids:  []string{"m-1"},
			setupMock: func(repo *messageMocks.MockMessage) {
				repo.EXPECT().UpdateMany(gomock.Any(), gomock.Any(), gomock.Any()).Return(failure.Forbidden("42501", "permission denied"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockRepo := messageMocks.NewMockMessage(ctrl)
			svc := service.New(mockRepo, mocks.NewOtel())

			tt.setupMock(mockRepo)

			err := svc.MarkAsRead(context.Background(), tt.ids)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
