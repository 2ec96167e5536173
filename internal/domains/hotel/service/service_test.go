package service_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hostel/infras/otel/mocks"
	s3Mocks "hostel/infras/s3/mocks"
	hotelMocks "hostel/internal/domains/hotel/mocks"
	"hostel/internal/domains/hotel/model"
	"hostel/internal/domains/hotel/model/dto"
	"hostel/internal/domains/hotel/service"
	profileModel "hostel/internal/domains/profile/model"
	roomModel "hostel/internal/domains/room/model"
	"hostel/shared"
	gDto "hostel/shared/dto"
	"hostel/shared/failure"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func newService(t *testing.T) (service.Hotel, *hotelMocks.MockHotel, *s3Mocks.MockS3) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := hotelMocks.NewMockHotel(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)

	return service.New(mockRepo, mockS3, mocks.NewOtel()), mockRepo, mockS3
}

func TestHotelService_GetAll(t *testing.T) {
	svc, mockRepo, _ := newService(t)

	mockRepo.EXPECT().
		GetAllDetails(gomock.Any(), gDto.QueryParams{}, gDto.FilterGroup{}).
		Return([]dto.HotelDetail{
			{
				HotelWithRooms: dto.HotelWithRooms{
					Hotel: model.Hotel{ID: "h-1"},
					Rooms: []roomModel.Room{{ID: "r-1"}},
				},
				Owner: &profileModel.Profile{ID: "o-1"},
			},
		}, nil)

	got, err := svc.GetAll(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "o-1", got[0].Owner.ID)
	assert.Len(t, got[0].Rooms, 1)
}

func TestHotelService_GetByID(t *testing.T) {
	tests := []struct {
		name     string
		repoErr  error
		wantCode int
	}{
		{name: "found"},
		{name: "missing", repoErr: failure.NotFound("hotel"), wantCode: http.StatusNotFound},
		{name: "policy rejects", repoErr: failure.Forbidden("42501", "permission denied for table hotels"), wantCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _ := newService(t)

			mockRepo.EXPECT().
				GetDetail(gomock.Any(), shared.FilterByID("h-1", model.FieldID, "")).
				Return(dto.HotelDetail{HotelWithRooms: dto.HotelWithRooms{Hotel: model.Hotel{ID: "h-1"}}}, tt.repoErr)

			got, err := svc.GetByID(context.Background(), "h-1")

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "h-1", got.ID)
		})
	}
}

func TestHotelService_GetByOwner(t *testing.T) {
	svc, mockRepo, _ := newService(t)

	mockRepo.EXPECT().
		GetAllWithRooms(gomock.Any(), gDto.QueryParams{}, shared.FilterByID("o-1", model.FieldOwnerID, "")).
		Return([]dto.HotelWithRooms{}, nil)

	got, err := svc.GetByOwner(context.Background(), "o-1")

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestHotelService_Create(t *testing.T) {
	svc, mockRepo, _ := newService(t)

	mockRepo.EXPECT().
		Insert(gomock.Any(), dto.CreateHotelRequest{OwnerID: "o-1", Name: "Campus Lodge", Amenities: []string{}, Images: []string{}}).
		Return(model.Hotel{ID: "h-1", OwnerID: "o-1", Name: "Campus Lodge"}, nil)

	got, err := svc.Create(context.Background(), dto.CreateHotelRequest{OwnerID: "o-1", Name: "Campus Lodge"})

	require.NoError(t, err)
	assert.Equal(t, "h-1", got.ID)
}

func TestHotelService_Update(t *testing.T) {
	current := model.Hotel{ID: "h-1", Name: "Campus Lodge", Amenities: []string{"wifi"}}

	t.Run("empty change is idempotent", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().
			Update(gomock.Any(), "h-1", map[string]any{}).
			Return(current, nil).
			Times(2)

		first, err := svc.Update(context.Background(), "h-1", dto.UpdateHotelRequest{})
		require.NoError(t, err)

		second, err := svc.Update(context.Background(), "h-1", dto.UpdateHotelRequest{})
		require.NoError(t, err)

		assert.Equal(t, current, first)
		assert.Equal(t, first, second)
	})

	t.Run("only provided fields", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)
		amenities := []string{"wifi", "laundry"}

		mockRepo.EXPECT().
			Update(gomock.Any(), "h-1", map[string]any{"amenities": &amenities}).
			Return(model.Hotel{ID: "h-1", Amenities: amenities}, nil)

		got, err := svc.Update(context.Background(), "h-1", dto.UpdateHotelRequest{Amenities: &amenities})

		require.NoError(t, err)
		assert.Equal(t, amenities, got.Amenities)
	})
}

func TestHotelService_Delete(t *testing.T) {
	svc, mockRepo, _ := newService(t)

	mockRepo.EXPECT().Delete(gomock.Any(), "h-1").Return(failure.NotFound("hotel"))

	assert.True(t, failure.IsNotFound(svc.Delete(context.Background(), "h-1")))
}

func TestHotelService_UploadImage(t *testing.T) {
	existing := model.Hotel{ID: "h-1", Images: []string{"https://cdn/hotels/h-1/a.png"}}

	t.Run("appends the public url", func(t *testing.T) {
		svc, mockRepo, mockS3 := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), shared.FilterByID("h-1", model.FieldID, ""), model.FieldID, model.FieldImages).
			Return(existing, nil)
		mockS3.EXPECT().
			UploadFileBytes(gomock.Any(), "", "hotels/h-1", gomock.Any(), "image/png", pngHeader).
			DoAndReturn(func(_ context.Context, _, _, name, _ string, _ []byte) (string, error) {
				assert.True(t, strings.HasSuffix(name, ".png"))

				return "https://cdn/hotels/h-1/" + name, nil
			})
		mockRepo.EXPECT().
			Update(gomock.Any(), "h-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, mod map[string]any) (model.Hotel, error) {
				images, ok := mod[model.FieldImages].([]string)
				require.True(t, ok)
				assert.Len(t, images, 2)
				assert.Equal(t, existing.Images[0], images[0])

				return model.Hotel{ID: "h-1", Images: images}, nil
			})

		got, err := svc.UploadImage(context.Background(), "h-1", dto.UploadImageRequest{FileName: "front.png", Data: pngHeader})

		require.NoError(t, err)
		assert.Len(t, got.Images, 2)
		assert.Len(t, existing.Images, 1)
	})

	t.Run("rejects non images before any call", func(t *testing.T) {
		svc, _, _ := newService(t)

		_, err := svc.UploadImage(context.Background(), "h-1", dto.UploadImageRequest{FileName: "notes.txt", Data: []byte("plain text")})

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("removes the object when the hotel update fails", func(t *testing.T) {
		svc, mockRepo, mockS3 := newService(t)

		var uploaded string

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(existing, nil)
		mockS3.EXPECT().
			UploadFileBytes(gomock.Any(), "", "hotels/h-1", gomock.Any(), "image/png", pngHeader).
			DoAndReturn(func(_ context.Context, _, _, name, _ string, _ []byte) (string, error) {
				uploaded = name

				return "https://cdn/hotels/h-1/" + name, nil
			})
		mockRepo.EXPECT().
			Update(gomock.Any(), "h-1", gomock.Any()).
			Return(model.Hotel{}, failure.Forbidden("42501", "new row violates row-level security policy"))
		mockS3.EXPECT().
			DeleteFile(gomock.Any(), "", "hotels/h-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _, name string) error {
				assert.Equal(t, uploaded, name)

				return nil
			})

		_, err := svc.UploadImage(context.Background(), "h-1", dto.UploadImageRequest{FileName: "front.png", Data: pngHeader})

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("upload failure leaves the hotel untouched", func(t *testing.T) {
		svc, mockRepo, mockS3 := newService(t)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(existing, nil)
		mockS3.EXPECT().
			UploadFileBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", errors.New("bucket not found"))

		_, err := svc.UploadImage(context.Background(), "h-1", dto.UploadImageRequest{FileName: "front.png", Data: pngHeader})

		assert.ErrorContains(t, err, "bucket not found")
	})
}
