package service

import (
	"context"
	"fmt"
	"hostel/infras/otel"
	"hostel/infras/s3"
	"hostel/internal/domains/hotel/model"
	"hostel/internal/domains/hotel/model/dto"
	"hostel/internal/domains/hotel/repository"
	"hostel/shared"
	"hostel/shared/constant"
	gDto "hostel/shared/dto"
	"hostel/shared/validator"
	"path"
	"slices"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const imageDirectory = "hotels"

type Hotel interface {
	GetAll(ctx context.Context) ([]dto.HotelDetail, error)
	GetByID(ctx context.Context, id string) (dto.HotelDetail, error)
	GetByOwner(ctx context.Context, ownerID string) ([]dto.HotelWithRooms, error)
	Create(ctx context.Context, req dto.CreateHotelRequest) (model.Hotel, error)
	Update(ctx context.Context, id string, req dto.UpdateHotelRequest) (model.Hotel, error)
	Delete(ctx context.Context, id string) error
	UploadImage(ctx context.Context, id string, req dto.UploadImageRequest) (model.Hotel, error)
}

type serviceImpl struct {
	repo    repository.Hotel
	storage s3.S3
	otel    otel.Otel
}

func New(repo repository.Hotel, storage s3.S3, otel otel.Otel) Hotel {
	return &serviceImpl{
		repo:    repo,
		storage: storage,
		otel:    otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context) (res []dto.HotelDetail, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".hotel.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.GetAllDetails(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotels")

		return res, err //nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) GetByID(ctx context.Context, id string) (res dto.HotelDetail, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".hotel.GetByID")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.GetDetail(ctx, shared.FilterByID(id, model.FieldID, ""))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get hotel")

		return res, err //nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) GetByOwner(ctx context.Context, ownerID string) (res []dto.HotelWithRooms, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".hotel.GetByOwner")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.GetAllWithRooms(ctx, gDto.QueryParams{}, shared.FilterByID(ownerID, model.FieldOwnerID, ""))
	if err != nil {
		log.Error().Err(err).Str("owner_id", ownerID).Msg("failed to get owner hotels")

		return res, err //nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateHotelRequest) (res model.Hotel, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".hotel.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Amenities == nil {
		req.Amenities = []string{}
	}

	if req.Images == nil {
		req.Images = []string{}
	}

	res, err = s.repo.Insert(ctx, req)
	if err != nil {
		log.Error().Err(err).Str("owner_id", req.OwnerID).Msg("failed to create hotel")

		return res, err //nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateHotelRequest) (res model.Hotel, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".hotel.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.Update(ctx, id, shared.TransformFields(req))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update hotel")

		return res, err //nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".hotel.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.repo.Delete(ctx, id); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete hotel")

		return err //nolint:wrapcheck
	}

	return nil
}

// UploadImage stores the file in object storage and appends its public URL to the
// hotel's images. The object is removed again when the hotel cannot be updated.
func (s *serviceImpl) UploadImage(ctx context.Context, id string, req dto.UploadImageRequest) (res model.Hotel, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".hotel.UploadImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	hotel, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, ""), model.FieldID, model.FieldImages)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get hotel for image upload")

		return res, err //nolint:wrapcheck
	}

	kind := mimetype.Detect(req.Data)
	directory := path.Join(imageDirectory, id)
	objectName := uuid.NewString() + kind.Extension()

	url, err := s.storage.UploadFileBytes(ctx, "", directory, objectName, kind.String(), req.Data)
	if err != nil {
		log.Error().Err(err).Str("id", id).Str("file", req.FileName).Msg("failed to upload hotel image")

		return res, fmt.Errorf("failed to upload hotel image: %w", err)
	}

	images := append(slices.Clone(hotel.Images), url)

	res, err = s.repo.Update(ctx, id, map[string]any{model.FieldImages: images})
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to attach hotel image")

		if delErr := s.storage.DeleteFile(context.WithoutCancel(ctx), "", directory, objectName); delErr != nil {
			log.Error().Err(delErr).Str("object", objectName).Msg("failed to remove orphaned hotel image")
		}

		return res, err //nolint:wrapcheck
	}

	return res, nil
}
