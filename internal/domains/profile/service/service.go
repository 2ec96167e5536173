package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"hostel/infras/otel"
	"hostel/internal/domains/profile/model"
	"hostel/internal/domains/profile/model/dto"
	"hostel/internal/domains/profile/repository"
	"hostel/shared"
	"hostel/shared/constant"

	"github.com/rs/zerolog/log"
)

type Profile interface {
	GetByID(ctx context.Context, id string) (model.Profile, error)
	Create(ctx context.Context, req dto.CreateProfileRequest) (model.Profile, error)
	Update(ctx context.Context, id string, req dto.UpdateProfileRequest) (model.Profile, error)
}

type serviceImpl struct {
	repo repository.Profile
	otel otel.Otel
}

func New(repo repository.Profile, otel otel.Otel) Profile {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

func (s *serviceImpl) GetByID(ctx context.Context, id string) (res model.Profile, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".profile.GetByID")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, ""))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get profile")

		return res, err //nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateProfileRequest) (res model.Profile, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".profile.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Role == "" {
		req.Role = constant.RoleUser
	}

	res, err = s.repo.Insert(ctx, req)
	if err != nil {
		log.Error().Err(err).Str("id", req.ID).Msg("failed to create profile")

		return res, err //nolint:wrapcheck
	}

	return res, nil
}

// Update writes only the fields set on req and returns the full profile.
func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateProfileRequest) (res model.Profile, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".profile.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.Update(ctx, id, shared.TransformFields(req))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update profile")

		return res, err //nolint:wrapcheck
	}

	return res, nil
}
