package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hostel/infras/gotrue"
	"hostel/infras/otel"
	"hostel/internal/domains/auth/model"
	"hostel/internal/domains/auth/model/dto"
	profileService "hostel/internal/domains/profile/service"
	"hostel/shared/constant"
	"hostel/shared/failure"
	"hostel/shared/validator"

	"github.com/rs/zerolog/log"
)

type Auth interface {
	SignUp(ctx context.Context, reg dto.Registration, password string) (*gotrue.SignUpResult, error)
	SignIn(ctx context.Context, email, password string) (*gotrue.Session, error)
	SignOut(ctx context.Context) error
	Session(ctx context.Context) (*gotrue.Session, error)
	CurrentUser(ctx context.Context) (*model.AuthenticatedUser, error)
	OnAuthStateChange(handler gotrue.AuthChangeHandler) *gotrue.Subscription
}

type serviceImpl struct {
	client   gotrue.Client
	profiles profileService.Profile
	otel     otel.Otel
}

func New(client gotrue.Client, profiles profileService.Profile, otel otel.Otel) Auth {
	return &serviceImpl{
		client:   client,
		profiles: profiles,
		otel:     otel,
	}
}

// SignUp validates the registration, creates the auth user and then its profile row.
// Nothing is sent when validation fails.
func (s *serviceImpl) SignUp(ctx context.Context, reg dto.Registration, password string) (res *gotrue.SignUpResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.SignUp")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req := dto.SignUpRequest{Registration: reg, Password: password}
	if err = validator.ValidateStruct(&req); err != nil {
		return nil, err //nolint:wrapcheck
	}

	res, err = s.client.SignUp(ctx, reg.Email, password, reg.Metadata())
	if err != nil {
		log.Error().Err(err).Str("email", reg.Email).Msg("failed to sign up")

		return nil, err //nolint:wrapcheck
	}

	if res.User == nil || res.User.ID == "" {
		return res, failure.RemoteUnavailable(fmt.Errorf("sign up for %s returned no user", reg.Email)) //nolint:wrapcheck
	}

	if _, err = s.profiles.Create(ctx, reg.ToProfile(res.User.ID)); err != nil {
		log.Error().Err(err).Str("user_id", res.User.ID).Msg("signed up but failed to create profile")

		return res, err //nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) SignIn(ctx context.Context, email, password string) (res *gotrue.Session, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.SignIn")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req := dto.SignInRequest{Email: email, Password: password}
	if err = validator.ValidateStruct(&req); err != nil {
		return nil, err //nolint:wrapcheck
	}

	res, err = s.client.SignInWithPassword(ctx, email, password)
	if err != nil {
		log.Error().Err(err).Str("email", email).Msg("failed to sign in")

		return nil, err //nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) SignOut(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.SignOut")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.client.SignOut(ctx); err != nil {
		log.Error().Err(err).Msg("failed to sign out")

		return err //nolint:wrapcheck
	}

	return nil
}

// Session is the current session, nil when signed out.
func (s *serviceImpl) Session(ctx context.Context) (*gotrue.Session, error) {
	return s.client.GetSession(ctx) //nolint:wrapcheck
}

// CurrentUser is the signed-in user with their profile, nil when signed out.
func (s *serviceImpl) CurrentUser(ctx context.Context) (res *model.AuthenticatedUser, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.CurrentUser")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.client.GetUser(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get current user")

		return nil, err //nolint:wrapcheck
	}

	if user == nil {
		return nil, nil
	}

	profile, err := s.profiles.GetByID(ctx, user.ID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return &model.AuthenticatedUser{User: *user, Profile: &profile}, nil
}

func (s *serviceImpl) OnAuthStateChange(handler gotrue.AuthChangeHandler) *gotrue.Subscription {
	return s.client.OnAuthStateChange(handler)
}
