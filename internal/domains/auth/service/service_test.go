package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hostel/infras/gotrue"
	gotrueMocks "hostel/infras/gotrue/mocks"
	"hostel/infras/otel/mocks"
	"hostel/internal/domains/auth/model/dto"
	"hostel/internal/domains/auth/service"
	profileModel "hostel/internal/domains/profile/model"
	profileDto "hostel/internal/domains/profile/model/dto"
	profileMocks "hostel/internal/domains/profile/service/mocks"
	"hostel/shared/failure"
)

type fixture struct {
	svc      service.Auth
	client   *gotrueMocks.MockClient
	profiles *profileMocks.MockProfile
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	client := gotrueMocks.NewMockClient(ctrl)
	profiles := profileMocks.NewMockProfile(ctrl)

	return fixture{
		svc:      service.New(client, profiles, mocks.NewOtel()),
		client:   client,
		profiles: profiles,
	}
}

func TestAuthService_SignUp(t *testing.T) {
	owner := dto.Registration{FullName: "Olu Ade", Email: "a@x.com", Role: "owner"}

	t.Run("creates the profile for the new user", func(t *testing.T) {
		f := newFixture(t)

		f.client.EXPECT().
			SignUp(gomock.Any(), "a@x.com", "secret1", map[string]any{"full_name": "Olu Ade", "role": "owner"}).
			Return(&gotrue.SignUpResult{User: &gotrue.User{ID: "u-1", Email: "a@x.com"}}, nil)
		f.profiles.EXPECT().
			Create(gomock.Any(), profileDto.CreateProfileRequest{ID: "u-1", Email: "a@x.com", FullName: "Olu Ade", Role: "owner"}).
			Return(profileModel.Profile{ID: "u-1", Role: "owner"}, nil)

		res, err := f.svc.SignUp(context.Background(), owner, "secret1")

		require.NoError(t, err)
		assert.Equal(t, "u-1", res.User.ID)
		assert.Nil(t, res.Session)
	})

	invalid := []struct {
		name     string
		reg      dto.Registration
		password string
	}{
		{name: "short password", reg: owner, password: "12345"},
		{name: "missing name", reg: dto.Registration{Email: "a@x.com"}, password: "secret1"},
		{name: "bad email", reg: dto.Registration{FullName: "Olu", Email: "not-an-email"}, password: "secret1"},
		{name: "unknown role", reg: dto.Registration{FullName: "Olu", Email: "a@x.com", Role: "superuser"}, password: "secret1"},
	}

	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.svc.SignUp(context.Background(), tt.reg, tt.password)

			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}

	t.Run("already registered", func(t *testing.T) {
		f := newFixture(t)

		f.client.EXPECT().
			SignUp(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, failure.FromStore(http.StatusConflict, "user_already_exists", "User already registered"))

		_, err := f.svc.SignUp(context.Background(), owner, "secret1")

		assert.True(t, failure.IsConstraint(err))
	})

	t.Run("profile failure is returned with the result", func(t *testing.T) {
		f := newFixture(t)

		f.client.EXPECT().
			SignUp(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&gotrue.SignUpResult{User: &gotrue.User{ID: "u-1"}}, nil)
		f.profiles.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(profileModel.Profile{}, failure.Forbidden("42501", "new row violates row-level security policy for table \"profiles\""))

		res, err := f.svc.SignUp(context.Background(), owner, "secret1")

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
		assert.Equal(t, "u-1", res.User.ID)
	})
}

func TestAuthService_SignIn(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newFixture(t)

		f.client.EXPECT().
			SignInWithPassword(gomock.Any(), "a@x.com", "secret1").
			Return(&gotrue.Session{AccessToken: "token", User: gotrue.User{ID: "u-1"}}, nil)

		session, err := f.svc.SignIn(context.Background(), "a@x.com", "secret1")

		require.NoError(t, err)
		assert.Equal(t, "u-1", session.User.ID)
	})

	t.Run("missing password makes no call", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.SignIn(context.Background(), "a@x.com", "")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("rejected", func(t *testing.T) {
		f := newFixture(t)

		f.client.EXPECT().
			SignInWithPassword(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, failure.Unauthorized("Invalid login credentials"))

		_, err := f.svc.SignIn(context.Background(), "a@x.com", "wrong")

		assert.True(t, failure.IsUnauthenticated(err))
	})
}

func TestAuthService_SignOut(t *testing.T) {
	f := newFixture(t)
	remote := failure.RemoteUnavailable(errors.New("dial tcp: i/o timeout"))

	f.client.EXPECT().SignOut(gomock.Any()).Return(remote)

	assert.ErrorIs(t, f.svc.SignOut(context.Background()), remote)
}

func TestAuthService_CurrentUser(t *testing.T) {
	t.Run("signed out", func(t *testing.T) {
		f := newFixture(t)

		f.client.EXPECT().GetUser(gomock.Any()).Return(nil, nil)

		user, err := f.svc.CurrentUser(context.Background())

		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("user with profile", func(t *testing.T) {
		f := newFixture(t)

		f.client.EXPECT().GetUser(gomock.Any()).Return(&gotrue.User{ID: "u-1", Email: "a@x.com"}, nil)
		f.profiles.EXPECT().GetByID(gomock.Any(), "u-1").Return(profileModel.Profile{ID: "u-1", Role: "owner"}, nil)

		user, err := f.svc.CurrentUser(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "u-1", user.ID)
		assert.Equal(t, "owner", user.Profile.Role)
	})

	t.Run("profile missing", func(t *testing.T) {
		f := newFixture(t)

		f.client.EXPECT().GetUser(gomock.Any()).Return(&gotrue.User{ID: "u-1"}, nil)
		f.profiles.EXPECT().GetByID(gomock.Any(), "u-1").Return(profileModel.Profile{}, failure.NotFound("profile"))

		_, err := f.svc.CurrentUser(context.Background())

		assert.True(t, failure.IsNotFound(err))
	})
}

func TestAuthService_OnAuthStateChange(t *testing.T) {
	f := newFixture(t)
	sub := &gotrue.Subscription{}

	f.client.EXPECT().OnAuthStateChange(gomock.Any()).Return(sub)

	assert.Same(t, sub, f.svc.OnAuthStateChange(func(gotrue.AuthChangeEvent, *gotrue.Session) {}))
}
