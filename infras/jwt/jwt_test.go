package jwt_test

import (
	"testing"
	"time"

	hostelJWT "hostel/infras/jwt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "super-secret-jwt-token-with-at-least-32-characters"

var now = time.Date(2025, time.May, 1, 12, 0, 0, 0, time.UTC)

func sign(t *testing.T, key string, expiresAt time.Time) string {
	t.Helper()

	claims := hostelJWT.Claims{
		Email: "ana@campus.edu",
		Role:  "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u-1",
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)

	return token
}

func TestService_Parse(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		token   func(t *testing.T) string
		wantErr bool
	}{
		{
			name:   "verified",
			secret: secret,
			token:  func(t *testing.T) string { return sign(t, secret, now.Add(time.Hour)) },
		},
		{
			name:   "verified but expired still parses",
			secret: secret,
			token:  func(t *testing.T) string { return sign(t, secret, now.Add(-time.Hour)) },
		},
		{
			name:    "wrong signature",
			secret:  secret,
			token:   func(t *testing.T) string { return sign(t, "another-secret", now.Add(time.Hour)) },
			wantErr: true,
		},
		{
			name:   "unverified without secret",
			secret: "",
			token:  func(t *testing.T) string { return sign(t, "another-secret", now.Add(time.Hour)) },
		},
		{
			name:    "garbage",
			secret:  "",
			token:   func(_ *testing.T) string { return "not-a-token" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := hostelJWT.NewWithClock(tt.secret, func() time.Time { return now })

			claims, err := svc.Parse(tt.token(t))

			if tt.wantErr {
				assert.ErrorIs(t, err, hostelJWT.ErrInvalidToken)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "u-1", claims.Subject)
			assert.Equal(t, "ana@campus.edu", claims.Email)
		})
	}
}

func TestService_Expired(t *testing.T) {
	svc := hostelJWT.NewWithClock("", func() time.Time { return now })

	tests := []struct {
		name   string
		token  string
		margin time.Duration
		want   bool
	}{
		{name: "valid", token: sign(t, secret, now.Add(time.Hour)), margin: 30 * time.Second, want: false},
		{name: "past expiry", token: sign(t, secret, now.Add(-time.Minute)), want: true},
		{name: "inside margin", token: sign(t, secret, now.Add(10*time.Second)), margin: 30 * time.Second, want: true},
		{name: "unreadable", token: "x.y.z", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.Expired(tt.token, tt.margin))
		})
	}
}
