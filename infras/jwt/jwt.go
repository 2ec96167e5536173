package jwt

import (
	"errors"
	"fmt"
	"hostel/config"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrInvalidClaim = errors.New("invalid token claim")
)

// Claims is the subset of the auth server's access-token claims the client reads.
type Claims struct {
	Email     string `json:"email"`
	Role      string `json:"role,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	jwt.RegisteredClaims
}

// JWT inspects access tokens issued by the auth server. It never signs tokens.
type JWT interface {
	Parse(tokenString string) (*Claims, error)
	Expired(tokenString string, margin time.Duration) bool
}

// Service handles JWT operations
type Service struct {
	secret []byte
	now    func() time.Time
}

// New creates a token inspector. With JWT_SECRET set signatures are verified, otherwise claims are read as-is.
func New(cfg *config.Config) JWT {
	return NewWithClock(cfg.JWT.Secret, time.Now)
}

func NewWithClock(secret string, now func() time.Time) JWT {
	svc := &Service{now: now}
	if secret != "" {
		svc.secret = []byte(secret)
	}

	return svc
}

// Parse returns the token claims. Expiry is not enforced here, see Expired.
func (s *Service) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}

	if s.secret == nil {
		_, _, err := jwt.NewParser().ParseUnverified(tokenString, claims)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
		}

		return claims, nil
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return s.secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Expired reports whether the token expires within margin. Unreadable tokens count as expired.
func (s *Service) Expired(tokenString string, margin time.Duration) bool {
	claims, err := s.Parse(tokenString)
	if err != nil {
		return true
	}

	if claims.ExpiresAt == nil {
		return false
	}

	return !s.now().Add(margin).Before(claims.ExpiresAt.Time)
}
