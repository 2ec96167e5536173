package gotrue

import "time"

type AuthChangeEvent string

const (
	EventSignedIn       AuthChangeEvent = "SIGNED_IN"
	EventSignedOut      AuthChangeEvent = "SIGNED_OUT"
	EventTokenRefreshed AuthChangeEvent = "TOKEN_REFRESHED"
	EventUserUpdated    AuthChangeEvent = "USER_UPDATED"
)

// User is the remote auth identity.
type User struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	Phone        string         `json:"phone,omitempty"`
	Role         string         `json:"role,omitempty"`
	AppMetadata  map[string]any `json:"app_metadata,omitempty"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
	ConfirmedAt  *time.Time     `json:"confirmed_at,omitempty"`
	LastSignInAt *time.Time     `json:"last_sign_in_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at,omitempty"`
	User         User   `json:"user"`
}

// SignUpResult carries a session when the server confirms accounts automatically,
// otherwise only the pending user.
type SignUpResult struct {
	User    *User
	Session *Session
}

type AuthChangeHandler func(event AuthChangeEvent, session *Session)

// Subscription is the handle returned by OnAuthStateChange.
type Subscription struct {
	id   int
	stop func(id int)
}

// Unsubscribe stops delivery. Events already being handled finish first.
func (s *Subscription) Unsubscribe() {
	if s != nil && s.stop != nil {
		s.stop(s.id)
	}
}

type credentials struct {
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Data     map[string]any `json:"data,omitempty"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type updateUserRequest struct {
	Data map[string]any `json:"data"`
}

// apiError covers the error shapes the auth server has used over time.
type apiError struct {
	Code             any    `json:"code"`
	ErrorCode        string `json:"error_code"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (e apiError) reason() string {
	if e.ErrorCode != "" {
		return e.ErrorCode
	}

	return e.Error
}

func (e apiError) text() string {
	for _, candidate := range []string{e.Msg, e.Message, e.ErrorDescription, e.Error} {
		if candidate != "" {
			return candidate
		}
	}

	return ""
}
