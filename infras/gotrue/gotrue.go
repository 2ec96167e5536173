package gotrue

//go:generate go run go.uber.org/mock/mockgen -source=./gotrue.go -destination=./mocks/gotrue_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hostel/config"
	"hostel/infras/jwt"
	"hostel/infras/otel"
	"hostel/shared/constant"
	"hostel/shared/failure"
	"hostel/shared/metrics"
	"hostel/shared/storage"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	metricsService  = "auth"
	subscriberQueue = 16
	maxErrorBody    = 4096
)

// Client talks to the auth API and owns the process' single session.
type Client interface {
	SignUp(ctx context.Context, email, password string, data map[string]any) (*SignUpResult, error)
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context) error
	GetSession(ctx context.Context) (*Session, error)
	GetUser(ctx context.Context) (*User, error)
	UpdateUser(ctx context.Context, data map[string]any) (*User, error)
	OnAuthStateChange(handler AuthChangeHandler) *Subscription
	AccessToken(ctx context.Context) string
}

type subscriber struct {
	events chan authChange
	done   chan struct{}
}

type authChange struct {
	event   AuthChangeEvent
	session *Session
}

type client struct {
	baseURL    string
	publicKey  string
	http       *http.Client
	store      storage.Storage
	storageKey string
	storageTTL time.Duration
	margin     time.Duration
	tokens     jwt.JWT
	otel       otel.Otel

	mu      sync.Mutex
	session *Session
	loaded  bool

	// refreshMu serialises refreshes: a refresh token is single use.
	refreshMu sync.Mutex

	subMu       sync.Mutex
	subscribers map[int]*subscriber
	nextID      int
}

func New(cfg *config.Config, store storage.Storage, tokens jwt.JWT, ot otel.Otel) Client {
	return &client{
		baseURL:     strings.TrimRight(cfg.Store.URL, "/") + constant.PathAuth,
		publicKey:   cfg.Store.PublicKey,
		http:        &http.Client{Timeout: time.Duration(cfg.Store.TimeoutSeconds) * time.Second},
		store:       store,
		storageKey:  cfg.Store.SessionStorageKey,
		storageTTL:  time.Duration(cfg.Store.SessionTTLSeconds) * time.Second,
		margin:      time.Duration(cfg.Store.RefreshMarginSeconds) * time.Second,
		tokens:      tokens,
		otel:        ot,
		subscribers: map[int]*subscriber{},
	}
}

func (c *client) SignUp(ctx context.Context, email, password string, data map[string]any) (result *SignUpResult, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".auth.SignUp")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var raw json.RawMessage

	err = c.call(ctx, http.MethodPost, "/signup", "", credentials{Email: email, Password: password, Data: data}, &raw)
	if err != nil {
		return nil, err
	}

	var session Session
	if err = json.Unmarshal(raw, &session); err == nil && session.AccessToken != "" {
		c.setSession(ctx, &session, EventSignedIn)

		return &SignUpResult{User: &session.User, Session: &session}, nil
	}

	var user User
	if err = json.Unmarshal(raw, &user); err != nil {
		return nil, failure.RemoteUnavailable(fmt.Errorf("decoding signup response: %w", err)) //nolint:wrapcheck
	}

	return &SignUpResult{User: &user}, nil
}

func (c *client) SignInWithPassword(ctx context.Context, email, password string) (session *Session, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".auth.SignInWithPassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	session = &Session{}

	err = c.call(ctx, http.MethodPost, "/token?grant_type=password", "", credentials{Email: email, Password: password}, session)
	if err != nil {
		return nil, err
	}

	c.setSession(ctx, session, EventSignedIn)

	return session, nil
}

// SignOut revokes the session remotely and always discards it locally.
// The remote failure, if any, is still returned.
func (c *client) SignOut(ctx context.Context) (err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".auth.SignOut")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	c.mu.Lock()
	current := c.session
	c.mu.Unlock()

	if current != nil {
		err = c.call(ctx, http.MethodPost, "/logout", current.AccessToken, nil, nil)
		if err != nil {
			log.Warn().Err(err).Msg("remote sign out failed, clearing local session anyway")
		}
	}

	c.clearSession(ctx)
	c.emit(EventSignedOut, nil)

	return err
}

// GetSession returns the current session, restoring it from storage on first use and
// refreshing it when the access token is about to expire. No session is (nil, nil).
func (c *client) GetSession(ctx context.Context) (session *Session, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".auth.GetSession")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	c.mu.Lock()
	if !c.loaded {
		c.loaded = true

		var stored Session

		err = c.store.Get(ctx, c.storageKey, &stored)

		switch {
		case err == nil:
			c.session = &stored
		case errors.Is(err, storage.ErrMissing):
			err = nil
		default:
			log.Warn().Err(err).Msg("failed to restore persisted session")

			err = nil
		}
	}

	current := c.session
	c.mu.Unlock()

	if current == nil {
		return nil, nil
	}

	if !c.tokens.Expired(current.AccessToken, c.margin) {
		return current, nil
	}

	return c.refresh(ctx)
}

// refresh exchanges the refresh token once per expiry. Callers queued behind a
// refresh pick up its outcome instead of spending the rotated token again.
func (c *client) refresh(ctx context.Context) (*Session, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	c.mu.Lock()
	current := c.session
	c.mu.Unlock()

	if current == nil {
		return nil, nil
	}

	if !c.tokens.Expired(current.AccessToken, c.margin) {
		return current, nil
	}

	if current.RefreshToken == "" {
		c.clearSession(ctx)
		c.emit(EventSignedOut, nil)

		return nil, failure.Unauthorized("session expired") //nolint:wrapcheck
	}

	refreshed := &Session{}

	err := c.call(ctx, http.MethodPost, "/token?grant_type=refresh_token", "", refreshRequest{RefreshToken: current.RefreshToken}, refreshed)
	if err != nil {
		if !failure.IsRemoteUnavailable(err) {
			c.clearSession(ctx)
			c.emit(EventSignedOut, nil)
		}

		return nil, err
	}

	c.setSession(ctx, refreshed, EventTokenRefreshed)

	return refreshed, nil
}

func (c *client) GetUser(ctx context.Context) (user *User, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".auth.GetUser")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	session, err := c.GetSession(ctx)
	if err != nil || session == nil {
		return nil, err
	}

	user = &User{}
	if err = c.call(ctx, http.MethodGet, "/user", session.AccessToken, nil, user); err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateUser merges data into the signed-in user's metadata.
func (c *client) UpdateUser(ctx context.Context, data map[string]any) (user *User, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".auth.UpdateUser")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	session, err := c.GetSession(ctx)
	if err != nil {
		return nil, err
	}

	if session == nil {
		return nil, failure.ErrNoSession
	}

	user = &User{}
	if err = c.call(ctx, http.MethodPut, "/user", session.AccessToken, updateUserRequest{Data: data}, user); err != nil {
		return nil, err
	}

	updated := *session
	updated.User = *user

	c.setSession(ctx, &updated, EventUserUpdated)

	return user, nil
}

// AccessToken is the bearer token for the data API, empty when signed out.
func (c *client) AccessToken(ctx context.Context) string {
	session, err := c.GetSession(ctx)
	if err != nil || session == nil {
		return ""
	}

	return session.AccessToken
}

// OnAuthStateChange registers handler for every later auth event. Each subscription
// gets its own goroutine, so handlers may call back into the client.
func (c *client) OnAuthStateChange(handler AuthChangeHandler) *Subscription {
	sub := &subscriber{
		events: make(chan authChange, subscriberQueue),
		done:   make(chan struct{}),
	}

	c.subMu.Lock()
	c.nextID++
	id := c.nextID
	c.subscribers[id] = sub
	c.subMu.Unlock()

	go func() {
		for {
			select {
			case change := <-sub.events:
				handler(change.event, change.session)
			case <-sub.done:
				return
			}
		}
	}()

	return &Subscription{id: id, stop: c.unsubscribe}
}

func (c *client) unsubscribe(id int) {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	if sub, ok := c.subscribers[id]; ok {
		close(sub.done)
		delete(c.subscribers, id)
	}
}

func (c *client) emit(event AuthChangeEvent, session *Session) {
	metrics.ObserveAuthEvent(string(event))

	c.subMu.Lock()
	subs := make([]*subscriber, 0, len(c.subscribers))
	for _, sub := range c.subscribers {
		subs = append(subs, sub)
	}
	c.subMu.Unlock()

	for _, sub := range subs {
		select {
		case sub.events <- authChange{event: event, session: session}:
		case <-sub.done:
		}
	}
}

func (c *client) setSession(ctx context.Context, session *Session, event AuthChangeEvent) {
	if session.ExpiresAt == 0 && session.ExpiresIn > 0 {
		session.ExpiresAt = time.Now().Add(time.Duration(session.ExpiresIn) * time.Second).Unix()
	}

	c.mu.Lock()
	c.session = session
	c.loaded = true
	c.mu.Unlock()

	if err := c.store.Save(ctx, c.storageKey, session, c.storageTTL); err != nil {
		log.Warn().Err(err).Msg("failed to persist session")
	}

	c.emit(event, session)
}

func (c *client) clearSession(ctx context.Context) {
	c.mu.Lock()
	c.session = nil
	c.loaded = true
	c.mu.Unlock()

	if err := c.store.Delete(ctx, c.storageKey); err != nil {
		log.Warn().Err(err).Msg("failed to delete persisted session")
	}
}

func (c *client) call(ctx context.Context, method, path, bearer string, body, out any) error {
	var reader io.Reader

	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding auth request: %w", err)
		}

		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building auth request: %w", err)
	}

	if bearer == "" {
		bearer = c.publicKey
	}

	req.Header.Set(constant.RequestHeaderAPIKey, c.publicKey)
	req.Header.Set(constant.RequestHeaderAuthorization, constant.BearerPrefix+bearer)
	req.Header.Set(constant.RequestHeaderRequestID, uuid.NewString())
	req.Header.Set(constant.RequestHeaderUserAgent, constant.UserAgent)
	req.Header.Set(constant.RequestHeaderAccept, constant.ContentTypeJSON)

	if reader != nil {
		req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	}

	endpoint, _, _ := strings.Cut(path, "?")
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveExternal(metricsService, endpoint, 0, time.Since(start))
		log.Error().Err(err).Str("endpoint", endpoint).Msg("auth API unreachable")

		return failure.RemoteUnavailable(err) //nolint:wrapcheck
	}
	defer resp.Body.Close()

	metrics.ObserveExternal(metricsService, endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp, endpoint)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)

		return nil
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return failure.RemoteUnavailable(fmt.Errorf("decoding %s response: %w", endpoint, err)) //nolint:wrapcheck
	}

	return nil
}

func decodeError(resp *http.Response, endpoint string) error {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return failure.RemoteUnavailable(err) //nolint:wrapcheck
	}

	var apiErr apiError
	_ = json.Unmarshal(raw, &apiErr)

	msg := apiErr.text()
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	log.Error().Int("status", resp.StatusCode).Str("endpoint", endpoint).Str("code", apiErr.reason()).Msg(msg)

	return MapError(resp.StatusCode, apiErr.reason(), msg)
}

// MapError classifies an auth API error. Rejected credentials and grants are unauthenticated.
func MapError(status int, reason, msg string) error {
	switch reason {
	case "invalid_credentials", "invalid_grant", "refresh_token_not_found", "session_not_found", "bad_jwt":
		return failure.FromStore(http.StatusUnauthorized, reason, msg) //nolint:wrapcheck
	case "user_already_exists", "email_exists":
		return failure.FromStore(http.StatusConflict, reason, msg) //nolint:wrapcheck
	}

	if status == http.StatusForbidden {
		return failure.FromStore(http.StatusUnauthorized, reason, msg) //nolint:wrapcheck
	}

	return failure.FromStore(status, reason, msg) //nolint:wrapcheck
}
