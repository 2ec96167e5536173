package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"hostel/config"
	"hostel/infras/otel"
	"hostel/shared/constant"
	"hostel/shared/failure"
	"hostel/shared/metrics"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	metricsService = "rest"
	maxErrorBody   = 4096
)

// TokenSource yields the bearer token of the signed-in user, or "" when nobody is signed in.
type TokenSource interface {
	AccessToken(ctx context.Context) string
}

// Request is one call against a table of the data API.
type Request struct {
	Method string
	Table  string
	Query  url.Values
	Body   any
	// Single asks for exactly one row as an object instead of an array.
	Single bool
	Prefer []string
}

type Response struct {
	Status int
	// Count is the exact row count when requested with count=exact, -1 otherwise.
	Count int
}

type Client interface {
	Do(ctx context.Context, req Request, out any) (Response, error)
}

// StoreError is the error object returned by the data API.
type StoreError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

type client struct {
	baseURL   string
	publicKey string
	http      *http.Client
	tokens    TokenSource
	limiter   *rate.Limiter
	otel      otel.Otel
}

func New(cfg *config.Config, tokens TokenSource, ot otel.Otel) Client {
	c := &client{
		baseURL:   strings.TrimRight(cfg.Store.URL, "/") + constant.PathRest,
		publicKey: cfg.Store.PublicKey,
		http:      &http.Client{Timeout: time.Duration(cfg.Store.TimeoutSeconds) * time.Second},
		tokens:    tokens,
		otel:      ot,
	}

	if cfg.Store.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.Store.RateLimit), cfg.Store.RateLimit)
	}

	return c
}

func (c *client) bearer(ctx context.Context) string {
	if c.tokens != nil {
		if token := c.tokens.AccessToken(ctx); token != "" {
			return token
		}
	}

	return c.publicKey
}

func (c *client) Do(ctx context.Context, req Request, out any) (res Response, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".rest."+req.Method)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res.Count = -1

	scope.SetAttributes(map[string]any{
		constant.OtelTableAttributeKey: req.Table,
		constant.OtelQueryAttributeKey: req.Query.Encode(),
	})

	if c.limiter != nil {
		if err = c.limiter.Wait(ctx); err != nil {
			return res, failure.RemoteUnavailable(err) //nolint:wrapcheck
		}
	}

	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return res, err
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)

	if err != nil {
		metrics.ObserveExternal(metricsService, req.Table, 0, time.Since(start))
		log.Error().Err(err).Str("table", req.Table).Str("method", req.Method).Msg("data API unreachable")

		return res, failure.RemoteUnavailable(err) //nolint:wrapcheck
	}
	defer resp.Body.Close()

	metrics.ObserveExternal(metricsService, req.Table, resp.StatusCode, time.Since(start))
	res.Status = resp.StatusCode

	if resp.StatusCode >= http.StatusBadRequest {
		return res, decodeError(resp, req.Table)
	}

	if count, ok := parseCount(resp.Header.Get(constant.RequestHeaderContentRange)); ok {
		res.Count = count
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)

		return res, nil
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Error().Err(err).Str("table", req.Table).Msg("malformed data API response")

		return res, failure.RemoteUnavailable(fmt.Errorf("decoding %s response: %w", req.Table, err)) //nolint:wrapcheck
	}

	return res, nil
}

func (c *client) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	target := c.baseURL + req.Table
	if encoded := req.Query.Encode(); encoded != "" {
		target += "?" + encoded
	}

	var body io.Reader

	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding %s payload: %w", req.Table, err)
		}

		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("building %s request: %w", req.Table, err)
	}

	httpReq.Header.Set(constant.RequestHeaderAPIKey, c.publicKey)
	httpReq.Header.Set(constant.RequestHeaderAuthorization, constant.BearerPrefix+c.bearer(ctx))
	httpReq.Header.Set(constant.RequestHeaderRequestID, uuid.NewString())
	httpReq.Header.Set(constant.RequestHeaderUserAgent, constant.UserAgent)

	if req.Single {
		httpReq.Header.Set(constant.RequestHeaderAccept, constant.ContentTypeSingleObject)
	} else {
		httpReq.Header.Set(constant.RequestHeaderAccept, constant.ContentTypeJSON)
	}

	if body != nil {
		httpReq.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	}

	if len(req.Prefer) > 0 {
		httpReq.Header.Set(constant.RequestHeaderPrefer, strings.Join(req.Prefer, ","))
	}

	return httpReq, nil
}

// parseCount reads the total from a Content-Range header such as "0-24/3573" or "*/0".
func parseCount(contentRange string) (int, bool) {
	_, total, found := strings.Cut(contentRange, "/")
	if !found || total == constant.Asterix {
		return 0, false
	}

	count, err := strconv.Atoi(total)
	if err != nil {
		return 0, false
	}

	return count, true
}

func decodeError(resp *http.Response, table string) error {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return failure.RemoteUnavailable(err) //nolint:wrapcheck
	}

	var storeErr StoreError
	if err = json.Unmarshal(raw, &storeErr); err != nil || (storeErr.Code == "" && storeErr.Message == "") {
		msg := strings.TrimSpace(string(raw))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}

		storeErr = StoreError{Message: msg}
	}

	log.Error().
		Int("status", resp.StatusCode).
		Str("table", table).
		Str("code", storeErr.Code).
		Str("details", storeErr.Details).
		Msg(storeErr.Message)

	return MapError(resp.StatusCode, storeErr)
}

// MapError classifies a data API error into a failure, keeping the store's code and message.
func MapError(status int, storeErr StoreError) error {
	switch storeErr.Code {
	case constant.StoreErrorCodeNoRows:
		return failure.FromStore(http.StatusNotFound, storeErr.Code, storeErr.Message) //nolint:wrapcheck
	case constant.PqErrorCodeUniqueViolation, constant.PqErrorCodeFkViolation:
		return failure.FromStore(http.StatusConflict, storeErr.Code, storeErr.Message) //nolint:wrapcheck
	case constant.PqErrorCodeNotNullViolation, constant.PqErrorCodeCheckViolation:
		return failure.FromStore(http.StatusBadRequest, storeErr.Code, storeErr.Message) //nolint:wrapcheck
	case constant.PqErrorCodeInsufficientPriv:
		return failure.Forbidden(storeErr.Code, storeErr.Message) //nolint:wrapcheck
	case constant.StoreErrorCodeJWTExpired:
		return failure.FromStore(http.StatusUnauthorized, storeErr.Code, storeErr.Message) //nolint:wrapcheck
	}

	return failure.FromStore(status, storeErr.Code, storeErr.Message) //nolint:wrapcheck
}
