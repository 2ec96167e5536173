package failure

import (
	"errors"
	"net/http"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
// Reason carries the machine-readable code reported by the remote store, when there is one.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}

var ErrNoSession = &Failure{Code: http.StatusUnauthorized, Message: "no user logged in"}

// Error returns the failure message.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// Unauthorized returns a new Failure with code for unauthenticated calls.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// Forbidden returns a new Failure for a call the store's access policies reject.
func Forbidden(reason, msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Message: msg,
		Reason:  reason,
	}
}

// RemoteUnavailable returns a new Failure for transport-level failures talking to the store.
func RemoteUnavailable(err error) error {
	if err == nil {
		return nil
	}

	return &Failure{
		Code:    http.StatusServiceUnavailable,
		Message: err.Error(),
	}
}

// FromStore builds a Failure from a store error object, keeping its code and message verbatim.
func FromStore(status int, reason, message string) error {
	return &Failure{
		Code:    status,
		Message: message,
		Reason:  reason,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

func IsNotFound(err error) bool {
	return err != nil && GetCode(err) == http.StatusNotFound
}

// IsConstraint reports a rejected write: client-side validation or a store constraint violation.
func IsConstraint(err error) bool {
	if err == nil {
		return false
	}

	code := GetCode(err)

	return code == http.StatusBadRequest || code == http.StatusConflict || code == http.StatusUnprocessableEntity
}

func IsUnauthenticated(err error) bool {
	return err != nil && GetCode(err) == http.StatusUnauthorized
}

func IsRemoteUnavailable(err error) bool {
	if err == nil {
		return false
	}

	code := GetCode(err)

	return code == http.StatusServiceUnavailable || code == http.StatusBadGateway || code == http.StatusGatewayTimeout
}
