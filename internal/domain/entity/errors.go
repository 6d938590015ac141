package entity

import (
	"errors"
	"fmt"
)

// ErrInvalidAmount is returned by amount conversion for malformed or negative
// input. Display paths must fall back to "0" instead of propagating it.
var ErrInvalidAmount = errors.New("invalid token amount")

// MarketErrorKind classifies a backend failure for user-facing display.
type MarketErrorKind string

const (
	// MarketErrNotFound means the resource does not exist yet (onboarding case).
	MarketErrNotFound MarketErrorKind = "not_found"
	// MarketErrMaintenance covers 5xx responses from the backend.
	MarketErrMaintenance MarketErrorKind = "maintenance"
	// MarketErrConnection covers transport-level failures.
	MarketErrConnection MarketErrorKind = "connection"
	// MarketErrBadRequest covers remaining 4xx responses.
	MarketErrBadRequest MarketErrorKind = "bad_request"
)

// MarketError is a classified failure from the marketplace backend.
type MarketError struct {
	Kind       MarketErrorKind
	StatusCode int
	Message    string // user-facing message
	Err        error
}

func (e *MarketError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("marketplace request failed (%s, status %d): %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("marketplace request failed (%s, status %d): %s", e.Kind, e.StatusCode, e.Message)
}

func (e *MarketError) Unwrap() error { return e.Err }

// NewMarketError classifies an HTTP status into a MarketError with the
// friendly message the UI layer shows for it.
func NewMarketError(statusCode int, err error) *MarketError {
	me := &MarketError{StatusCode: statusCode, Err: err}
	switch {
	case statusCode == 0:
		me.Kind = MarketErrConnection
		me.Message = "Please check your internet connection and try again."
	case statusCode == 404:
		me.Kind = MarketErrNotFound
		me.Message = "We're working to fix this issue. In the meantime, you can register your MCP server."
	case statusCode >= 500:
		me.Kind = MarketErrMaintenance
		me.Message = "We're performing some quick maintenance. Please try again in a few moments."
	default:
		me.Kind = MarketErrBadRequest
		me.Message = "The request could not be processed."
	}
	return me
}

// AsMarketError unwraps err to a MarketError, or wraps it as a connection
// failure when it is some other transport error.
func AsMarketError(err error) *MarketError {
	var me *MarketError
	if errors.As(err, &me) {
		return me
	}
	return NewMarketError(0, err)
}
