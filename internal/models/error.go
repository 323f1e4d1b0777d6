package models

import (
	"errors"
	"fmt"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrNoLineItems         = errors.New("application has no line items")
	ErrNegativeAmount      = errors.New("line item amount is negative")
	ErrDuplicateOrder      = errors.New("order has already been submitted")
	ErrDataNotFound        = errors.New("data not found")
	ErrConflictData        = errors.New("data conflicts with existing data")
	ErrEmptyCredentials    = errors.New("gateway credentials are empty or placeholder")
	ErrNoAccessToken       = errors.New("authorization response has no access_token")
)

// AuthenticationError is returned when the authorization endpoint rejects
// client credentials or a requested scope.
type AuthenticationError struct {
	StatusCode int
	Body       string
}

func (e AuthenticationError) Error() string {
	return fmt.Sprintf("authorization rejected: status %d: %s", e.StatusCode, e.Body)
}

// TransportError wraps a network-level failure: the call did not complete.
type TransportError struct {
	Err error
}

func (e TransportError) Error() string {
	return fmt.Sprintf("transport: %v", e.Err)
}

func (e TransportError) Unwrap() error {
	return e.Err
}

// GatewayError is a well-formed business rejection from the remote gateway.
// Code and Message are kept verbatim for diagnostics.
type GatewayError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e GatewayError) Error() string {
	return fmt.Sprintf("gateway rejected: status %d code %s: %s", e.StatusCode, e.Code, e.Message)
}

// ValidationError reports malformed domain input for a payload builder.
type ValidationError struct {
	Field string
	Err   error
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %v", e.Field, e.Err)
}

func (e ValidationError) Unwrap() error {
	return e.Err
}
