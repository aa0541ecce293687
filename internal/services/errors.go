package services

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials is returned by Login for an unknown email or a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken covers malformed tokens and signature failures.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned for tokens past their expiry.
	ErrExpiredToken = errors.New("token expired")
	// ErrUserNotFound is returned when the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrNoCityConfigured is returned when a weather lookup is requested for a user without a city.
	ErrNoCityConfigured = errors.New("city not set for user")
)

// ValidationError reports the first invalid field of a request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ForbiddenError is returned when the actor does not own the resource it tries to mutate.
type ForbiddenError struct {
	Action string // "update" or "delete"
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("Unauthorized to %s this user", e.Action)
}

// ProviderError carries a non-success response of the weather provider.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return e.Message
}

// FetchError wraps a transport-level failure talking to the weather provider.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("Failed to fetch weather data: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
