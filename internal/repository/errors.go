package repository

import (
	"errors"
	"fmt"
	"net/http"
)

// Custom error types
var (
	ErrLocationNotFound = errors.New("location not found")
	ErrUnauthorized     = errors.New("API key rejected")
)

// NetworkError is a transport failure: DNS, refused connection, timeout.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("weather API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("weather API returned status %d: %s", e.StatusCode, e.Message)
}

func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrLocationNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	}
	return false
}

// ShapeError means the response body did not have the expected fields.
type ShapeError struct {
	Field string
	Err   error
}

func (e *ShapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unexpected weather response: %v", e.Err)
	}
	return fmt.Sprintf("unexpected weather response: missing %s", e.Field)
}

func (e *ShapeError) Unwrap() error { return e.Err }
