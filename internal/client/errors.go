package client

import (
	"errors"
	"fmt"
	"net/http"
)

// NetworkErrorMessage is shown when a request never completed
const NetworkErrorMessage = "Network error, please check your connection and try again"

// TransportError means the request never completed or its response was unreadable
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError is an application level rejection (success:false or an error status)
type APIError struct {
	Status  int
	Message string // server supplied, may be empty
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if text := http.StatusText(e.Status); text != "" {
		return fmt.Sprintf("backend returned %d %s", e.Status, text)
	}
	return "backend rejected the request"
}

// Message turns err into the text shown to the user: a generic network error
// for transport failures, the server message when the backend supplied one,
// fallback otherwise.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var transport *TransportError
	if errors.As(err, &transport) {
		return NetworkErrorMessage
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// IsNotFound reports whether the backend answered 404
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
