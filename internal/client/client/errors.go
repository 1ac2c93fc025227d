package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
)

// APIError is a non-2xx response. Message is the backend's "message" field
// when there is one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api error: %d %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusConflict:
		return ErrValidation
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return ErrUnavailable
	}
	return nil
}

// parseErrorBody extracts the message from bodies like
// {"statusCode":400,"message":["a","b"],"error":"Bad Request"}.
func parseErrorBody(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}

	var envelope struct {
		Message json.RawMessage `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		apiErr.Message = strings.TrimSpace(string(body))
		return apiErr
	}

	var one string
	var many []string
	switch {
	case json.Unmarshal(envelope.Message, &one) == nil:
		apiErr.Message = one
	case json.Unmarshal(envelope.Message, &many) == nil:
		apiErr.Message = strings.Join(many, "; ")
	default:
		apiErr.Message = envelope.Error
	}
	return apiErr
}
