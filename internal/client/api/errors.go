package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	apitypes "github.com/dereksuun/ocr-frontend/pkg/api"
)

const maxErrorBody = 64 << 10

// Error is a request failure reported by the backend.
type Error struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// errorFromResponse builds an *Error from a non-2xx response body.
func (c *Client) errorFromResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	apiErr := &Error{Status: resp.StatusCode}

	var envelope apitypes.ErrorResponse
	if err := json.Unmarshal(body, &envelope); err == nil {
		apiErr.Fields = envelope.Fields
		switch {
		case envelope.Message != "":
			apiErr.Message = envelope.Message
		case envelope.Detail != "":
			apiErr.Message = envelope.Detail
		default:
			apiErr.Message = envelope.Error
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(body))
	}

	return apiErr
}

func statusOf(err error) (int, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status, true
	}
	return 0, false
}

// IsAuthError reports an authentication failure (401).
func IsAuthError(err error) bool {
	status, ok := statusOf(err)
	return ok && status == http.StatusUnauthorized
}

// IsPermissionError reports an authorization failure (403).
func IsPermissionError(err error) bool {
	status, ok := statusOf(err)
	return ok && status == http.StatusForbidden
}

// IsNotFound reports a missing resource (404).
func IsNotFound(err error) bool {
	status, ok := statusOf(err)
	return ok && status == http.StatusNotFound
}

// IsValidationError reports a 4xx failure carrying field-level messages.
func IsValidationError(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status >= 400 && apiErr.Status < 500 && len(apiErr.Fields) > 0
}

// IsServerError reports a backend failure (5xx).
func IsServerError(err error) bool {
	status, ok := statusOf(err)
	return ok && status >= 500
}
