// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package atomapi

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// maxErrorMessage caps the display width of a non-JSON error body kept
// in the error message. HTML error pages from proxies can be large.
const maxErrorMessage = 200

// APIError represents a non-2xx response from the atom service.
type APIError struct {
	// StatusCode is the HTTP response status code.
	StatusCode int

	// Method and Path identify the request that failed.
	Method string
	Path   string

	// Message is the service's error description: the "error" or
	// "message" field of a JSON body, or the raw body otherwise.
	Message string
}

func (err *APIError) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("atomapi: %s %s: HTTP %d", err.Method, err.Path, err.StatusCode)
	}
	return fmt.Sprintf("atomapi: %s %s: HTTP %d: %s", err.Method, err.Path, err.StatusCode, err.Message)
}

// parseAPIError builds an APIError from a failed response body.
func parseAPIError(method, path string, statusCode int, body string) *APIError {
	apiError := &APIError{
		StatusCode: statusCode,
		Method:     method,
		Path:       path,
	}

	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal([]byte(body), &envelope) == nil {
		switch {
		case envelope.Error != "":
			apiError.Message = envelope.Error
			return apiError
		case envelope.Message != "":
			apiError.Message = envelope.Message
			return apiError
		}
	}

	message := strings.TrimSpace(body)
	if ansi.StringWidth(message) > maxErrorMessage {
		message = ansi.Truncate(message, maxErrorMessage, "") + "..."
	}
	apiError.Message = message
	return apiError
}
