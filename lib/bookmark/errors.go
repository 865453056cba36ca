// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package bookmark

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from a bookmark endpoint. The reading
// API answers errors with {"error": "..."}; the static content host
// answers with whatever body it likes.
type APIError struct {
	StatusCode int
	URL        string
	Message    string
}

func (err *APIError) Error() string {
	return fmt.Sprintf("bookmark: HTTP %d from %s: %s", err.StatusCode, err.URL, err.Message)
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == http.StatusNotFound
}

// ErrNoReadingAPI is returned by progress and annotation calls when
// the client was built without an API base URL.
var ErrNoReadingAPI = errors.New("bookmark: reading API not configured")

func parseAPIError(statusCode int, url string, body []byte) *APIError {
	apiError := &APIError{StatusCode: statusCode, URL: url}

	var wireError struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &wireError) == nil && wireError.Error != "" {
		apiError.Message = wireError.Error
	} else {
		apiError.Message = string(body)
	}
	return apiError
}
