package gallery

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from the Marketplace.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
	TypeKey    string `json:"typeKey"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	if e.Message == "" {
		return fmt.Sprintf("marketplace returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not
// an *APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsNotFound reports whether err is a 404 from the Marketplace.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsConflict reports whether err is a 409 from the Marketplace.
func IsConflict(err error) bool {
	return StatusCode(err) == http.StatusConflict
}
