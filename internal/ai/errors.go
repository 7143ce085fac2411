package ai

import (
	"errors"
	"fmt"
	"net"
	"net/url"
)

// Request failure categories. The retryable set mirrors what transient
// provider trouble looks like on the wire; everything else aborts the retry
// loop immediately (though a fallback provider may still be tried).
var (
	// ErrNoAPIKey means no credential is stored for the provider.
	ErrNoAPIKey = errors.New("no API key configured")
	// ErrInvalidURL means the request endpoint could not be built.
	ErrInvalidURL = errors.New("invalid request URL")
	// ErrEmptyResponse means the provider returned no usable content.
	ErrEmptyResponse = errors.New("empty response")
	// ErrInvalidResponse means the response body could not be interpreted.
	ErrInvalidResponse = errors.New("invalid response")
	// ErrMalformedReply means the response envelope failed to decode.
	ErrMalformedReply = errors.New("malformed response structure")
)

// APIError is a non-2xx status returned by a provider.
type APIError struct {
	Provider   Provider
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Message)
}

// IsRetryable reports whether a failed attempt is worth repeating against the
// same provider. Rate limits, server errors, empty or garbled content, and
// transport failures are transient; credential and request-shape problems are
// not.
func IsRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429 || apiErr.StatusCode >= 500
	}

	switch {
	case errors.Is(err, ErrEmptyResponse), errors.Is(err, ErrInvalidResponse):
		return true
	case errors.Is(err, ErrNoAPIKey), errors.Is(err, ErrInvalidURL), errors.Is(err, ErrMalformedReply):
		return false
	}

	// Network transport errors are always retryable.
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
