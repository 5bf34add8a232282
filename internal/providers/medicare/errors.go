package medicare

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidState  = errors.New("state code is required")
	ErrInvalidZip    = errors.New("zip code is required")
	ErrInvalidPlanID = errors.New("plan id is required")

	ErrInvalidPathSegment = errors.New("invalid path segment")
	ErrInvalidJSON        = errors.New("response is not valid JSON")
)

// HTTPStatusError is returned when the API answers with a non-2xx status.
// The response body is discarded.
type HTTPStatusError struct {
	StatusCode int
	URL        string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("API Error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// NotFound reports whether the API did not know the requested resource
func (e *HTTPStatusError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// TransportError is returned when the request could not complete.
// Unwrap exposes the underlying network error.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is an HTTPStatusError with status 404
func IsNotFound(err error) bool {
	var statusErr *HTTPStatusError
	return errors.As(err, &statusErr) && statusErr.NotFound()
}
