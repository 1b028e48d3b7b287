package mesh

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// APIError is a non-2xx gateway response.
type APIError struct {
	Capability Capability
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mesh %s: HTTP error! Status: %d", e.Capability, e.StatusCode)
}

// DecodeError is a 2xx response whose body is not JSON. Callers treat it like an APIError.
type DecodeError struct {
	Capability Capability
	StatusCode int
	Body       string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("mesh %s: malformed JSON in %d response", e.Capability, e.StatusCode)
}

// NetworkError is a transport level failure; no response was received.
type NetworkError struct {
	Capability Capability
	Err        error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("mesh %s: network failure: %v", e.Capability, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// StatusCode reports the HTTP status carried by err, if any.
func StatusCode(err error) (int, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode, true
	}
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return decodeErr.StatusCode, true
	}
	return 0, false
}

// IsGatewayOutage reports whether err looks like the gateway itself is down (502 or 504).
// Errors without a typed status are matched on their message.
func IsGatewayOutage(err error) bool {
	if err == nil {
		return false
	}
	if code, ok := StatusCode(err); ok {
		return code == http.StatusBadGateway || code == http.StatusGatewayTimeout
	}
	// dial errors carry host:port, which must not be read as a status.
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, strconv.Itoa(http.StatusBadGateway)) ||
		strings.Contains(msg, strconv.Itoa(http.StatusGatewayTimeout))
}
