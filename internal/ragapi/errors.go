package ragapi

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// HTTPError is a response outside the 2xx range. Detail is the service's
// {"detail": "..."} text, empty when the body was missing or malformed.
type HTTPError struct {
	Path   string
	Status int
	Detail string
}

func (e *HTTPError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: http %d", e.Path, e.Status)
	}
	return fmt.Sprintf("%s: http %d: %s", e.Path, e.Status, e.Detail)
}

// DecodeError is a 2xx response whose body did not match the contract.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: malformed response: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// AsHTTPError reports whether err carries an HTTP status from the service.
func AsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

// IsTransport reports whether err means no usable response was received.
func IsTransport(err error) bool {
	if err == nil {
		return false
	}
	if _, ok := AsHTTPError(err); ok {
		return false
	}
	var decodeErr *DecodeError
	return !errors.As(err, &decodeErr)
}

// parseDetail extracts the detail text. Non-string details (validation error
// lists) are flattened to their "msg" fields when possible.
func parseDetail(body []byte) string {
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	switch detail := parsed.Detail.(type) {
	case string:
		return strings.TrimSpace(detail)
	case []any:
		parts := make([]string, 0, len(detail))
		for _, item := range detail {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if msg, ok := entry["msg"].(string); ok && strings.TrimSpace(msg) != "" {
				parts = append(parts, strings.TrimSpace(msg))
			}
		}
		return strings.Join(parts, "; ")
	default:
		return ""
	}
}
