package transport

import (
	"errors"
	"fmt"

	errs "github.com/jrsteele09/go-auth-client/internal/errors"
)

var (
	// ErrInvalidResponse indicates the server replied with a body that is not a JSON object.
	ErrInvalidResponse = errors.New("invalid response from authorization server")
	// ErrUnsupportedBodyFormat indicates a configured body format the transport cannot encode.
	ErrUnsupportedBodyFormat = fmt.Errorf("body format: %w", errs.ErrUnsupported)
)

// HTTPError is returned for non-2xx responses. Code and Description carry the
// OAuth2 "error" and "error_description" members when the server sent them.
type HTTPError struct {
	StatusCode  int
	Code        string
	Description string
	Payload     map[string]any
}

func (e *HTTPError) Error() string {
	switch {
	case e.Code != "" && e.Description != "":
		return fmt.Sprintf("authorization server responded %d: %s - %s", e.StatusCode, e.Code, e.Description)
	case e.Code != "":
		return fmt.Sprintf("authorization server responded %d: %s", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("authorization server responded %d", e.StatusCode)
}
