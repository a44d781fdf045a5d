// Package transport performs the POST exchanges behind token, refresh and revoke requests.
package transport

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-auth-client/oauthmodel"
)

// Transport posts params to path, relative to the authorization server, and returns
// the decoded response payload. Errors are returned to callers as produced.
type Transport interface {
	Request(ctx context.Context, path string, params *oauthmodel.Params, opts ...RequestOption) (map[string]any, error)
}

// RequestOptions are per-request settings passed through untouched by flows.
type RequestOptions struct {
	Header http.Header
}

// RequestOption customises a single request.
type RequestOption func(*RequestOptions)

// WithHeader adds a header to the request, in addition to the transport defaults.
func WithHeader(key, value string) RequestOption {
	return func(o *RequestOptions) {
		if o.Header == nil {
			o.Header = http.Header{}
		}
		o.Header.Add(key, value)
	}
}

// ApplyOptions folds opts into a RequestOptions value.
func ApplyOptions(opts ...RequestOption) RequestOptions {
	var o RequestOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
