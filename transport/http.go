package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-auth-client/config"
	"github.com/jrsteele09/go-auth-client/oauthmodel"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const requestIDHeader = "X-Request-ID"

// HTTPTransport posts requests to the authorization server at cfg.Auth.TokenHost.
type HTTPTransport struct {
	config     *config.Config
	httpClient *http.Client
	logger     zerolog.Logger
}

var _ Transport = (*HTTPTransport)(nil)

// HTTPOption configures an HTTPTransport.
type HTTPOption func(*HTTPTransport)

// WithHTTPClient sets the http.Client used for requests.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(t *HTTPTransport) {
		if client != nil {
			t.httpClient = client
		}
	}
}

// WithLogger sets the logger for request tracing. Defaults to the global zerolog logger.
func WithLogger(logger zerolog.Logger) HTTPOption {
	return func(t *HTTPTransport) {
		t.logger = logger
	}
}

// NewHTTPTransport returns a transport for cfg. cfg is shared, not copied, and must not be mutated afterwards.
func NewHTTPTransport(cfg *config.Config, options ...HTTPOption) *HTTPTransport {
	t := &HTTPTransport{
		config: cfg,
		logger: log.Logger,
	}

	for _, opt := range options {
		opt(t)
	}

	if t.httpClient == nil {
		t.httpClient = &http.Client{Timeout: cfg.HTTP.Timeout}
	}
	return t
}

// Request POSTs params to path and decodes the JSON response.
func (t *HTTPTransport) Request(ctx context.Context, path string, params *oauthmodel.Params, opts ...RequestOption) (map[string]any, error) {
	endpoint, err := config.ResolveURL(t.config.Auth.TokenHost, path)
	if err != nil {
		return nil, errors.Wrap(err, "HTTPTransport.Request ResolveURL")
	}

	body, err := buildRequestBody(t.config, params)
	if err != nil {
		return nil, errors.Wrap(err, "HTTPTransport.Request buildRequestBody")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body.reader())
	if err != nil {
		return nil, errors.Wrap(err, "HTTPTransport.Request NewRequest")
	}

	requestID := uuid.New().String()
	req.Header.Set("Accept", contentTypeJSON)
	req.Header.Set(requestIDHeader, requestID)
	for k, v := range t.config.HTTP.Headers {
		req.Header.Set(k, v)
	}
	for k, values := range body.header {
		req.Header[k] = values
	}
	for k, values := range ApplyOptions(opts...).Header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}

	t.logger.Debug().
		Str("method", http.MethodPost).
		Str("url", endpoint).
		Str("request_id", requestID).
		Strs("params", params.Keys()).
		Msg("Creating request")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "HTTPTransport.Request Do")
	}
	defer resp.Body.Close()

	payload, err := decodePayload(resp.Body)

	t.logger.Debug().
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Msg("Received response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newHTTPError(resp.StatusCode, payload)
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func decodePayload(r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read response body")
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, errors.Wrap(ErrInvalidResponse, err.Error())
	}
	if payload == nil {
		return nil, errors.Wrap(ErrInvalidResponse, "null body")
	}
	return payload, nil
}

func newHTTPError(status int, payload map[string]any) *HTTPError {
	e := &HTTPError{StatusCode: status, Payload: payload}
	if code, ok := payload["error"].(string); ok {
		e.Code = code
	}
	if desc, ok := payload["error_description"].(string); ok {
		e.Description = desc
	}
	return e
}
