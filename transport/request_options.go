package transport

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/jrsteele09/go-auth-client/config"
	"github.com/jrsteele09/go-auth-client/oauthmodel"
)

const (
	contentTypeForm = "application/x-www-form-urlencoded"
	contentTypeJSON = "application/json"
)

// requestBody holds the encoded body and the headers describing how it was built.
type requestBody struct {
	header http.Header
	body   []byte
}

func (b requestBody) reader() io.Reader {
	return bytes.NewReader(b.body)
}

// buildRequestBody applies the configured client authentication and body format to params.
// params is not modified.
func buildRequestBody(cfg *config.Config, params *oauthmodel.Params) (requestBody, error) {
	payload := params.Clone()
	header := http.Header{}

	switch cfg.Options.AuthorizationMethod {
	case config.AuthorizationMethodBody:
		payload.Set(idParamName(cfg), cfg.Client.ID)
		payload.Set(secretParamName(cfg), cfg.Client.Secret)
	default:
		header.Set("Authorization", "Basic "+basicCredentials(cfg.Options.CredentialsEncodingMode, cfg.Client.ID, cfg.Client.Secret))
	}

	switch cfg.Options.BodyFormat {
	case config.BodyFormatJSON:
		body, err := json.Marshal(payload)
		if err != nil {
			return requestBody{}, err
		}
		header.Set("Content-Type", contentTypeJSON)
		return requestBody{header: header, body: body}, nil
	case config.BodyFormatForm, "":
		header.Set("Content-Type", contentTypeForm)
		return requestBody{header: header, body: []byte(payload.Encode())}, nil
	}
	return requestBody{}, ErrUnsupportedBodyFormat
}

// basicCredentials returns the base64 token for an HTTP Basic Authorization header.
// In strict mode the id and secret are form-urlencoded first (RFC 6749 section 2.3.1).
func basicCredentials(mode config.CredentialsEncodingMode, id, secret string) string {
	if mode != config.CredentialsEncodingLoose {
		id = url.QueryEscape(id)
		secret = url.QueryEscape(secret)
	}
	return base64.StdEncoding.EncodeToString([]byte(id + ":" + secret))
}

func idParamName(cfg *config.Config) string {
	if cfg.Client.IDParamName == "" {
		return config.DefaultIDParamName
	}
	return cfg.Client.IDParamName
}

func secretParamName(cfg *config.Config) string {
	if cfg.Client.SecretParamName == "" {
		return config.DefaultSecretParamName
	}
	return cfg.Client.SecretParamName
}
