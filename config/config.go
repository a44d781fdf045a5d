// Package config holds the OAuth2 client session configuration shared by every
// flow and token created from it.
package config

import (
	"net/url"
	"strings"
	"time"

	errs "github.com/jrsteele09/go-auth-client/internal/errors"
)

// ErrInvalidConfig is returned by Validate and the loaders when the configuration cannot be used.
var ErrInvalidConfig = errs.ErrInvalidConfig

// AuthorizationMethod selects how client credentials are sent to the token endpoint.
type AuthorizationMethod string

const (
	// AuthorizationMethodHeader sends credentials as HTTP Basic authentication.
	AuthorizationMethodHeader AuthorizationMethod = "header"
	// AuthorizationMethodBody sends credentials as request body parameters.
	AuthorizationMethodBody AuthorizationMethod = "body"
)

// BodyFormat selects the encoding of the token request body.
type BodyFormat string

const (
	BodyFormatForm BodyFormat = "form"
	BodyFormatJSON BodyFormat = "json"
)

// CredentialsEncodingMode controls escaping of the Basic authorization credentials.
type CredentialsEncodingMode string

const (
	// CredentialsEncodingStrict form-urlencodes the id and secret before base64 (RFC 6749 section 2.3.1).
	CredentialsEncodingStrict CredentialsEncodingMode = "strict"
	// CredentialsEncodingLoose base64 encodes the raw id and secret.
	CredentialsEncodingLoose CredentialsEncodingMode = "loose"
)

const (
	DefaultIDParamName     = "client_id"
	DefaultSecretParamName = "client_secret"
	DefaultTokenPath       = "/oauth/token"
	DefaultRevokePath      = "/oauth/revoke"
	DefaultAuthorizePath   = "/oauth/authorize"
	DefaultScopeSeparator  = " "
)

// Config is created once per client session and is never mutated by flows or tokens.
type Config struct {
	Client  Client  `yaml:"client"`
	Auth    Auth    `yaml:"auth"`
	Options Options `yaml:"options"`
	HTTP    HTTP    `yaml:"http"`
}

// Client identifies the application to the authorization server.
type Client struct {
	ID              string `yaml:"id"`
	Secret          string `yaml:"secret"`
	IDParamName     string `yaml:"idParamName"`
	SecretParamName string `yaml:"secretParamName"`
}

// Auth holds the authorization server endpoints.
type Auth struct {
	TokenHost     string `yaml:"tokenHost"`
	TokenPath     string `yaml:"tokenPath"`
	RevokePath    string `yaml:"revokePath"`
	AuthorizeHost string `yaml:"authorizeHost"`
	AuthorizePath string `yaml:"authorizePath"`
}

// Options tunes parameter construction and the request encoding.
type Options struct {
	ScopeSeparator          string                  `yaml:"scopeSeparator"`
	AuthorizationMethod     AuthorizationMethod     `yaml:"authorizationMethod"`
	BodyFormat              BodyFormat              `yaml:"bodyFormat"`
	CredentialsEncodingMode CredentialsEncodingMode `yaml:"credentialsEncodingMode"`
}

// HTTP holds settings for the default HTTP transport.
type HTTP struct {
	Timeout time.Duration     `yaml:"timeout"`
	Headers map[string]string `yaml:"headers"`
}

// WithDefaults returns a copy of c with every unset field given its default value.
func (c Config) WithDefaults() Config {
	c.Client.IDParamName = orDefault(c.Client.IDParamName, DefaultIDParamName)
	c.Client.SecretParamName = orDefault(c.Client.SecretParamName, DefaultSecretParamName)
	c.Auth.TokenPath = orDefault(c.Auth.TokenPath, DefaultTokenPath)
	c.Auth.RevokePath = orDefault(c.Auth.RevokePath, DefaultRevokePath)
	c.Auth.AuthorizeHost = orDefault(c.Auth.AuthorizeHost, c.Auth.TokenHost)
	c.Auth.AuthorizePath = orDefault(c.Auth.AuthorizePath, DefaultAuthorizePath)
	if c.Options.ScopeSeparator == "" {
		c.Options.ScopeSeparator = DefaultScopeSeparator
	}
	if c.Options.AuthorizationMethod == "" {
		c.Options.AuthorizationMethod = AuthorizationMethodHeader
	}
	if c.Options.BodyFormat == "" {
		c.Options.BodyFormat = BodyFormatForm
	}
	if c.Options.CredentialsEncodingMode == "" {
		c.Options.CredentialsEncodingMode = CredentialsEncodingStrict
	}
	if len(c.HTTP.Headers) > 0 {
		headers := make(map[string]string, len(c.HTTP.Headers))
		for k, v := range c.HTTP.Headers {
			headers[k] = v
		}
		c.HTTP.Headers = headers
	}
	return c
}

// Validate checks the fields a client session cannot work without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Client.ID) == "" {
		return errs.Wrapf(ErrInvalidConfig, "client.id is required")
	}
	if err := validateHost("auth.tokenHost", c.Auth.TokenHost); err != nil {
		return err
	}
	if c.Auth.AuthorizeHost != "" {
		if err := validateHost("auth.authorizeHost", c.Auth.AuthorizeHost); err != nil {
			return err
		}
	}

	switch c.Options.AuthorizationMethod {
	case "", AuthorizationMethodHeader, AuthorizationMethodBody:
	default:
		return errs.Wrapf(ErrInvalidConfig, "options.authorizationMethod %q must be 'header' or 'body'", c.Options.AuthorizationMethod)
	}

	switch c.Options.BodyFormat {
	case "", BodyFormatForm, BodyFormatJSON:
	default:
		return errs.Wrapf(ErrInvalidConfig, "options.bodyFormat %q must be 'form' or 'json'", c.Options.BodyFormat)
	}

	switch c.Options.CredentialsEncodingMode {
	case "", CredentialsEncodingStrict, CredentialsEncodingLoose:
	default:
		return errs.Wrapf(ErrInvalidConfig, "options.credentialsEncodingMode %q must be 'strict' or 'loose'", c.Options.CredentialsEncodingMode)
	}

	if c.HTTP.Timeout < 0 {
		return errs.Wrapf(ErrInvalidConfig, "http.timeout must not be negative")
	}
	return nil
}

// TokenURL resolves Auth.TokenPath against Auth.TokenHost.
func (c Config) TokenURL() (string, error) {
	return ResolveURL(c.Auth.TokenHost, c.Auth.TokenPath)
}

// AuthorizeURL resolves Auth.AuthorizePath against Auth.AuthorizeHost.
func (c Config) AuthorizeURL() (string, error) {
	return ResolveURL(c.Auth.AuthorizeHost, c.Auth.AuthorizePath)
}

// ResolveURL resolves ref against base the way a browser resolves a link:
// an absolute path replaces the base path, a relative one is joined to it.
func ResolveURL(base, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", errs.Wrapf(ErrInvalidConfig, "parse %q", base)
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", errs.Wrapf(ErrInvalidConfig, "parse %q", ref)
	}
	return b.ResolveReference(r).String(), nil
}

func validateHost(name, host string) error {
	if strings.TrimSpace(host) == "" {
		return errs.Wrapf(ErrInvalidConfig, "%s is required", name)
	}
	u, err := url.Parse(host)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errs.Wrapf(ErrInvalidConfig, "%s %q must be an absolute URL", name, host)
	}
	return nil
}

func orDefault(value, defaultValue string) string {
	if strings.TrimSpace(value) == "" {
		return defaultValue
	}
	return value
}
