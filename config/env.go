package config

import (
	"os"
	"strings"
	"time"

	errs "github.com/jrsteele09/go-auth-client/internal/errors"
)

const (
	clientIDEnvVar            = "OAUTH_CLIENT_ID"
	clientSecretEnvVar        = "OAUTH_CLIENT_SECRET"
	idParamNameEnvVar         = "OAUTH_CLIENT_ID_PARAM"
	secretParamNameEnvVar     = "OAUTH_CLIENT_SECRET_PARAM"
	tokenHostEnvVar           = "OAUTH_TOKEN_HOST"
	tokenPathEnvVar           = "OAUTH_TOKEN_PATH"
	revokePathEnvVar          = "OAUTH_REVOKE_PATH"
	authorizeHostEnvVar       = "OAUTH_AUTHORIZE_HOST"
	authorizePathEnvVar       = "OAUTH_AUTHORIZE_PATH"
	scopeSeparatorEnvVar      = "OAUTH_SCOPE_SEPARATOR"
	authorizationMethodEnvVar = "OAUTH_AUTHORIZATION_METHOD"
	bodyFormatEnvVar          = "OAUTH_BODY_FORMAT"
	encodingModeEnvVar        = "OAUTH_CREDENTIALS_ENCODING"
	httpTimeoutEnvVar         = "OAUTH_HTTP_TIMEOUT"
)

// FromEnv builds a Config from OAUTH_* environment variables, applies defaults and validates it.
func FromEnv() (Config, error) {
	c := Config{
		Client: Client{
			ID:              GetEnv(clientIDEnvVar, ""),
			Secret:          GetEnv(clientSecretEnvVar, ""),
			IDParamName:     GetEnv(idParamNameEnvVar, DefaultIDParamName),
			SecretParamName: GetEnv(secretParamNameEnvVar, DefaultSecretParamName),
		},
		Auth: Auth{
			TokenHost:     GetEnv(tokenHostEnvVar, ""),
			TokenPath:     GetEnv(tokenPathEnvVar, DefaultTokenPath),
			RevokePath:    GetEnv(revokePathEnvVar, DefaultRevokePath),
			AuthorizeHost: GetEnv(authorizeHostEnvVar, ""),
			AuthorizePath: GetEnv(authorizePathEnvVar, DefaultAuthorizePath),
		},
		Options: Options{
			// Not trimmed: the separator may itself be whitespace.
			ScopeSeparator:          os.Getenv(scopeSeparatorEnvVar),
			AuthorizationMethod:     AuthorizationMethod(strings.ToLower(GetEnv(authorizationMethodEnvVar, ""))),
			BodyFormat:              BodyFormat(strings.ToLower(GetEnv(bodyFormatEnvVar, ""))),
			CredentialsEncodingMode: CredentialsEncodingMode(strings.ToLower(GetEnv(encodingModeEnvVar, ""))),
		},
	}

	if timeout := GetEnv(httpTimeoutEnvVar, ""); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return Config{}, errs.Wrapf(ErrInvalidConfig, "%s=%q", httpTimeoutEnvVar, timeout)
		}
		c.HTTP.Timeout = d
	}

	c = c.WithDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// GetEnv returns the trimmed value of envVar, or defaultValue when it is unset or blank.
func GetEnv(envVar, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(envVar))
	if value == "" {
		return defaultValue
	}
	return value
}
