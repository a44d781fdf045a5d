package config

import (
	"context"
	"net/url"

	"github.com/coreos/go-oidc/v3/oidc"
	errs "github.com/jrsteele09/go-auth-client/internal/errors"
)

// Discover fetches the OpenID Connect discovery document of issuer and returns a copy
// of base with its token, revocation and authorization endpoints filled in.
// Client settings and options on base are kept as they are.
func Discover(ctx context.Context, issuer string, base Config) (Config, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return Config{}, errs.Wrapf(err, "config.Discover %s", issuer)
	}

	var claims struct {
		RevocationEndpoint string `json:"revocation_endpoint"`
	}
	if err := provider.Claims(&claims); err != nil {
		return Config{}, errs.Wrapf(err, "config.Discover claims")
	}

	endpoint := provider.Endpoint()
	if endpoint.TokenURL == "" {
		return Config{}, errs.Wrapf(ErrInvalidConfig, "issuer %s advertises no token_endpoint", issuer)
	}

	c := base
	if c.Auth.TokenHost, c.Auth.TokenPath, err = splitEndpoint(endpoint.TokenURL); err != nil {
		return Config{}, err
	}
	if endpoint.AuthURL != "" {
		if c.Auth.AuthorizeHost, c.Auth.AuthorizePath, err = splitEndpoint(endpoint.AuthURL); err != nil {
			return Config{}, err
		}
	}
	if claims.RevocationEndpoint != "" {
		revokeHost, revokePath, err := splitEndpoint(claims.RevocationEndpoint)
		if err != nil {
			return Config{}, err
		}
		// Revocation requests go through the same transport, which is rooted at the token host.
		if revokeHost == c.Auth.TokenHost {
			c.Auth.RevokePath = revokePath
		} else {
			c.Auth.RevokePath = claims.RevocationEndpoint
		}
	}

	c = c.WithDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func splitEndpoint(endpoint string) (host, path string, err error) {
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", "", errs.Wrapf(ErrInvalidConfig, "endpoint %q must be an absolute URL", endpoint)
	}
	path = u.EscapedPath()
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return u.Scheme + "://" + u.Host, path, nil
}
