// Package grants implements the authorization-code and client-credentials flows.
package grants

import (
	"context"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-auth-client/config"
	"github.com/jrsteele09/go-auth-client/oauth2"
	"github.com/jrsteele09/go-auth-client/oauthmodel"
	"github.com/jrsteele09/go-auth-client/token"
	"github.com/jrsteele09/go-auth-client/transport"
)

// AuthorizationCode implements the authorization code grant.
type AuthorizationCode struct {
	config       *config.Config
	transport    transport.Transport
	tokenOptions []token.Option
}

// NewAuthorizationCode binds the flow to a shared config and transport.
// tokenOptions are applied to every AccessToken the flow creates.
func NewAuthorizationCode(cfg *config.Config, tr transport.Transport, tokenOptions ...token.Option) *AuthorizationCode {
	return &AuthorizationCode{
		config:       cfg,
		transport:    tr,
		tokenOptions: tokenOptions,
	}
}

// AuthorizeURL returns the absolute URL to redirect the user to for authorization.
// Typical params are redirect_uri, scope (string or []string) and state.
// The query starts with response_type and the client id, followed by params in order.
func (f *AuthorizationCode) AuthorizeURL(params *oauthmodel.Params) (string, error) {
	baseParams := oauthmodel.NewParams().
		Set(oauth2.ParamResponseType, string(oauth2.CodeResponseType)).
		Set(f.idParamName(), f.config.Client.ID)

	authorizeURL, err := f.config.AuthorizeURL()
	if err != nil {
		return "", err
	}

	parameters := oauthmodel.NewGrantTypeParams(f.config.Options, baseParams, params)
	return authorizeURL + "?" + parameters.ToParams().Encode(), nil
}

// GetToken exchanges an authorization code (params: code, redirect_uri, optional scope)
// for an AccessToken.
func (f *AuthorizationCode) GetToken(ctx context.Context, params *oauthmodel.Params, opts ...transport.RequestOption) (*token.AccessToken, error) {
	parameters := oauthmodel.ForGrantType(oauth2.AuthorizationCodeGrant, f.config.Options, params)
	response, err := f.transport.Request(ctx, f.config.Auth.TokenPath, parameters.ToParams(), opts...)
	if err != nil {
		return nil, err
	}

	return f.CreateToken(response)
}

// CreateToken wraps a raw token payload, e.g. one previously returned by Serialize.
func (f *AuthorizationCode) CreateToken(raw map[string]any) (*token.AccessToken, error) {
	return token.NewAccessToken(f.config, f.transport, raw, f.tokenOptions...)
}

func (f *AuthorizationCode) idParamName() string {
	if f.config.Client.IDParamName == "" {
		return config.DefaultIDParamName
	}
	return f.config.Client.IDParamName
}

// NewState returns a random value for the state parameter of an authorization request.
func NewState() string {
	return uuid.NewString()
}
