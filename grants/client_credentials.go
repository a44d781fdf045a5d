package grants

import (
	"context"

	"github.com/jrsteele09/go-auth-client/config"
	"github.com/jrsteele09/go-auth-client/oauth2"
	"github.com/jrsteele09/go-auth-client/oauthmodel"
	"github.com/jrsteele09/go-auth-client/token"
	"github.com/jrsteele09/go-auth-client/transport"
)

// ClientCredentials implements the client credentials grant.
type ClientCredentials struct {
	config       *config.Config
	transport    transport.Transport
	tokenOptions []token.Option
}

func NewClientCredentials(cfg *config.Config, tr transport.Transport, tokenOptions ...token.Option) *ClientCredentials {
	return &ClientCredentials{
		config:       cfg,
		transport:    tr,
		tokenOptions: tokenOptions,
	}
}

// GetToken requests an AccessToken for the client itself. params usually only carries scope.
func (f *ClientCredentials) GetToken(ctx context.Context, params *oauthmodel.Params, opts ...transport.RequestOption) (*token.AccessToken, error) {
	parameters := oauthmodel.ForGrantType(oauth2.ClientCredentialsGrant, f.config.Options, params)
	response, err := f.transport.Request(ctx, f.config.Auth.TokenPath, parameters.ToParams(), opts...)
	if err != nil {
		return nil, err
	}

	return f.CreateToken(response)
}

// CreateToken wraps a raw token payload.
func (f *ClientCredentials) CreateToken(raw map[string]any) (*token.AccessToken, error) {
	return token.NewAccessToken(f.config, f.transport, raw, f.tokenOptions...)
}
