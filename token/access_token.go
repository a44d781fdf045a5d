package token

import (
	"context"
	"encoding/json"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/jrsteele09/go-auth-client/config"
	"github.com/jrsteele09/go-auth-client/oauth2"
	"github.com/jrsteele09/go-auth-client/oauthmodel"
	"github.com/jrsteele09/go-auth-client/transport"
	"github.com/rs/zerolog/log"
	xoauth2 "golang.org/x/oauth2"
)

// AccessToken wraps a parsed token together with the session configuration and
// transport it was issued through. It is never modified: Refresh returns a new
// AccessToken and the receiver keeps its original token.
//
// Revocation happens at the server only. A revoked AccessToken can still be used
// locally and should be discarded by the caller.
type AccessToken struct {
	config    *config.Config
	transport transport.Transport
	record    Record
	nowFunc   func() time.Time
}

// Option configures an AccessToken.
type Option func(*AccessToken)

// WithNowFunc overrides the clock used for expires_in arithmetic and Expired.
// Tokens returned by Refresh keep the same clock.
func WithNowFunc(now func() time.Time) Option {
	return func(t *AccessToken) {
		t.nowFunc = now
	}
}

// NewAccessToken parses raw and binds it to cfg and tr. cfg and tr are shared, not copied.
func NewAccessToken(cfg *config.Config, tr transport.Transport, raw map[string]any, options ...Option) (*AccessToken, error) {
	if cfg == nil {
		return nil, ErrMissingConfig
	}
	if tr == nil {
		return nil, ErrMissingTransport
	}
	if raw == nil {
		return nil, ErrMissingToken
	}

	t := &AccessToken{
		config:    cfg,
		transport: tr,
	}
	for _, opt := range options {
		opt(t)
	}
	if t.nowFunc == nil {
		t.nowFunc = time.Now
	}

	record, err := Parse(raw, t.nowFunc())
	if err != nil {
		return nil, err
	}
	t.record = record
	return t, nil
}

// Expired reports whether the token has expired, or will expire within
// expirationWindowSeconds. A negative window narrows the margin instead.
// A token without a known expiry is reported as expired.
func (t *AccessToken) Expired(expirationWindowSeconds int) bool {
	expiresAt, ok := t.record.ExpiresAt()
	if !ok {
		return true
	}
	deadline := t.nowFunc().Add(time.Duration(expirationWindowSeconds) * time.Second)
	return expiresAt.Sub(deadline) <= 0
}

// Refresh exchanges the refresh token for a new AccessToken. params may add
// request parameters such as a narrowed scope; its refresh_token, if any, is replaced.
func (t *AccessToken) Refresh(ctx context.Context, params *oauthmodel.Params) (*AccessToken, error) {
	refreshToken, _ := t.record.Get(oauth2.FieldRefreshToken)
	refreshParams := params.Clone().Set(oauth2.ParamRefreshToken, refreshToken)

	parameters := oauthmodel.ForGrantType(oauth2.RefreshTokenGrant, t.config.Options, refreshParams)
	response, err := t.transport.Request(ctx, t.config.Auth.TokenPath, parameters.ToParams())
	if err != nil {
		return nil, err
	}

	return NewAccessToken(t.config, t.transport, response, WithNowFunc(t.nowFunc))
}

// Revoke revokes either the access or the refresh token at the revocation endpoint.
// Any tokenType other than access_token or refresh_token fails without a request.
func (t *AccessToken) Revoke(ctx context.Context, tokenType oauth2.TokenTypeHint) error {
	if !tokenType.Valid() {
		return ErrInvalidTokenType
	}

	value, _ := t.record.Get(string(tokenType))
	params := oauthmodel.NewParams().
		Set(oauth2.ParamToken, value).
		Set(oauth2.ParamTokenTypeHint, string(tokenType))

	_, err := t.transport.Request(ctx, t.config.Auth.RevokePath, params)
	return err
}

// RevokeAll revokes the access token and then, only if that succeeded, the refresh token.
// A failure of the first request is returned as is. A failure of the second is returned
// as a *RevokeError; the access token stays revoked.
func (t *AccessToken) RevokeAll(ctx context.Context) error {
	if err := t.Revoke(ctx, oauth2.AccessTokenHint); err != nil {
		return err
	}
	if err := t.Revoke(ctx, oauth2.RefreshTokenHint); err != nil {
		log.Warn().Err(err).Msg("access token revoked but refresh token revocation failed")
		return &RevokeError{
			Revoked: []oauth2.TokenTypeHint{oauth2.AccessTokenHint},
			Failed:  oauth2.RefreshTokenHint,
			Err:     err,
		}
	}
	return nil
}

// Token returns the parsed token.
func (t *AccessToken) Token() Record {
	return t.record
}

// Serialize returns the normalized token fields, e.g. for persistence by the caller.
func (t *AccessToken) Serialize() map[string]any {
	return t.record.Map()
}

// MarshalJSON encodes the normalized token fields.
func (t *AccessToken) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.record)
}

// OAuth2Token converts the token for use with golang.org/x/oauth2 clients.
// All raw fields are available through Extra.
func (t *AccessToken) OAuth2Token() *xoauth2.Token {
	tok := &xoauth2.Token{
		AccessToken:  t.record.AccessToken(),
		TokenType:    t.record.TokenType(),
		RefreshToken: t.record.RefreshToken(),
	}
	if exp, ok := t.record.ExpiresAt(); ok {
		tok.Expiry = exp
	}
	return tok.WithExtra(t.record.Map())
}

// VerifyIDToken verifies the OpenID Connect id_token returned alongside the access token.
func (t *AccessToken) VerifyIDToken(ctx context.Context, verifier *oidc.IDTokenVerifier) (*oidc.IDToken, error) {
	rawIDToken := t.record.IDToken()
	if rawIDToken == "" {
		return nil, ErrNoIDToken
	}
	return verifier.Verify(ctx, rawIDToken)
}
