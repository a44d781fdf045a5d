package oauth2

// ResponseType represents the OAuth 2.0 response type requested at the authorization endpoint.
type ResponseType string

const (
	// CodeResponseType requests an authorization code.
	// Example: /oauth/authorize?response_type=code&client_id=...
	CodeResponseType ResponseType = "code"
)

// GrantType represents the OAuth 2.0 grant type sent to the token endpoint.
// Determines what credentials accompany the token request.
type GrantType string

const (
	// AuthorizationCodeGrant exchanges an authorization code for tokens.
	// Token request includes: code, redirect_uri, code_verifier (if PKCE)
	AuthorizationCodeGrant GrantType = "authorization_code"

	// ClientCredentialsGrant allows machine-to-machine authentication.
	// Token request includes: scope (client credentials travel in the header or body)
	ClientCredentialsGrant GrantType = "client_credentials"

	// RefreshTokenGrant exchanges a refresh token for new tokens.
	// Token request includes: refresh_token, optionally a narrowed scope
	RefreshTokenGrant GrantType = "refresh_token"
)

// TokenTypeHint names which of a token's credentials is sent to the revocation endpoint (RFC 7009).
type TokenTypeHint string

const (
	AccessTokenHint  TokenTypeHint = "access_token"
	RefreshTokenHint TokenTypeHint = "refresh_token"
)

// Valid reports whether h is one of the revocable token types.
func (h TokenTypeHint) Valid() bool {
	switch h {
	case AccessTokenHint, RefreshTokenHint:
		return true
	}
	return false
}

// Well known request and response field names.
const (
	ParamGrantType     = "grant_type"
	ParamResponseType  = "response_type"
	ParamScope         = "scope"
	ParamRefreshToken  = "refresh_token"
	ParamToken         = "token"
	ParamTokenTypeHint = "token_type_hint"
	ParamState         = "state"

	FieldAccessToken  = "access_token"
	FieldRefreshToken = "refresh_token"
	FieldTokenType    = "token_type"
	FieldScope        = "scope"
	FieldExpiresIn    = "expires_in"
	FieldExpiresAt    = "expires_at"
	FieldIDToken      = "id_token"
)
