package oauth2

// TokenResponse is the typed view of a token endpoint response (RFC 6749 section 5.1).
// Fields the server did not send are left empty.
type TokenResponse struct {
	// AccessToken is the credential used to access protected resources.
	// Usage: Include in Authorization header: "Bearer <access_token>"
	AccessToken string `json:"access_token,omitempty" yaml:"access_token,omitempty"`

	// IDToken is the OpenID Connect ID token. Only present when "openid" was requested.
	IDToken string `json:"id_token,omitempty" yaml:"id_token,omitempty"`

	// TokenType indicates how to use the access token, typically "bearer".
	TokenType string `json:"token_type,omitempty" yaml:"token_type,omitempty"`

	// ExpiresIn is the remaining lifetime in seconds, computed from the parsed expiry.
	ExpiresIn int `json:"expires_in,omitempty" yaml:"expires_in,omitempty"`

	// RefreshToken is used to obtain new access tokens without re-authenticating.
	RefreshToken string `json:"refresh_token,omitempty" yaml:"refresh_token,omitempty"`

	// Scope is the granted scope. May be narrower than what was requested.
	Scope string `json:"scope,omitempty" yaml:"scope,omitempty"`
}
