package token

import (
	"errors"
	"fmt"

	errs "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/oauth2"
)

var (
	ErrMissingConfig    = errors.New("cannot create access token without client configuration")
	ErrMissingTransport = errors.New("cannot create access token without a transport")
	ErrMissingToken     = errors.New("cannot create access token without a token to parse")
	ErrInvalidTokenType = fmt.Errorf("invalid token type, only %s or %s are valid values", oauth2.AccessTokenHint, oauth2.RefreshTokenHint)
	ErrInvalidExpiry    = errors.New("invalid token expiry")
	ErrNoRefreshToken   = errors.New("token expired and has no refresh token")
	ErrNoIDToken        = errs.ErrNoIDToken
	ErrInvalidToken     = errs.ErrInvalidToken
)

// RevokeError reports a RevokeAll that revoked some credentials but not all of them.
// Nothing is rolled back: the credentials listed in Revoked are no longer valid.
type RevokeError struct {
	Revoked []oauth2.TokenTypeHint
	Failed  oauth2.TokenTypeHint
	Err     error
}

func (e *RevokeError) Error() string {
	return fmt.Sprintf("revoked %v but failed to revoke %s: %v", e.Revoked, e.Failed, e.Err)
}

func (e *RevokeError) Unwrap() error {
	return e.Err
}
