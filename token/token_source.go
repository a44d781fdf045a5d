package token

import (
	"context"
	"net/http"
	"sync"

	xoauth2 "golang.org/x/oauth2"
)

// TokenSource is an oauth2.TokenSource that refreshes its AccessToken once it is
// within the expiry window. It is safe for concurrent use.
type TokenSource struct {
	ctx                     context.Context
	current                 *AccessToken
	expirationWindowSeconds int
	mu                      sync.Mutex
}

var _ xoauth2.TokenSource = (*TokenSource)(nil)

// NewTokenSource returns a TokenSource starting from tok. ctx is used for refresh requests.
func NewTokenSource(ctx context.Context, tok *AccessToken, expirationWindowSeconds int) *TokenSource {
	if ctx == nil {
		ctx = context.Background()
	}
	return &TokenSource{
		ctx:                     ctx,
		current:                 tok,
		expirationWindowSeconds: expirationWindowSeconds,
	}
}

// Token returns the current token, refreshing it first if it has expired.
func (s *TokenSource) Token() (*xoauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current.Expired(s.expirationWindowSeconds) {
		if s.current.Token().RefreshToken() == "" {
			return nil, ErrNoRefreshToken
		}
		refreshed, err := s.current.Refresh(s.ctx, nil)
		if err != nil {
			return nil, err
		}
		s.current = refreshed
	}
	return s.current.OAuth2Token(), nil
}

// Current returns the most recently issued AccessToken.
func (s *TokenSource) Current() *AccessToken {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// NewHTTPClient returns an http.Client that authorizes every request with a token from src.
func NewHTTPClient(ctx context.Context, src xoauth2.TokenSource) *http.Client {
	return xoauth2.NewClient(ctx, src)
}
