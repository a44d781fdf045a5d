package token_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jrsteele09/go-auth-client/token"
	"github.com/jrsteele09/go-auth-client/transport/transportfake"
	"github.com/stretchr/testify/require"
)

func TestTokenSource_ReturnsCurrentTokenUntilExpired(t *testing.T) {
	f := setupTestFixture(t, transportfake.Response{Payload: map[string]any{
		"access_token":  "access-token-2",
		"refresh_token": "refresh-token-2",
		"expires_in":    3600,
	}})
	src := token.NewTokenSource(context.Background(), f.newToken(t, defaultRawToken()), 30)

	tok, err := src.Token()
	require.NoError(t, err)
	require.Equal(t, testAccessToken, tok.AccessToken)
	require.Empty(t, f.transport.Calls())

	// inside the expiry window
	f.now = f.now.Add(time.Hour - 10*time.Second)
	tok, err = src.Token()
	require.NoError(t, err)
	require.Equal(t, "access-token-2", tok.AccessToken)
	require.Equal(t, "access-token-2", src.Current().Token().AccessToken())

	calls := f.transport.Calls()
	require.Len(t, calls, 1)
	require.Equal(t, "grant_type=refresh_token&refresh_token=refresh-token-1", calls[0].Params.Encode())

	tok, err = src.Token()
	require.NoError(t, err)
	require.Equal(t, "access-token-2", tok.AccessToken)
	require.Len(t, f.transport.Calls(), 1)
}

func TestTokenSource_NoRefreshToken(t *testing.T) {
	f := setupTestFixture(t)
	raw := defaultRawToken()
	delete(raw, "refresh_token")
	raw["expires_in"] = 0
	src := token.NewTokenSource(context.Background(), f.newToken(t, raw), 0)

	_, err := src.Token()
	require.ErrorIs(t, err, token.ErrNoRefreshToken)
	require.Empty(t, f.transport.Calls())
}

func TestNewHTTPClient(t *testing.T) {
	var authorization string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authorization = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	f := setupTestFixture(t)
	tok, err := token.NewAccessToken(f.config, f.transport, map[string]any{
		"access_token": testAccessToken,
		"token_type":   "Bearer",
		"expires_in":   3600,
	})
	require.NoError(t, err)

	client := token.NewHTTPClient(context.Background(), token.NewTokenSource(context.Background(), tok, 60))
	resp, err := client.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Equal(t, "Bearer "+testAccessToken, authorization)
	require.Empty(t, f.transport.Calls())
}
