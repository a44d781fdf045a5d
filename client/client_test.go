package client_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/jrsteele09/go-auth-client/client"
	"github.com/jrsteele09/go-auth-client/config"
	"github.com/jrsteele09/go-auth-client/oauthmodel"
	"github.com/jrsteele09/go-auth-client/transport/transportfake"
	"github.com/stretchr/testify/require"
)

func validConfig(host string) config.Config {
	return config.Config{
		Client: config.Client{ID: "the-id", Secret: "the-secret"},
		Auth:   config.Auth{TokenHost: host},
	}
}

func TestNew_Validates(t *testing.T) {
	_, err := client.New(config.Config{Auth: config.Auth{TokenHost: "https://auth.example.com"}})
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = client.New(validConfig("not a url"))
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestNew_AppliesDefaults(t *testing.T) {
	c, err := client.New(validConfig("https://auth.example.com"))
	require.NoError(t, err)

	cfg := c.Config()
	require.Equal(t, "/oauth/token", cfg.Auth.TokenPath)
	require.Equal(t, "/oauth/revoke", cfg.Auth.RevokePath)
	require.Equal(t, "https://auth.example.com", cfg.Auth.AuthorizeHost)
	require.Equal(t, " ", cfg.Options.ScopeSeparator)
	require.Equal(t, config.AuthorizationMethodHeader, cfg.Options.AuthorizationMethod)

	// the returned config is a copy
	cfg.Auth.TokenPath = "/changed"
	require.Equal(t, "/oauth/token", c.Config().Auth.TokenPath)
}

func TestNew_FlowsShareTransport(t *testing.T) {
	tr := transportfake.NewFakeTransport(
		transportfake.Response{Payload: map[string]any{"access_token": "cc"}},
		transportfake.Response{Payload: map[string]any{"access_token": "ac"}},
	)
	c, err := client.New(validConfig("https://auth.example.com"), client.WithTransport(tr))
	require.NoError(t, err)

	_, err = c.ClientCredentials().GetToken(context.Background(), nil)
	require.NoError(t, err)
	_, err = c.AuthorizationCode().GetToken(context.Background(), oauthmodel.NewParams().Set("code", "x"))
	require.NoError(t, err)

	calls := tr.Calls()
	require.Len(t, calls, 2)
	require.Equal(t, "grant_type=client_credentials", calls[0].Params.Encode())
	require.Equal(t, "grant_type=authorization_code&code=x", calls[1].Params.Encode())
}

func TestClient_EndToEnd(t *testing.T) {
	var (
		mu       sync.Mutex
		received []url.Values
		paths    []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		values, _ := url.ParseQuery(string(body))

		mu.Lock()
		received = append(received, values)
		paths = append(paths, r.URL.Path)
		n := len(received)
		mu.Unlock()

		if r.URL.Path == "/oauth/revoke" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "at-" + string(rune('0'+n)),
			"refresh_token": "rt-" + string(rune('0'+n)),
			"token_type":    "bearer",
			"expires_in":    3600,
		})
	}))
	defer srv.Close()

	cfg := validConfig(srv.URL)
	cfg.Options.AuthorizationMethod = config.AuthorizationMethodBody
	c, err := client.New(cfg)
	require.NoError(t, err)

	ctx := context.Background()
	tok, err := c.ClientCredentials().GetToken(ctx, oauthmodel.NewParams().Set("scope", []string{"a", "b"}))
	require.NoError(t, err)
	require.Equal(t, "at-1", tok.Token().AccessToken())
	require.False(t, tok.Expired(60))

	refreshed, err := tok.Refresh(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, "at-2", refreshed.Token().AccessToken())

	require.NoError(t, refreshed.RevokeAll(ctx))

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"/oauth/token", "/oauth/token", "/oauth/revoke", "/oauth/revoke"}, paths)

	require.Equal(t, "client_credentials", received[0].Get("grant_type"))
	require.Equal(t, "a b", received[0].Get("scope"))
	require.Equal(t, "the-id", received[0].Get("client_id"))
	require.Equal(t, "the-secret", received[0].Get("client_secret"))

	require.Equal(t, "refresh_token", received[1].Get("grant_type"))
	require.Equal(t, "rt-1", received[1].Get("refresh_token"))

	require.Equal(t, "at-2", received[2].Get("token"))
	require.Equal(t, "access_token", received[2].Get("token_type_hint"))
	require.Equal(t, "rt-2", received[3].Get("token"))
	require.Equal(t, "refresh_token", received[3].Get("token_type_hint"))
}
