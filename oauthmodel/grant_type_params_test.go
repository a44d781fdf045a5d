package oauthmodel_test

import (
	"testing"

	"github.com/jrsteele09/go-auth-client/config"
	"github.com/jrsteele09/go-auth-client/oauth2"
	"github.com/jrsteele09/go-auth-client/oauthmodel"
	"github.com/stretchr/testify/require"
)

var spaceSeparated = config.Options{ScopeSeparator: " "}

func TestForGrantType_JoinsScopeList(t *testing.T) {
	params := oauthmodel.NewParams().Set("scope", []string{"a", "b"})

	got := oauthmodel.ForGrantType(oauth2.ClientCredentialsGrant, spaceSeparated, params).ToParams()

	require.Equal(t, map[string]any{
		"grant_type": "client_credentials",
		"scope":      "a b",
	}, got.Map())
	require.Equal(t, []string{"grant_type", "scope"}, got.Keys())
}

func TestForGrantType_Scope(t *testing.T) {
	t.Run("absent scope emits no entry", func(t *testing.T) {
		got := oauthmodel.ForGrantType(oauth2.RefreshTokenGrant, spaceSeparated, oauthmodel.NewParams().Set("refresh_token", "rt")).ToParams()
		require.False(t, got.Has("scope"))
		require.Equal(t, "grant_type=refresh_token&refresh_token=rt", got.Encode())
	})

	t.Run("nil params", func(t *testing.T) {
		got := oauthmodel.ForGrantType(oauth2.ClientCredentialsGrant, spaceSeparated, nil).ToParams()
		require.Equal(t, "grant_type=client_credentials", got.Encode())
	})

	t.Run("string passes through", func(t *testing.T) {
		got := oauthmodel.ForGrantType(oauth2.ClientCredentialsGrant, spaceSeparated, oauthmodel.NewParams().Set("scope", "x,y")).ToParams()
		v, _ := got.Get("scope")
		require.Equal(t, "x,y", v)
	})

	t.Run("non string value passes through", func(t *testing.T) {
		got := oauthmodel.ForGrantType(oauth2.ClientCredentialsGrant, spaceSeparated, oauthmodel.NewParams().Set("scope", 7)).ToParams()
		v, _ := got.Get("scope")
		require.Equal(t, 7, v)
	})

	t.Run("nil value passes through", func(t *testing.T) {
		got := oauthmodel.ForGrantType(oauth2.ClientCredentialsGrant, spaceSeparated, oauthmodel.NewParams().Set("scope", nil)).ToParams()
		v, ok := got.Get("scope")
		require.True(t, ok)
		require.Nil(t, v)
	})

	t.Run("custom separator and []any", func(t *testing.T) {
		opts := config.Options{ScopeSeparator: ","}
		got := oauthmodel.ForGrantType(oauth2.ClientCredentialsGrant, opts, oauthmodel.NewParams().Set("scope", []any{"read", "write"})).ToParams()
		v, _ := got.Get("scope")
		require.Equal(t, "read,write", v)
	})
}

func TestNewGrantTypeParams_MergePrecedence(t *testing.T) {
	base := oauthmodel.NewParams().Set("grant_type", "x")

	t.Run("params override base", func(t *testing.T) {
		params := oauthmodel.NewParams().Set("grant_type", "y").Set("foo", 1)
		got := oauthmodel.NewGrantTypeParams(spaceSeparated, base, params).ToParams()
		require.Equal(t, map[string]any{"grant_type": "y", "foo": 1}, got.Map())
		require.Equal(t, []string{"grant_type", "foo"}, got.Keys())
	})

	t.Run("computed scope overrides params", func(t *testing.T) {
		params := oauthmodel.NewParams().Set("scope", []string{"s1", "s2"}).Set("foo", 1)
		got := oauthmodel.NewGrantTypeParams(spaceSeparated, base, params).ToParams()
		v, _ := got.Get("scope")
		require.Equal(t, "s1 s2", v)
		require.Equal(t, []string{"grant_type", "scope", "foo"}, got.Keys())
	})

	t.Run("base scope is replaced by params scope", func(t *testing.T) {
		baseWithScope := oauthmodel.NewParams().Set("scope", "base")
		params := oauthmodel.NewParams().Set("scope", []string{"a"})
		got := oauthmodel.NewGrantTypeParams(spaceSeparated, baseWithScope, params).ToParams()
		v, _ := got.Get("scope")
		require.Equal(t, "a", v)
	})
}

func TestNewGrantTypeParams_DefensiveCopies(t *testing.T) {
	base := oauthmodel.NewParams().Set("grant_type", "client_credentials")
	scopes := []string{"a", "b"}
	params := oauthmodel.NewParams().Set("scope", scopes)

	builder := oauthmodel.NewGrantTypeParams(spaceSeparated, base, params)

	base.Set("grant_type", "changed")
	params.Set("injected", "yes")
	scopes[0] = "z"

	got := builder.ToParams()
	require.Equal(t, map[string]any{"grant_type": "client_credentials", "scope": "a b"}, got.Map())

	// ToParams does not consume the builder
	require.Equal(t, got.Map(), builder.ToParams().Map())
}
