package token

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	errs "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/oauth2"
)

// Record is the normalized form of a token endpoint response.
// All raw fields are preserved; expires_at always holds an absolute time.Time when the
// expiry is known. A Record is immutable: it deep copies its input and every accessor
// returns a copy.
type Record struct {
	fields    map[string]any
	expiresAt time.Time
}

// Parse normalizes a raw token payload. expires_at is taken from the payload when present
// (time.Time, unix seconds or an RFC 3339 string), otherwise derived from expires_in
// relative to now. A payload with neither has no expiry.
func Parse(raw map[string]any, now time.Time) (Record, error) {
	if raw == nil {
		return Record{}, ErrMissingToken
	}

	fields := copyMap(raw)
	var expiresAt time.Time

	if v, ok := raw[oauth2.FieldExpiresAt]; ok {
		t, err := parseExpirationDate(v)
		if err != nil {
			return Record{}, err
		}
		expiresAt = t
		fields[oauth2.FieldExpiresAt] = t
	} else if v, ok := raw[oauth2.FieldExpiresIn]; ok {
		seconds, err := parseExpiresIn(v)
		if err != nil {
			return Record{}, err
		}
		expiresAt = now.Add(time.Duration(seconds) * time.Second)
		fields[oauth2.FieldExpiresAt] = expiresAt
	}

	return Record{fields: fields, expiresAt: expiresAt}, nil
}

// AccessToken returns the access_token field.
func (r Record) AccessToken() string { return r.stringField(oauth2.FieldAccessToken) }

// RefreshToken returns the refresh_token field, or "" if the server issued none.
func (r Record) RefreshToken() string { return r.stringField(oauth2.FieldRefreshToken) }

// TokenType returns the token_type field.
func (r Record) TokenType() string { return r.stringField(oauth2.FieldTokenType) }

// Scope returns the granted scope.
func (r Record) Scope() string { return r.stringField(oauth2.FieldScope) }

// IDToken returns the OpenID Connect id_token field.
func (r Record) IDToken() string { return r.stringField(oauth2.FieldIDToken) }

// ExpiresAt returns the absolute expiry and whether one is known.
func (r Record) ExpiresAt() (time.Time, bool) {
	return r.expiresAt, !r.expiresAt.IsZero()
}

// Get returns a copy of the named field.
func (r Record) Get(key string) (any, bool) {
	v, ok := r.fields[key]
	if !ok {
		return nil, false
	}
	return copyValue(v), true
}

// Map returns a copy of all fields.
func (r Record) Map() map[string]any {
	return copyMap(r.fields)
}

// MarshalJSON encodes the fields as a JSON object with expires_at in RFC 3339 form.
func (r Record) MarshalJSON() ([]byte, error) {
	if r.fields == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(r.fields)
}

// Claims decodes the access token as a JWT without verifying its signature.
// Opaque access tokens return an error.
func (r Record) Claims() (jwt.MapClaims, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(r.AccessToken(), jwt.MapClaims{})
	if err != nil {
		return nil, errs.Wrapf(ErrInvalidToken, "access token is not a JWT: %v", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errs.Wrapf(ErrInvalidToken, "error extracting claims")
	}
	return claims, nil
}

// TokenResponse returns the standard fields, with ExpiresIn counted from now.
func (r Record) TokenResponse(now time.Time) oauth2.TokenResponse {
	resp := oauth2.TokenResponse{
		AccessToken:  r.AccessToken(),
		IDToken:      r.IDToken(),
		TokenType:    r.TokenType(),
		RefreshToken: r.RefreshToken(),
		Scope:        r.Scope(),
	}
	if exp, ok := r.ExpiresAt(); ok && exp.After(now) {
		resp.ExpiresIn = int(exp.Sub(now).Seconds())
	}
	return resp
}

func (r Record) stringField(key string) string {
	switch v := r.fields[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func parseExpirationDate(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case *time.Time:
		if t != nil {
			return *t, nil
		}
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(t)); err == nil {
			return parsed, nil
		}
	default:
		if seconds, ok := toFloat(v); ok {
			return time.UnixMilli(int64(math.Round(seconds * 1000))), nil
		}
	}
	return time.Time{}, errs.Wrapf(ErrInvalidExpiry, "expires_at %v", v)
}

// parseExpiresIn reads the integer part of expires_in. Numeric strings are accepted.
func parseExpiresIn(v any) (int64, error) {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int64(f), nil
		}
		return 0, errs.Wrapf(ErrInvalidExpiry, "expires_in %q", s)
	}
	if f, ok := toFloat(v); ok {
		return int64(f), nil
	}
	return 0, errs.Wrapf(ErrInvalidExpiry, "expires_in %v", v)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

func copyMap(m map[string]any) map[string]any {
	c := make(map[string]any, len(m))
	for k, v := range m {
		c[k] = copyValue(v)
	}
	return c
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return copyMap(t)
	case []any:
		c := make([]any, len(t))
		for i, e := range t {
			c[i] = copyValue(e)
		}
		return c
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}
