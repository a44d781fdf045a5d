package oauthmodel

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/jrsteele09/go-auth-client/internal/utils"
)

// Params is an ordered, flat set of request parameters.
// Keys keep the position of their first Set; setting an existing key replaces the value in place.
// The zero value is ready to use. A nil *Params behaves as an empty set for reads.
type Params struct {
	keys   []string
	values map[string]any
}

// NewParams returns an empty parameter set.
func NewParams() *Params {
	return &Params{values: make(map[string]any)}
}

// ParamsFromMap copies m into a new parameter set. Map iteration order is random, so keys are added sorted.
func ParamsFromMap(m map[string]any) *Params {
	p := NewParams()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		p.Set(k, m[k])
	}
	return p
}

// Set stores value under key and returns p for chaining.
func (p *Params) Set(key string, value any) *Params {
	if p.values == nil {
		p.values = make(map[string]any)
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
	return p
}

// Get returns the value stored under key and whether the key is present.
// A present key may hold a nil value.
func (p *Params) Get(key string) (any, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p.values[key]
	return v, ok
}

// Has reports whether key is present.
func (p *Params) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Keys returns the keys in insertion order.
func (p *Params) Keys() []string {
	if p == nil {
		return nil
	}
	return append([]string(nil), p.keys...)
}

// Len returns the number of keys.
func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Clone returns an independent copy of p. Cloning nil yields an empty set.
// Values are copied shallowly except string slices, which are duplicated.
func (p *Params) Clone() *Params {
	c := NewParams()
	if p == nil {
		return c
	}
	for _, k := range p.keys {
		c.Set(k, cloneValue(p.values[k]))
	}
	return c
}

// Merge overwrites p field by field with every entry of other, in other's order, and returns p.
func (p *Params) Merge(other *Params) *Params {
	if other == nil {
		return p
	}
	for _, k := range other.keys {
		p.Set(k, other.values[k])
	}
	return p
}

// Map returns the parameters as a plain map.
func (p *Params) Map() map[string]any {
	m := make(map[string]any, p.Len())
	if p == nil {
		return m
	}
	for _, k := range p.keys {
		m[k] = cloneValue(p.values[k])
	}
	return m
}

// Values renders the parameters as url.Values.
// Slices produce one value per element; nil produces an empty value.
func (p *Params) Values() url.Values {
	v := url.Values{}
	if p == nil {
		return v
	}
	for _, k := range p.keys {
		v[k] = append(v[k], stringValues(p.values[k])...)
	}
	return v
}

// Encode renders the parameters as a query string in insertion order.
// Spaces are escaped as %20 rather than '+'.
func (p *Params) Encode() string {
	if p == nil {
		return ""
	}
	var b strings.Builder
	for _, k := range p.keys {
		for _, s := range stringValues(p.values[k]) {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(escape(k))
			b.WriteByte('=')
			b.WriteString(escape(s))
		}
	}
	return b.String()
}

// String implements fmt.Stringer.
func (p *Params) String() string {
	return p.Encode()
}

// MarshalJSON encodes the parameters as a JSON object, keeping insertion order.
func (p *Params) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range p.Keys() {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(p.values[k])
		if err != nil {
			return nil, fmt.Errorf("marshal param %q: %w", k, err)
		}
		b.Write(key)
		b.WriteByte(':')
		b.Write(value)
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}

func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func stringValues(v any) []string {
	switch t := v.(type) {
	case nil:
		return []string{""}
	case string:
		return []string{t}
	case []string:
		if len(t) == 0 {
			return []string{""}
		}
		return t
	case []any:
		if len(t) == 0 {
			return []string{""}
		}
		return utils.ToStringSlice(t)
	case fmt.Stringer:
		return []string{t.String()}
	default:
		return []string{fmt.Sprint(t)}
	}
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case []string:
		return append([]string(nil), t...)
	case []any:
		return append([]any(nil), t...)
	default:
		return v
	}
}
