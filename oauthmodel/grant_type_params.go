package oauthmodel

import (
	"strings"

	"github.com/jrsteele09/go-auth-client/config"
	"github.com/jrsteele09/go-auth-client/internal/utils"
	"github.com/jrsteele09/go-auth-client/oauth2"
)

// GrantTypeParams builds the flat parameter set of a single token or authorization request.
// It holds its own copies of every input, so later changes by the caller have no effect.
type GrantTypeParams struct {
	options    config.Options
	baseParams *Params
	params     *Params
}

// ForGrantType returns a builder whose base parameters are {grant_type: grantType}.
func ForGrantType(grantType oauth2.GrantType, options config.Options, params *Params) *GrantTypeParams {
	baseParams := NewParams().Set(oauth2.ParamGrantType, string(grantType))
	return NewGrantTypeParams(options, baseParams, params)
}

// NewGrantTypeParams returns a builder over copies of options, baseParams and params.
func NewGrantTypeParams(options config.Options, baseParams, params *Params) *GrantTypeParams {
	return &GrantTypeParams{
		options:    options,
		baseParams: baseParams.Clone(),
		params:     params.Clone(),
	}
}

// ToParams merges the inputs into a new parameter set.
//
// Precedence is base < params < computed scope: base parameters are applied first,
// then the caller's parameters (which may replace grant_type), then the normalized
// scope replaces whatever raw scope value the caller's parameters held.
func (g *GrantTypeParams) ToParams() *Params {
	merged := g.baseParams.Clone().Merge(g.params.Clone())
	if scope, ok := scopeParam(g.params, g.options.ScopeSeparator); ok {
		merged.Set(oauth2.ParamScope, scope)
	}
	return merged
}

// scopeParam computes the scope entry. An absent scope yields no entry, a list is
// joined with the separator, and anything else is passed through unchanged.
func scopeParam(params *Params, separator string) (any, bool) {
	scope, ok := params.Get(oauth2.ParamScope)
	if !ok {
		return nil, false
	}
	switch s := scope.(type) {
	case []string:
		return strings.Join(s, separator), true
	case []any:
		return strings.Join(utils.ToStringSlice(s), separator), true
	default:
		return scope, true
	}
}
