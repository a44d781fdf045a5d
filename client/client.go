// Package client wires a validated configuration, an HTTP transport and the grant flows
// into one client session.
package client

import (
	"github.com/jrsteele09/go-auth-client/config"
	"github.com/jrsteele09/go-auth-client/grants"
	"github.com/jrsteele09/go-auth-client/token"
	"github.com/jrsteele09/go-auth-client/transport"
)

// Client is a session against one authorization server. Its flows share the same
// configuration and transport.
type Client struct {
	config            *config.Config
	transport         transport.Transport
	authorizationCode *grants.AuthorizationCode
	clientCredentials *grants.ClientCredentials
}

type settings struct {
	transport    transport.Transport
	httpOptions  []transport.HTTPOption
	tokenOptions []token.Option
}

// Option configures a Client.
type Option func(*settings)

// WithTransport replaces the default HTTP transport.
func WithTransport(tr transport.Transport) Option {
	return func(s *settings) {
		s.transport = tr
	}
}

// WithHTTPOptions configures the default HTTP transport.
func WithHTTPOptions(options ...transport.HTTPOption) Option {
	return func(s *settings) {
		s.httpOptions = append(s.httpOptions, options...)
	}
}

// WithTokenOptions sets options applied to every AccessToken created by the flows.
func WithTokenOptions(options ...token.Option) Option {
	return func(s *settings) {
		s.tokenOptions = append(s.tokenOptions, options...)
	}
}

// New applies defaults to cfg, validates it and builds the session.
// The Client keeps its own copy of cfg.
func New(cfg config.Config, options ...Option) (*Client, error) {
	c := cfg.WithDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var s settings
	for _, opt := range options {
		opt(&s)
	}
	if s.transport == nil {
		s.transport = transport.NewHTTPTransport(&c, s.httpOptions...)
	}

	return &Client{
		config:            &c,
		transport:         s.transport,
		authorizationCode: grants.NewAuthorizationCode(&c, s.transport, s.tokenOptions...),
		clientCredentials: grants.NewClientCredentials(&c, s.transport, s.tokenOptions...),
	}, nil
}

// AuthorizationCode returns the authorization code flow.
func (c *Client) AuthorizationCode() *grants.AuthorizationCode {
	return c.authorizationCode
}

// ClientCredentials returns the client credentials flow.
func (c *Client) ClientCredentials() *grants.ClientCredentials {
	return c.clientCredentials
}

// Config returns a copy of the session configuration.
func (c *Client) Config() config.Config {
	return *c.config
}
