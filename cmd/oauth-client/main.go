package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/jrsteele09/go-auth-client/client"
	"github.com/jrsteele09/go-auth-client/config"
	"github.com/jrsteele09/go-auth-client/grants"
	errs "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/oauth2"
	"github.com/jrsteele09/go-auth-client/oauthmodel"
	"github.com/jrsteele09/go-auth-client/token"
	"github.com/jrsteele09/go-auth-client/transport"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const appName = "OAuth Client"

const usage = `usage: oauth-client [flags] <command> [args]

commands:
  authorize-url          print the authorization URL for the authorization code flow
  exchange <code>        exchange an authorization code for a token
  client-credentials     request a token with the client credentials grant
  refresh                refresh the token read from -token-file
  revoke [type|all]      revoke access_token, refresh_token or all of the token in -token-file
  expired                report whether the token in -token-file has expired

flags:
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		var httpErr *transport.HTTPError
		if errs.As(err, &httpErr) {
			log.Error().Int("status", httpErr.StatusCode).Str("error", httpErr.Code).Str("error_description", httpErr.Description).Msg("Authorization server rejected the request")
		}
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run(args []string) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	fs := flag.NewFlagSet("oauth-client", flag.ContinueOnError)
	configFile := fs.String("config", "", "YAML configuration file (defaults to OAUTH_* environment variables)")
	issuer := fs.String("issuer", "", "discover endpoints from this OpenID Connect issuer")
	scope := fs.String("scope", "", "comma separated scopes")
	redirectURI := fs.String("redirect-uri", "", "redirect_uri for the authorization code flow")
	state := fs.String("state", "", "state for the authorization request (random if empty)")
	tokenFile := fs.String("token-file", "token.json", "file the token is read from and written to")
	window := fs.Int("window", 0, "expiration window in seconds")
	verbose := fs.Bool("v", false, "log requests")
	quiet := fs.Bool("q", false, "do not print the banner")
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("missing command")
	}

	setupLogging(*verbose)
	if !*quiet {
		displayAppname(appName)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(ctx, *configFile, *issuer)
	if err != nil {
		return err
	}
	c, err := client.New(cfg, client.WithHTTPOptions(transport.WithLogger(log.Logger)))
	if err != nil {
		return err
	}

	params := oauthmodel.NewParams()
	if *scope != "" {
		params.Set(oauth2.ParamScope, strings.Split(*scope, ","))
	}

	switch command := fs.Arg(0); command {
	case "authorize-url":
		if *redirectURI != "" {
			params.Set("redirect_uri", *redirectURI)
		}
		if *state == "" {
			*state = grants.NewState()
		}
		params.Set(oauth2.ParamState, *state)
		u, err := c.AuthorizationCode().AuthorizeURL(params)
		if err != nil {
			return err
		}
		fmt.Println(u)
		return nil

	case "exchange":
		if fs.NArg() < 2 {
			return errors.New("exchange requires an authorization code")
		}
		params.Set("code", fs.Arg(1))
		if *redirectURI != "" {
			params.Set("redirect_uri", *redirectURI)
		}
		tok, err := c.AuthorizationCode().GetToken(ctx, params)
		if err != nil {
			return err
		}
		return saveToken(*tokenFile, tok)

	case "client-credentials":
		tok, err := c.ClientCredentials().GetToken(ctx, params)
		if err != nil {
			return err
		}
		return saveToken(*tokenFile, tok)

	case "refresh":
		tok, err := loadToken(c, *tokenFile)
		if err != nil {
			return err
		}
		refreshed, err := tok.Refresh(ctx, params)
		if err != nil {
			return err
		}
		return saveToken(*tokenFile, refreshed)

	case "revoke":
		tok, err := loadToken(c, *tokenFile)
		if err != nil {
			return err
		}
		switch tokenType := fs.Arg(1); tokenType {
		case "", "all":
			err = tok.RevokeAll(ctx)
		default:
			err = tok.Revoke(ctx, oauth2.TokenTypeHint(tokenType))
		}
		if err != nil {
			return err
		}
		log.Info().Str("token_file", *tokenFile).Msg("Token revoked")
		return nil

	case "expired":
		tok, err := loadToken(c, *tokenFile)
		if err != nil {
			return err
		}
		fmt.Println(tok.Expired(*window))
		return nil

	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func loadConfig(ctx context.Context, configFile, issuer string) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if configFile != "" {
		cfg, err = config.LoadFile(configFile)
	} else if issuer != "" {
		// Endpoints come from discovery, so only the client settings are read from the environment.
		cfg = config.Config{Client: config.Client{
			ID:     config.GetEnv("OAUTH_CLIENT_ID", ""),
			Secret: config.GetEnv("OAUTH_CLIENT_SECRET", ""),
		}}
	} else {
		cfg, err = config.FromEnv()
	}
	if err != nil {
		return config.Config{}, err
	}
	if issuer != "" {
		return config.Discover(ctx, issuer, cfg)
	}
	return cfg, nil
}

func loadToken(c *client.Client, path string) (*token.AccessToken, error) {
	data, err := os.ReadFile(path)
	if errs.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("no token in %s, run exchange or client-credentials first", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read token file: %w", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode token file %s: %w", path, err)
	}
	return c.AuthorizationCode().CreateToken(raw)
}

func saveToken(path string, tok *token.AccessToken) error {
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func setupLogging(verbose bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
