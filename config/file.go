package config

import (
	"os"

	errs "github.com/jrsteele09/go-auth-client/internal/errors"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML configuration file, applies defaults and validates the result.
//
//	client:
//	  id: my-app
//	  secret: s3cret
//	auth:
//	  tokenHost: https://auth.example.com
//	options:
//	  authorizationMethod: body
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errs.Wrapf(err, "config.LoadFile read %s", path)
	}
	return Parse(data)
}

// Parse decodes YAML configuration bytes, applies defaults and validates the result.
func Parse(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, errs.Wrapf(ErrInvalidConfig, "config.Parse: %v", err)
	}
	c = c.WithDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
