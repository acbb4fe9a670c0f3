// Package config handles configuration for the server component: defaults,
// an optional JSON file, environment variables and command-line flags,
// applied in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"
)

var (
	// ErrMissingSecret is returned by Validate when no token signing secret
	// was supplied. The server must not start without one.
	ErrMissingSecret = errors.New("config: secret key is required")
	// ErrMissingDSN is returned by Validate when no database DSN was supplied.
	ErrMissingDSN = errors.New("config: database DSN is required")
)

// Config holds runtime settings for the gophauth server.
//
// Fields:
//   - EndpointAddrGRPC: bind address for the public gRPC endpoint.
//   - DatabaseDSN: postgres:// DSN (pgx) or sqlite:/file: DSN (modernc sqlite).
//   - SecretKey: HMAC secret for signing access tokens (HS256). No default.
//   - AccessTokenValidityDuration: access token lifetime.
//   - TokenIssuer: value of the "iss" claim; checked on verification.
//   - HashConcurrency: maximum number of concurrent Argon2id operations.
//   - OTelEndpoint: OTLP/gRPC collector URL; empty disables telemetry export.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	EndpointAddrGRPC            string        `env:"GOPHAUTH_ADDR"`
	DatabaseDSN                 string        `env:"DATABASE_URL"`
	SecretKey                   string        `env:"JWT_SECRET"`
	AccessTokenValidityDuration time.Duration `env:"JWT_TTL"`
	TokenIssuer                 string        `env:"JWT_ISSUER"`
	HashConcurrency             int           `env:"HASH_CONCURRENCY"`
	OTelEndpoint                string        `env:"OTEL_ENDPOINT"`
	LogLevel                    string        `env:"LOG_LEVEL"`
}

// LoadDefaults populates Config with development defaults. SecretKey and
// DatabaseDSN have no default.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.AccessTokenValidityDuration = 1 * time.Hour
	c.TokenIssuer = "gophauth"
	c.HashConcurrency = runtime.NumCPU()
	c.LogLevel = "info"
}

// Validate reports missing mandatory settings.
func (c *Config) Validate() error {
	var errs []error
	if c.SecretKey == "" {
		errs = append(errs, ErrMissingSecret)
	}
	if c.DatabaseDSN == "" {
		errs = append(errs, ErrMissingDSN)
	}
	if c.AccessTokenValidityDuration <= 0 {
		errs = append(errs, fmt.Errorf("config: access token validity must be positive, got %s", c.AccessTokenValidityDuration))
	}
	return errors.Join(errs...)
}

// LoadConfig builds a Config from os.Args and the environment.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load applies defaults, then the JSON file named by -c/-config (or
// GOPHAUTH_CONFIG), then environment variables, then flags found in args,
// and finally validates the result.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
