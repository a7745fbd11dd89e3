package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// Config holds all service configuration, parsed from the environment.
type Config struct {
	Server ServerConfig
	Mongo  MongoConfig
	Token  TokenConfig
	App    AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `env:"SERVER_ADDR"             envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// MongoConfig holds database connection settings.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DATABASE"`
}

// TokenConfig holds JWT and single-use token settings. Access and refresh
// tokens use independent secrets and expirations.
type TokenConfig struct {
	Issuer                string        `env:"TOKEN_ISSUER"            envDefault:"event-registry-api"`
	AccessTokenSecret     string        `env:"ACCESS_TOKEN_SECRET"`
	AccessTokenExpiresIn  time.Duration `env:"ACCESS_TOKEN_EXPIRES_IN"  envDefault:"15m"`
	RefreshTokenSecret    string        `env:"REFRESH_TOKEN_SECRET"`
	RefreshTokenExpiresIn time.Duration `env:"REFRESH_TOKEN_EXPIRES_IN" envDefault:"720h"`
	UserTokenExpiresIn    time.Duration `env:"USER_TOKEN_EXPIRES_IN"    envDefault:"24h"`
}

// AppConfig holds links embedded in outbound emails.
type AppConfig struct {
	VerifyEmailURL   string `env:"APP_VERIFY_EMAIL_URL"`
	PasswordResetURL string `env:"APP_PASSWORD_RESET_URL"`
}

// New parses the configuration from environment variables.
func New(logger *zerolog.Logger) *Config {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse environment variables")
	}

	if err := cfg.validate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to validate configuration")
	}

	return &cfg
}

// validate checks that required settings are present.
func (c *Config) validate() error {
	if c.Mongo.URI == "" {
		return fmt.Errorf("missing MONGO_URI environment variable")
	}
	if c.Mongo.Database == "" {
		return fmt.Errorf("missing MONGO_DATABASE environment variable")
	}
	if c.Token.AccessTokenSecret == "" {
		return fmt.Errorf("missing ACCESS_TOKEN_SECRET environment variable")
	}
	if c.Token.RefreshTokenSecret == "" {
		return fmt.Errorf("missing REFRESH_TOKEN_SECRET environment variable")
	}
	if c.Token.AccessTokenSecret == c.Token.RefreshTokenSecret {
		return fmt.Errorf("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ")
	}
	if c.App.VerifyEmailURL == "" {
		return fmt.Errorf("missing APP_VERIFY_EMAIL_URL environment variable")
	}
	if c.App.PasswordResetURL == "" {
		return fmt.Errorf("missing APP_PASSWORD_RESET_URL environment variable")
	}

	return nil
}
