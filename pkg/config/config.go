package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds process configuration parsed from the environment. Secrets
// come from env only; runtime knobs can be overridden by flags in cmd.
type Config struct {
	Port     string `env:"EZBASE_PORT" envDefault:"3690"`
	DataFile string `env:"EZBASE_DATA_FILE" envDefault:"ezbase_data.ezbs"`

	// USER_AUTH_KEY keeps the name the front end and SDK already use
	AuthSecret string        `env:"USER_AUTH_KEY" envDefault:"user_key"`
	TokenTTL   time.Duration `env:"EZBASE_TOKEN_TTL" envDefault:"168h"`

	BcryptCost  int `env:"EZBASE_BCRYPT_COST" envDefault:"10"`
	HashWorkers int `env:"EZBASE_HASH_WORKERS" envDefault:"4"`

	GoogleClientID     string        `env:"CLIENT_ID"`
	GoogleClientSecret string        `env:"CLIENT_SECRET"`
	OAuthRedirectURL   string        `env:"EZBASE_OAUTH_REDIRECT_URL" envDefault:"http://localhost:3690/api/auth/oauth_redirect"`
	FrontendURL        string        `env:"EZBASE_FRONTEND_URL" envDefault:"http://localhost:5173"`
	OAuthTimeout       time.Duration `env:"EZBASE_OAUTH_TIMEOUT" envDefault:"10s"`
}

// Load parses configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}

// OAuthConfigured reports whether Google OAuth credentials are present
func (c *Config) OAuthConfigured() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}
