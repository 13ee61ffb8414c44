package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server    Server
	Postgres  Postgres
	Feed      Feed
	Redis     Redis
	Admin     Admin
	Scheduler Scheduler
}

type Server struct {
	Port        int           `envconfig:"PORT" default:"3000"`
	JWTSecret   string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL    time.Duration `envconfig:"TOKEN_TTL" default:"720h"`
	CORSOrigins []string      `envconfig:"CORS_ORIGINS" default:"*"`

	// Requests allowed per client per RateWindow. Zero turns rate limiting off.
	RateLimit  int           `envconfig:"RATE_LIMIT" default:"120"`
	RateWindow time.Duration `envconfig:"RATE_WINDOW" default:"1m"`
}

type Postgres struct {
	ConnString string `envconfig:"POSTGRES_CONN_STR" required:"true"`
}

// Feed is optional. Without a URL the catalog is never synced and scores come
// from the random source.
type Feed struct {
	URL          string        `envconfig:"FEED_URL"`
	APIKey       string        `envconfig:"FEED_API_KEY"`
	ClientID     string        `envconfig:"FEED_CLIENT_ID"`
	ClientSecret string        `envconfig:"FEED_CLIENT_SECRET"`
	TokenURL     string        `envconfig:"FEED_TOKEN_URL"`
	Timeout      time.Duration `envconfig:"FEED_TIMEOUT" default:"10s"`
}

// Redis backs the rate limiter. Leave the address empty to run without it.
type Redis struct {
	Addr     string `envconfig:"REDIS_ADDR"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type Admin struct {
	User     string `envconfig:"ADMIN_USER" default:"admin"`
	Password string `envconfig:"ADMIN_PASSWORD"`
}

type Scheduler struct {
	SyncInterval  time.Duration `envconfig:"SYNC_INTERVAL" default:"24h"`
	ScoreInterval time.Duration `envconfig:"SCORE_INTERVAL" default:"0s"`
}

// New loads a .env file from the working directory when there is one and then
// reads the configuration from the environment.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Server.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.Feed.URL != "" && c.Feed.APIKey == "" && c.Feed.ClientID == "" {
		return errors.New("FEED_URL is set but neither FEED_API_KEY nor FEED_CLIENT_ID is")
	}
	if c.Feed.ClientID != "" && (c.Feed.ClientSecret == "" || c.Feed.TokenURL == "") {
		return errors.New("FEED_CLIENT_ID requires FEED_CLIENT_SECRET and FEED_TOKEN_URL")
	}
	if c.Scheduler.SyncInterval < 0 || c.Scheduler.ScoreInterval < 0 {
		return errors.New("scheduler intervals must not be negative")
	}
	for i, o := range c.Server.CORSOrigins {
		c.Server.CORSOrigins[i] = strings.TrimSpace(o)
	}
	return nil
}

// FeedEnabled reports whether a feed is configured.
func (c *Config) FeedEnabled() bool {
	return c.Feed.URL != ""
}

// AdminEnabled reports whether the admin routes can be used. They stay disabled
// until a password is set.
func (c *Config) AdminEnabled() bool {
	return c.Admin.Password != ""
}
