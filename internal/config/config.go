package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/kursadbilgin/albumbot/internal/provider"
	"github.com/kursadbilgin/albumbot/internal/retry"
)

type Config struct {
	BotID              string `env:"BOT_ID,required=true"`
	Group              string `env:"GROUP,required=true"`
	LogLevel           string `env:"LOG_LEVEL,default=info"`
	LogEncoding        string `env:"LOG_ENCODING,default=console"`
	RetryLimit         int    `env:"RETRY_LIMIT,default=10"`
	RetryDelaySeconds  int    `env:"RETRY_DELAY_SECONDS,default=60"`
	HTTPTimeoutSeconds int    `env:"HTTP_TIMEOUT_SECONDS,default=30"`
	GeneratorURL       string `env:"GENERATOR_URL"`
	GroupMeAPIURL      string `env:"GROUPME_API_URL"`
	SpotifyURL         string `env:"SPOTIFY_URL"`
	Timezone           string `env:"TIMEZONE,default=Local"`
	Schedule           string `env:"SCHEDULE"`
}

const DefaultSchedule = "0 9 * * *"

// Load reads the process environment. Variables already set take precedence over
// values in envFile; a missing envFile is not an error.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	var cfg Config
	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	c.BotID = strings.TrimSpace(c.BotID)
	c.Group = strings.TrimSpace(c.Group)
	if strings.TrimSpace(c.GeneratorURL) == "" {
		c.GeneratorURL = provider.DefaultGeneratorBaseURL
	}
	if strings.TrimSpace(c.GroupMeAPIURL) == "" {
		c.GroupMeAPIURL = provider.DefaultGroupMeEndpoint
	}
	if strings.TrimSpace(c.SpotifyURL) == "" {
		c.SpotifyURL = provider.DefaultSpotifyAlbumURL
	}
	if strings.TrimSpace(c.Schedule) == "" {
		c.Schedule = DefaultSchedule
	}
}

func (c *Config) Validate() error {
	if c.BotID == "" {
		return fmt.Errorf("BOT_ID is not set")
	}
	if c.Group == "" {
		return fmt.Errorf("GROUP is not set")
	}
	if err := c.RetryPolicy().Validate(); err != nil {
		return err
	}
	if c.HTTPTimeoutSeconds <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT_SECONDS must be positive (got %d)", c.HTTPTimeoutSeconds)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

func (c *Config) RetryPolicy() retry.Policy {
	return retry.Policy{
		MaxRetries: c.RetryLimit,
		Delay:      time.Duration(c.RetryDelaySeconds) * time.Second,
	}
}

func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// Location resolves TIMEZONE; "Local" and "" mean the host zone.
func (c *Config) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.Timezone)
	if name == "" || name == "Local" {
		return time.Local, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *Config) GroupAPIURL() string {
	return provider.GroupAPIURL(c.GeneratorURL, c.Group)
}

func (c *Config) GroupPageURL() string {
	return provider.GroupPageURL(c.GeneratorURL, c.Group)
}
