package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	// Schedule feed (ESPN site API)
	ESPNBaseURL string `envconfig:"ESPN_BASE_URL" default:"https://site.api.espn.com/apis/site/v2/sports"`

	// Odds feed (The Odds API v4)
	OddsBaseURL string `envconfig:"ODDS_BASE_URL" default:"https://api.the-odds-api.com/v4"`
	OddsAPIKey     string `envconfig:"ODDS_API_KEY" default:""`
	OddsAPIKeyFile string `envconfig:"ODDS_API_KEY_FILE" default:""`
	OddsRegions    string `envconfig:"ODDS_REGIONS" default:"us"`

	// Outbound HTTP
	HTTPTimeout    time.Duration `envconfig:"HTTP_TIMEOUT" default:"15s"`
	HTTPMaxRetries int           `envconfig:"HTTP_MAX_RETRIES" default:"2"`
	APIRateLimit   float64       `envconfig:"API_RATE_LIMIT" default:"5"`
	APIBurstLimit  int           `envconfig:"API_BURST_LIMIT" default:"10"`

	// Redis
	RedisEnabled      bool   `envconfig:"REDIS_ENABLED" default:"true"`
	RedisHost         string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort         int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword     string `envconfig:"REDIS_PASSWORD" default:""`
	RedisPasswordFile string `envconfig:"REDIS_PASSWORD_FILE" default:""`
	RedisDB           int    `envconfig:"REDIS_DB" default:"0"`

	// Caching TTL
	CacheTTLSchedule  time.Duration `envconfig:"CACHE_TTL_SCHEDULE" default:"180s"`
	CacheTTLOdds      time.Duration `envconfig:"CACHE_TTL_ODDS" default:"120s"`
	CacheTTLNews      time.Duration `envconfig:"CACHE_TTL_NEWS" default:"300s"`
	CacheTTLTeams     time.Duration `envconfig:"CACHE_TTL_TEAMS" default:"1h"`
	CacheTTLStandings time.Duration `envconfig:"CACHE_TTL_STANDINGS" default:"120s"`

	// Scheduler
	EnableScheduler bool   `envconfig:"ENABLE_SCHEDULER" default:"true"`
	RefreshCron     string `envconfig:"REFRESH_CRON" default:"@every 2m"`

	// Boards
	WindowPastDays   int    `envconfig:"WINDOW_PAST_DAYS" default:"7"`
	WindowFutureDays int    `envconfig:"WINDOW_FUTURE_DAYS" default:"14"`
	NewsLimit        int    `envconfig:"NEWS_LIMIT" default:"8"`
	DisplayTimezone  string `envconfig:"DISPLAY_TIMEZONE" default:"Local"`
	TeamMatchPolicy  string `envconfig:"TEAM_MATCH_POLICY" default:"substring"`
	TrackersFile     string `envconfig:"TRACKERS_FILE" default:""`

	// Application
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// HTTP API
	HTTPPort    int      `envconfig:"HTTP_PORT" default:"8080"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`

	// Monitoring
	EnableMetrics bool `envconfig:"ENABLE_METRICS" default:"true"`
	MetricsPort   int  `envconfig:"METRICS_PORT" default:"9090"`
}

// Load loads configuration from environment variables
// It first attempts to load from .env file if in development mode
func Load() (*Config, error) {
	// Try to load .env file (ignore error if doesn't exist)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	// Mounted secret files take precedence over plain variables
	if cfg.OddsAPIKeyFile != "" {
		key, err := readSecretFile(cfg.OddsAPIKeyFile, "ODDS_API_KEY_FILE")
		if err != nil {
			return nil, err
		}
		cfg.OddsAPIKey = key
	}
	if cfg.RedisPasswordFile != "" {
		password, err := readSecretFile(cfg.RedisPasswordFile, "REDIS_PASSWORD_FILE")
		if err != nil {
			return nil, err
		}
		cfg.RedisPassword = password
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch strings.ToLower(c.TeamMatchPolicy) {
	case "", "substring", "fuzzy":
	default:
		return fmt.Errorf("TEAM_MATCH_POLICY must be substring or fuzzy, got %q", c.TeamMatchPolicy)
	}

	if c.WindowPastDays < 0 || c.WindowFutureDays < 0 {
		return fmt.Errorf("schedule window days must not be negative")
	}
	if c.WindowPastDays+c.WindowFutureDays == 0 {
		return fmt.Errorf("schedule window must span at least one day")
	}

	if c.NewsLimit < 0 {
		return fmt.Errorf("NEWS_LIMIT must not be negative")
	}

	if c.APIRateLimit <= 0 || c.APIBurstLimit <= 0 {
		return fmt.Errorf("API_RATE_LIMIT and API_BURST_LIMIT must be positive")
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	return nil
}

// Location resolves DisplayTimezone
func (c *Config) Location() (*time.Location, error) {
	if c.DisplayTimezone == "" || c.DisplayTimezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.DisplayTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid DISPLAY_TIMEZONE %q: %w", c.DisplayTimezone, err)
	}
	return loc, nil
}

// readSecretFile reads a secret mounted as a file, e.g. under /run/secrets
func readSecretFile(path, name string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	secret := strings.TrimSpace(string(data))
	if secret == "" {
		return "", fmt.Errorf("secret file %s is empty (%s)", path, name)
	}
	return secret, nil
}

// RedisAddr returns the Redis address
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// HasOddsAPIKey reports whether an odds-feed credential is configured
func (c *Config) HasOddsAPIKey() bool {
	return strings.TrimSpace(c.OddsAPIKey) != ""
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// MustLoad loads configuration or exits on error
// Use this in main() where we want to fail fast
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
