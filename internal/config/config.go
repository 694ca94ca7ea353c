// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/ebay-seller-metrics/internal/ebay"
)

// Config is the top-level application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Ebay          EbayConfig          `yaml:"ebay"`
	Database      DatabaseConfig      `yaml:"database"`
	Schedule      ScheduleConfig      `yaml:"schedule"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Telemetry     TelemetryConfig     `yaml:"telemetry"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	// PollTriggerInterval is the minimum spacing between manual polls.
	PollTriggerInterval time.Duration `yaml:"poll_trigger_interval"`
}

// EbayConfig defines eBay application credentials and endpoints.
type EbayConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	// RedirectURI is the RuName registered for the application.
	RedirectURI string `yaml:"redirect_uri"`
	// RefreshToken seeds the session so polling works without a browser
	// round trip.
	RefreshToken string `yaml:"refresh_token"`
	// StateSecret signs OAuth state values. Defaults to the client secret.
	StateSecret string `yaml:"state_secret"`

	AuthorizeURL string `yaml:"authorize_url"`
	TokenURL     string `yaml:"token_url"`
	APIURL       string `yaml:"api_url"`
	APIZURL      string `yaml:"apiz_url"`
	Marketplace  string `yaml:"marketplace"`

	ScopePreset string   `yaml:"scope_preset"` // full, finances, analytics
	Scopes      []string `yaml:"scopes"`

	Timeout time.Duration `yaml:"timeout"`
}

// ResolvedScopes returns the explicit scope list, or the preset's scopes
// when none is set.
func (e *EbayConfig) ResolvedScopes() ([]string, error) {
	if len(e.Scopes) > 0 {
		return e.Scopes, nil
	}
	return ebay.ScopePreset(e.ScopePreset)
}

// Credentials returns the OAuth client credentials.
func (e *EbayConfig) Credentials() ebay.Credentials {
	return ebay.Credentials{
		ClientID:     e.ClientID,
		ClientSecret: e.ClientSecret,
		AuthorizeURL: e.AuthorizeURL,
		TokenURL:     e.TokenURL,
		RedirectURI:  e.RedirectURI,
	}
}

// DatabaseConfig defines PostgreSQL connection settings. When disabled the
// service keeps history in memory.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// ScheduleConfig defines poll and maintenance timing.
type ScheduleConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"`
	// StaleAfter is how long a poll run may stay running before it is
	// marked crashed.
	StaleAfter time.Duration `yaml:"stale_after"`
	// SnapshotRetention prunes older history. Zero keeps everything.
	SnapshotRetention time.Duration `yaml:"snapshot_retention"`
}

// NotificationsConfig defines notification targets.
type NotificationsConfig struct {
	Discord DiscordConfig `yaml:"discord"`
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
	Username   string `yaml:"username"`
}

// TelemetryConfig defines OTLP export settings.
type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Endpoint    string `yaml:"endpoint"`
	Insecure    bool   `yaml:"insecure"`
	ServiceName string `yaml:"service_name"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyEbayDefaults(&cfg.Ebay)
	applyDatabaseDefaults(&cfg.Database)
	applyScheduleDefaults(&cfg.Schedule)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 60 * time.Second
	}
	if s.PollTriggerInterval == 0 {
		s.PollTriggerInterval = time.Minute
	}
}

func applyEbayDefaults(e *EbayConfig) {
	if e.AuthorizeURL == "" {
		e.AuthorizeURL = ebay.DefaultAuthorizeURL
	}
	if e.TokenURL == "" {
		e.TokenURL = ebay.DefaultTokenURL
	}
	if e.APIURL == "" {
		e.APIURL = ebay.DefaultAPIURL
	}
	if e.APIZURL == "" {
		e.APIZURL = ebay.DefaultAPIZURL
	}
	if e.Marketplace == "" {
		e.Marketplace = ebay.DefaultMarketplace
	}
	if e.ScopePreset == "" {
		e.ScopePreset = ebay.PresetFull
	}
	if e.StateSecret == "" {
		e.StateSecret = e.ClientSecret
	}
	if e.Timeout == 0 {
		e.Timeout = 30 * time.Second
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 10
	}
}

func applyScheduleDefaults(s *ScheduleConfig) {
	if s.PollInterval == 0 {
		s.PollInterval = 5 * time.Minute
	}
	if s.StaleAfter == 0 {
		s.StaleAfter = 30 * time.Minute
	}
}

func applyTelemetryDefaults(t *TelemetryConfig) {
	if t.Endpoint == "" {
		t.Endpoint = "localhost:4317"
	}
	if t.ServiceName == "" {
		t.ServiceName = "ebay-seller-metrics"
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Ebay.ClientID == "" {
		errs = append(errs, fmt.Errorf("ebay.client_id is required"))
	}
	if cfg.Ebay.ClientSecret == "" {
		errs = append(errs, fmt.Errorf("ebay.client_secret is required"))
	}
	if cfg.Ebay.RedirectURI == "" {
		errs = append(errs, fmt.Errorf("ebay.redirect_uri is required"))
	}
	if _, err := ebay.ScopePreset(cfg.Ebay.ScopePreset); err != nil {
		errs = append(errs, fmt.Errorf(
			"ebay.scope_preset must be one of: full, finances, analytics (got %q)",
			cfg.Ebay.ScopePreset,
		))
	}

	if cfg.Database.Enabled {
		if cfg.Database.Host == "" {
			errs = append(errs, fmt.Errorf("database.host is required when database is enabled"))
		}
		if cfg.Database.Name == "" {
			errs = append(errs, fmt.Errorf("database.name is required when database is enabled"))
		}
		if cfg.Database.User == "" {
			errs = append(errs, fmt.Errorf("database.user is required when database is enabled"))
		}
	}

	if cfg.Schedule.PollInterval < time.Minute {
		errs = append(errs, fmt.Errorf("schedule.poll_interval must be at least 1m"))
	}

	if cfg.Notifications.Discord.Enabled && cfg.Notifications.Discord.WebhookURL == "" {
		errs = append(errs, fmt.Errorf("notifications.discord.webhook_url is required when discord is enabled"))
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf(
			"logging.level must be one of: debug, info, warn, error (got %q)",
			cfg.Logging.Level,
		))
	}

	return errors.Join(errs...)
}
