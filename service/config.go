package service

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigFileEnv names an optional YAML file with the same keys as the
// environment. Environment variables win over the file.
const ConfigFileEnv = "EVENTIFY_CONFIG"

const minSessionSecret = 32

var ErrWeakSessionSecret = errors.New("SESSION_SECRET must be at least 32 bytes in production")

type Config struct {
	Environment string
	Port        string
	BaseURL     string
	DBPath      string

	API struct {
		BaseURL string
		Timeout time.Duration
	}

	Session struct {
		Secret       string
		CookieSecure bool
	}

	Tokens struct {
		TTL           time.Duration
		SweepInterval time.Duration
	}
}

// IsProduction reports whether the server runs in production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func LoadConfig() (*Config, error) {
	file, err := readConfigFile(os.Getenv(ConfigFileEnv))
	if err != nil {
		return nil, err
	}
	get := func(key, defaultValue string) string {
		return getEnv(key, file.get(key, defaultValue))
	}

	config := &Config{
		Environment: get("ENVIRONMENT", "development"),
		Port:        get("PORT", "3000"),
		BaseURL:     get("BASE_URL", "http://localhost:3000"),
		DBPath:      get("DB_PATH", "./db/eventify.db"),
	}

	// API
	config.API.BaseURL = get("API_BASE_URL", "http://localhost:5000/api")
	config.API.Timeout = parseDuration("API_TIMEOUT", get("API_TIMEOUT", "15s"), 15*time.Second)

	// Session
	config.Session.Secret = get("SESSION_SECRET", "development-secret-change-me-please")
	secure, err := strconv.ParseBool(get("COOKIE_SECURE", "false"))
	if err != nil {
		secure = config.IsProduction()
	}
	config.Session.CookieSecure = secure

	// Tokens
	config.Tokens.TTL = parseDuration("TOKEN_TTL", get("TOKEN_TTL", "168h"), 7*24*time.Hour)
	config.Tokens.SweepInterval = parseDuration("SWEEP_INTERVAL", get("SWEEP_INTERVAL", "1h"), time.Hour)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the settings that must not fall back to defaults.
func (c *Config) Validate() error {
	if c.IsProduction() && len(c.Session.Secret) < minSessionSecret {
		return ErrWeakSessionSecret
	}
	if c.API.BaseURL == "" {
		return errors.New("API_BASE_URL is required")
	}
	return nil
}

// configFile holds the values of the YAML config file keyed by the upper
// cased environment name.
type configFile map[string]string

func readConfigFile(path string) (configFile, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	file := make(configFile, len(raw))
	for k, v := range raw {
		file[strings.ToUpper(k)] = v
	}
	return file, nil
}

func (f configFile) get(key, defaultValue string) string {
	if value, ok := f[key]; ok && value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(key, value string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration, using default", "key", key, "value", value, "default", defaultValue)
		return defaultValue
	}
	return d
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
