package appconf

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"explorer.navitia.org/internal/navitia"
)

func secondsToDuration(s int) time.Duration {
	return time.Duration(s) * time.Second
}

const maxConfigFileSize = 10 * 1024 * 1024

// NavitiaFeed configures the upstream transit API connection.
type NavitiaFeed struct {
	BaseURL               string `json:"base-url"`
	Token                 string `json:"token"`
	Coverage              string `json:"coverage"`
	DisruptionRefreshSecs int    `json:"disruption-refresh-seconds"`
	RequestTimeoutSeconds int    `json:"request-timeout-seconds"`
}

// JSONConfig mirrors the JSON configuration file. Zero values are replaced by
// defaults before validation.
type JSONConfig struct {
	Port        int         `json:"port"`
	Env         string      `json:"env"`
	ApiKeys     []string    `json:"api-keys"`
	RateLimit   int         `json:"rate-limit"`
	NavitiaFeed NavitiaFeed `json:"navitia-feed"`
	// StationsDBPath is the SQLite database holding the station directory.
	StationsDBPath string `json:"stations-db-path"`
}

// LoadFromFile reads, defaults, and validates a JSON config file.
func LoadFromFile(path string) (*JSONConfig, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes", info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config JSONConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse JSON config: %w", err)
	}

	config.setDefaults()
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func (c *JSONConfig) setDefaults() {
	if c.Port == 0 {
		c.Port = 4000
	}
	if c.Env == "" {
		c.Env = "development"
	}
	if len(c.ApiKeys) == 0 {
		c.ApiKeys = []string{"test"}
	}
	if c.RateLimit == 0 {
		c.RateLimit = 100
	}
	if c.NavitiaFeed.BaseURL == "" {
		c.NavitiaFeed.BaseURL = "https://api.navitia.io/v1"
	}
	if c.NavitiaFeed.Coverage == "" {
		c.NavitiaFeed.Coverage = navitia.DefaultCoverage
	}
	if c.NavitiaFeed.DisruptionRefreshSecs == 0 {
		c.NavitiaFeed.DisruptionRefreshSecs = 120
	}
	if c.NavitiaFeed.RequestTimeoutSeconds == 0 {
		c.NavitiaFeed.RequestTimeoutSeconds = 30
	}
	if c.StationsDBPath == "" {
		c.StationsDBPath = "./stations.db"
	}
}

func (c *JSONConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}

	switch c.Env {
	case "development", "test", "production":
	default:
		return fmt.Errorf("env must be one of development, test, production; got %q", c.Env)
	}

	if c.RateLimit < 1 {
		return fmt.Errorf("rate-limit must be at least 1, got %d", c.RateLimit)
	}

	if len(c.ApiKeys) == 0 {
		return fmt.Errorf("api-keys cannot be empty")
	}
	seen := make(map[string]struct{}, len(c.ApiKeys))
	for _, key := range c.ApiKeys {
		if key == "" {
			return fmt.Errorf("api-keys cannot contain empty strings")
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("duplicate API key found: %q", key)
		}
		seen[key] = struct{}{}
	}

	if strings.HasPrefix(strings.ToLower(c.NavitiaFeed.BaseURL), "file://") {
		return fmt.Errorf("navitia-feed: file:// URLs are not allowed")
	}

	if err := validateLocalPath("stations-db-path", c.StationsDBPath); err != nil {
		return err
	}

	return nil
}

// validateLocalPath rejects paths that escape the working directory. The
// SQLite special value ":memory:" is allowed.
func validateLocalPath(field, path string) error {
	if path == "" || path == ":memory:" {
		return nil
	}
	if filepath.IsAbs(path) {
		return nil
	}
	clean := filepath.Clean(path)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%s must not contain path traversal: %q", field, path)
	}
	return nil
}

// ToAppConfig converts the file form into the runtime Config.
func (c *JSONConfig) ToAppConfig() Config {
	return Config{
		Port:      c.Port,
		Env:       EnvFlagToEnvironment(c.Env),
		ApiKeys:   c.ApiKeys,
		RateLimit: c.RateLimit,
		Verbose:   true,
	}
}

// ToNavitiaConfig converts the feed section into the client configuration.
func (c *JSONConfig) ToNavitiaConfig() navitia.Config {
	return navitia.Config{
		BaseURL:                   c.NavitiaFeed.BaseURL,
		Token:                     c.NavitiaFeed.Token,
		Coverage:                  c.NavitiaFeed.Coverage,
		Timeout:                   secondsToDuration(c.NavitiaFeed.RequestTimeoutSeconds),
		DisruptionRefreshInterval: secondsToDuration(c.NavitiaFeed.DisruptionRefreshSecs),
		Verbose:                   true,
	}
}
