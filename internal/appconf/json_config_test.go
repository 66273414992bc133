package appconf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromFile_ValidConfig(t *testing.T) {
	path := writeConfig(t, `{
		"port": 3000,
		"env": "development",
		"navitia-feed": {"token": "secret-token"}
	}`)

	config, err := LoadFromFile(path)
	require.NoError(t, err)
	require.NotNil(t, config)

	assert.Equal(t, 3000, config.Port)
	assert.Equal(t, "development", config.Env)
	assert.Equal(t, "secret-token", config.NavitiaFeed.Token)

	// Defaults applied on top of the explicit values.
	assert.Equal(t, []string{"test"}, config.ApiKeys)
	assert.Equal(t, 100, config.RateLimit)
	assert.Equal(t, "https://api.navitia.io/v1", config.NavitiaFeed.BaseURL)
	assert.Equal(t, "sncf", config.NavitiaFeed.Coverage)
	assert.Equal(t, "./stations.db", config.StationsDBPath)
}

func TestLoadFromFile_FullConfig(t *testing.T) {
	path := writeConfig(t, `{
		"port": 8080,
		"env": "production",
		"api-keys": ["key1", "key2"],
		"rate-limit": 50,
		"navitia-feed": {
			"base-url": "https://navitia.example.com/v1",
			"token": "tok",
			"coverage": "sncf",
			"disruption-refresh-seconds": 60,
			"request-timeout-seconds": 10
		},
		"stations-db-path": "/data/stations.db"
	}`)

	config, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, config.Port)
	assert.Equal(t, "production", config.Env)
	assert.Equal(t, []string{"key1", "key2"}, config.ApiKeys)
	assert.Equal(t, 50, config.RateLimit)
	assert.Equal(t, "https://navitia.example.com/v1", config.NavitiaFeed.BaseURL)
	assert.Equal(t, 60, config.NavitiaFeed.DisruptionRefreshSecs)
	assert.Equal(t, "/data/stations.db", config.StationsDBPath)
}

func TestLoadFromFile_MalformedJSON(t *testing.T) {
	path := writeConfig(t, `{"port": 3000,`)
	config, err := LoadFromFile(path)
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to parse JSON config")
}

func TestLoadFromFile_InvalidConfig(t *testing.T) {
	path := writeConfig(t, `{"port": 99999}`)
	config, err := LoadFromFile(path)
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	config, err := LoadFromFile("nonexistent.json")
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to stat config file")
}

func TestValidate_InvalidPort(t *testing.T) {
	tests := []struct {
		name string
		port int
	}{
		{"port too low", -1},
		{"port too high", 99999},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &JSONConfig{Port: tt.port, Env: "development", ApiKeys: []string{"test"}, RateLimit: 100}
			err := config.validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "port must be between")
		})
	}
}

func TestValidate_InvalidEnv(t *testing.T) {
	config := &JSONConfig{Port: 4000, Env: "staging", ApiKeys: []string{"test"}, RateLimit: 100}
	err := config.validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "env must be one of")
}

func TestValidate_InvalidRateLimit(t *testing.T) {
	config := &JSONConfig{Port: 4000, Env: "development", ApiKeys: []string{"test"}, RateLimit: 0}
	err := config.validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "rate-limit must be at least 1")
}

func TestValidate_APIKeys(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		config := &JSONConfig{Port: 4000, Env: "development", ApiKeys: []string{}, RateLimit: 100}
		err := config.validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "api-keys cannot be empty")
	})

	t.Run("empty string entry", func(t *testing.T) {
		config := &JSONConfig{Port: 4000, Env: "development", ApiKeys: []string{"key1", ""}, RateLimit: 100}
		err := config.validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "api-keys cannot contain empty strings")
	})

	t.Run("duplicates", func(t *testing.T) {
		config := &JSONConfig{Port: 4000, Env: "development", ApiKeys: []string{"key1", "key1"}, RateLimit: 100}
		err := config.validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate API key found")
	})
}

func TestValidate_FileURLNotAllowed(t *testing.T) {
	for _, u := range []string{"file:///etc/passwd", "FILE:///etc/passwd", "FiLe:///etc/passwd"} {
		config := &JSONConfig{
			Port: 4000, Env: "development", ApiKeys: []string{"test"}, RateLimit: 100,
			NavitiaFeed: NavitiaFeed{BaseURL: u},
		}
		err := config.validate()
		assert.Error(t, err, "url %q", u)
		assert.Contains(t, err.Error(), "file:// URLs are not allowed")
	}
}

func TestValidate_StationsDBPath(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		shouldErr bool
	}{
		{"traversal with dots", "../../../etc/passwd", true},
		{"relative traversal", "../../stations.db", true},
		{"valid relative", "./stations.db", false},
		{"valid absolute", "/data/stations.db", false},
		{"valid current dir", "stations.db", false},
		{"special :memory:", ":memory:", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &JSONConfig{
				Port: 4000, Env: "development", ApiKeys: []string{"test"}, RateLimit: 100,
				StationsDBPath: tt.path,
			}
			err := config.validate()
			if tt.shouldErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "stations-db-path")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestToAppConfig(t *testing.T) {
	jsonConfig := &JSONConfig{
		Port:      8080,
		Env:       "production",
		ApiKeys:   []string{"key1", "key2"},
		RateLimit: 50,
	}

	appConfig := jsonConfig.ToAppConfig()

	assert.Equal(t, 8080, appConfig.Port)
	assert.Equal(t, Production, appConfig.Env)
	assert.Equal(t, []string{"key1", "key2"}, appConfig.ApiKeys)
	assert.Equal(t, 50, appConfig.RateLimit)
	assert.True(t, appConfig.Verbose)
}

func TestToNavitiaConfig(t *testing.T) {
	jsonConfig := &JSONConfig{
		NavitiaFeed: NavitiaFeed{
			BaseURL:               "https://navitia.example.com/v1",
			Token:                 "tok",
			Coverage:              "sncf",
			DisruptionRefreshSecs: 90,
			RequestTimeoutSeconds: 15,
		},
	}

	cfg := jsonConfig.ToNavitiaConfig()
	assert.Equal(t, "https://navitia.example.com/v1", cfg.BaseURL)
	assert.Equal(t, "tok", cfg.Token)
	assert.Equal(t, "sncf", cfg.Coverage)
	assert.Equal(t, 90*time.Second, cfg.DisruptionRefreshInterval)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
}

func TestSetDefaults(t *testing.T) {
	config := &JSONConfig{}
	config.setDefaults()

	assert.Equal(t, 4000, config.Port)
	assert.Equal(t, "development", config.Env)
	assert.Equal(t, []string{"test"}, config.ApiKeys)
	assert.Equal(t, 100, config.RateLimit)
	assert.Equal(t, "https://api.navitia.io/v1", config.NavitiaFeed.BaseURL)
	assert.Equal(t, "sncf", config.NavitiaFeed.Coverage)
	assert.Equal(t, 120, config.NavitiaFeed.DisruptionRefreshSecs)
	assert.Equal(t, "./stations.db", config.StationsDBPath)
}

func TestSetDefaults_PartialConfig(t *testing.T) {
	config := &JSONConfig{
		Port:    8080,
		ApiKeys: []string{"custom-key"},
	}
	config.setDefaults()

	assert.Equal(t, 8080, config.Port)
	assert.Equal(t, []string{"custom-key"}, config.ApiKeys)
	assert.Equal(t, "development", config.Env)
	assert.Equal(t, 100, config.RateLimit)
}
