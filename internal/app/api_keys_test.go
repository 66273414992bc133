package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"explorer.navitia.org/internal/appconf"
)

func TestBlankKeyIsInvalid(t *testing.T) {
	app := &Application{
		Config: appconf.Config{ApiKeys: []string{"key"}},
	}
	assert.True(t, app.IsInvalidAPIKey(""))
}

func TestIsInvalidAPIKey(t *testing.T) {
	tests := []struct {
		name          string
		configKeys    []string
		testKey       string
		shouldBeValid bool
	}{
		{"Valid key matches configured key", []string{"test-key", "another-key"}, "test-key", true},
		{"Valid key matches second configured key", []string{"test-key", "another-key"}, "another-key", true},
		{"Invalid key does not match any configured key", []string{"test-key"}, "wrong-key", false},
		{"Key with whitespace does not match trimmed key", []string{"test-key"}, " test-key ", false},
		{"Case sensitive key comparison", []string{"TestKey"}, "testkey", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := &Application{
				Config: appconf.Config{ApiKeys: tt.configKeys},
			}
			result := app.IsInvalidAPIKey(tt.testKey)
			assert.Equal(t, !tt.shouldBeValid, result)
		})
	}
}

func TestRequestHasInvalidAPIKey(t *testing.T) {
	app := &Application{
		Config: appconf.Config{ApiKeys: []string{"test-key"}},
	}

	req := httptest.NewRequest(http.MethodGet, "/?key=test-key", nil)
	assert.False(t, app.RequestHasInvalidAPIKey(req))

	req = httptest.NewRequest(http.MethodGet, "/?key=wrong", nil)
	assert.True(t, app.RequestHasInvalidAPIKey(req))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	assert.True(t, app.RequestHasInvalidAPIKey(req))
}
