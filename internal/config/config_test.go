package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Defaults()
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "defaults are valid",
			modify:  func(*Config) {},
			wantErr: false,
		},
		{
			name: "invalid port - non-numeric",
			modify: func(c *Config) {
				c.Port = "abc"
			},
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name: "invalid port - out of range low",
			modify: func(c *Config) {
				c.Port = "0"
			},
			wantErr:     true,
			errorString: "invalid port 0: must be between 1 and 65535",
		},
		{
			name: "invalid port - out of range high",
			modify: func(c *Config) {
				c.Port = "70000"
			},
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name: "empty API base URL",
			modify: func(c *Config) {
				c.APIBaseURL = ""
			},
			wantErr:     true,
			errorString: "API base URL cannot be empty",
		},
		{
			name: "API base URL with unsupported scheme",
			modify: func(c *Config) {
				c.APIBaseURL = "ftp://expenses.local"
			},
			wantErr:     true,
			errorString: "invalid API base URL scheme 'ftp': must be 'http' or 'https'",
		},
		{
			name: "API base URL without host",
			modify: func(c *Config) {
				c.APIBaseURL = "http://"
			},
			wantErr:     true,
			errorString: "missing host",
		},
		{
			name: "https API base URL with path",
			modify: func(c *Config) {
				c.APIBaseURL = "https://expenses.example.com/v1"
			},
			wantErr: false,
		},
		{
			name: "negative API timeout",
			modify: func(c *Config) {
				c.APITimeout = -time.Second
			},
			wantErr:     true,
			errorString: "invalid API timeout -1s: must not be negative",
		},
		{
			name: "invalid log level",
			modify: func(c *Config) {
				c.LogLevel = "verbose"
			},
			wantErr:     true,
			errorString: "invalid log level 'verbose'",
		},
		{
			name: "log level is case insensitive",
			modify: func(c *Config) {
				c.LogLevel = "DEBUG"
			},
			wantErr: false,
		},
		{
			name: "tracing without service name",
			modify: func(c *Config) {
				c.TracingEnabled = true
				c.ServiceName = ""
			},
			wantErr:     true,
			errorString: "service name cannot be empty when tracing is enabled",
		},
		{
			name: "empty currency symbol is allowed",
			modify: func(c *Config) {
				c.CurrencySymbol = ""
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(&cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if tt.wantErr && tt.errorString != "" {
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Config.Validate() error = %v, want error containing %v", err, tt.errorString)
				}
			}
		})
	}
}

func TestConfig_ValidateAggregatesErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Port = "abc"
	cfg.LogLevel = "loud"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Config.Validate() expected error")
	}
	msg := err.Error()
	if !strings.HasPrefix(msg, "configuration validation failed:\n- ") {
		t.Errorf("unexpected error format: %q", msg)
	}
	if strings.Count(msg, "\n- ") != 2 {
		t.Errorf("expected two problems listed, got %q", msg)
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "PORT", "API_BASE_URL", "API_TIMEOUT", "CURRENCY_SYMBOL",
		"LOG_LEVEL", "LOG_FILE", "TRACING_ENABLED", "SERVICE_NAME",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if cfg.Port != "8081" {
			t.Errorf("Load() Port = %v, want 8081", cfg.Port)
		}
		if cfg.APIBaseURL != "http://localhost:5000" {
			t.Errorf("Load() APIBaseURL = %v, want http://localhost:5000", cfg.APIBaseURL)
		}
		if cfg.APITimeout != 0 {
			t.Errorf("Load() APITimeout = %v, want 0", cfg.APITimeout)
		}
		if cfg.CurrencySymbol != "₹" {
			t.Errorf("Load() CurrencySymbol = %v, want ₹", cfg.CurrencySymbol)
		}
		if cfg.LogLevel != "info" {
			t.Errorf("Load() LogLevel = %v, want info", cfg.LogLevel)
		}
		if cfg.TracingEnabled {
			t.Errorf("Load() TracingEnabled = true, want false")
		}
		if cfg.Addr() != ":8081" {
			t.Errorf("Load() Addr = %v, want :8081", cfg.Addr())
		}
	})

	t.Run("environment variables", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PORT", "9090")
		t.Setenv("API_BASE_URL", "https://api.example.com")
		t.Setenv("API_TIMEOUT", "15s")
		t.Setenv("CURRENCY_SYMBOL", "€")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("TRACING_ENABLED", "true")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if cfg.Port != "9090" {
			t.Errorf("Load() Port = %v, want 9090", cfg.Port)
		}
		if cfg.APIBaseURL != "https://api.example.com" {
			t.Errorf("Load() APIBaseURL = %v, want https://api.example.com", cfg.APIBaseURL)
		}
		if cfg.APITimeout != 15*time.Second {
			t.Errorf("Load() APITimeout = %v, want 15s", cfg.APITimeout)
		}
		if cfg.CurrencySymbol != "€" {
			t.Errorf("Load() CurrencySymbol = %v, want €", cfg.CurrencySymbol)
		}
		if cfg.LogLevel != "debug" {
			t.Errorf("Load() LogLevel = %v, want debug", cfg.LogLevel)
		}
		if !cfg.TracingEnabled {
			t.Errorf("Load() TracingEnabled = false, want true")
		}
	})

	t.Run("timeout in bare seconds", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("API_TIMEOUT", "7")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.APITimeout != 7*time.Second {
			t.Errorf("Load() APITimeout = %v, want 7s", cfg.APITimeout)
		}
	})

	t.Run("unparseable values fall back", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("API_TIMEOUT", "soon")
		t.Setenv("TRACING_ENABLED", "maybe")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.APITimeout != 0 {
			t.Errorf("Load() APITimeout = %v, want 0", cfg.APITimeout)
		}
		if cfg.TracingEnabled {
			t.Errorf("Load() TracingEnabled = true, want false")
		}
	})
}

func TestLoad_ConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "expensedesk.yaml")
	content := `
port: "9191"
api_base_url: http://expenses.internal:5000
api_timeout: 3s
currency_symbol: "$"
log_level: warn
service_name: desk
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	t.Run("file values", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CONFIG_FILE", path)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Port != "9191" {
			t.Errorf("Load() Port = %v, want 9191", cfg.Port)
		}
		if cfg.APIBaseURL != "http://expenses.internal:5000" {
			t.Errorf("Load() APIBaseURL = %v", cfg.APIBaseURL)
		}
		if cfg.APITimeout != 3*time.Second {
			t.Errorf("Load() APITimeout = %v, want 3s", cfg.APITimeout)
		}
		if cfg.CurrencySymbol != "$" {
			t.Errorf("Load() CurrencySymbol = %v, want $", cfg.CurrencySymbol)
		}
		if cfg.LogLevel != "warn" {
			t.Errorf("Load() LogLevel = %v, want warn", cfg.LogLevel)
		}
		if cfg.ServiceName != "desk" {
			t.Errorf("Load() ServiceName = %v, want desk", cfg.ServiceName)
		}
		if cfg.ConfigFile != path {
			t.Errorf("Load() ConfigFile = %v, want %v", cfg.ConfigFile, path)
		}
	})

	t.Run("environment overrides file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CONFIG_FILE", path)
		t.Setenv("PORT", "7070")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Port != "7070" {
			t.Errorf("Load() Port = %v, want 7070", cfg.Port)
		}
		if cfg.LogLevel != "warn" {
			t.Errorf("Load() LogLevel = %v, want warn", cfg.LogLevel)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CONFIG_FILE", filepath.Join(tmpDir, "missing.yaml"))

		if _, err := Load(); err == nil {
			t.Error("Load() expected error for missing config file")
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		bad := filepath.Join(tmpDir, "bad.yaml")
		if err := os.WriteFile(bad, []byte("port: [unterminated"), 0644); err != nil {
			t.Fatalf("Failed to create bad config file: %v", err)
		}
		clearEnv(t)
		t.Setenv("CONFIG_FILE", bad)

		if _, err := Load(); err == nil {
			t.Error("Load() expected error for malformed config file")
		}
	})
}
