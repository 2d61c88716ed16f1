package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != "1.0" {
		t.Errorf("Expected version 1.0, got %s", cfg.Version)
	}
	if cfg.Server.Endpoint != "http://localhost:5000" {
		t.Errorf("Expected endpoint http://localhost:5000, got %s", cfg.Server.Endpoint)
	}
	if cfg.Server.SolvePath != "/solve_maze" || cfg.Server.FieldName != "mazeImage" {
		t.Errorf("Unexpected upload target: %s %s", cfg.Server.SolvePath, cfg.Server.FieldName)
	}
	if cfg.Server.Timeout != 0 {
		t.Errorf("Expected no default timeout, got %v", cfg.Server.Timeout)
	}
	if !cfg.Drop.AutoSolve || cfg.Drop.Settle != 500*time.Millisecond {
		t.Errorf("Unexpected drop defaults: %+v", cfg.Drop)
	}
	if !cfg.Preview.Enabled || cfg.Preview.ThumbnailWidth != 48 {
		t.Errorf("Unexpected preview defaults: %+v", cfg.Preview)
	}
	if cfg.Output.DefaultFormat != "text" {
		t.Errorf("Expected output format text, got %s", cfg.Output.DefaultFormat)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "https endpoint",
			mutate:  func(c *Config) { c.Server.Endpoint = "https://mazes.example.com" },
			wantErr: false,
		},
		{
			name:    "non-http endpoint",
			mutate:  func(c *Config) { c.Server.Endpoint = "ftp://localhost" },
			wantErr: true,
			errMsg:  "must be an http or https URL",
		},
		{
			name:    "endpoint without host",
			mutate:  func(c *Config) { c.Server.Endpoint = "http://" },
			wantErr: true,
			errMsg:  "missing host",
		},
		{
			name:    "relative solve path",
			mutate:  func(c *Config) { c.Server.SolvePath = "solve_maze" },
			wantErr: true,
			errMsg:  "solve_path must start with /",
		},
		{
			name:    "empty field name",
			mutate:  func(c *Config) { c.Server.FieldName = " " },
			wantErr: true,
			errMsg:  "field_name must not be empty",
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Server.Timeout = -time.Second },
			wantErr: true,
			errMsg:  "timeout must be non-negative",
		},
		{
			name:    "negative settle",
			mutate:  func(c *Config) { c.Drop.Settle = -time.Second },
			wantErr: true,
			errMsg:  "settle must be non-negative",
		},
		{
			name:    "zero thumbnail width",
			mutate:  func(c *Config) { c.Preview.ThumbnailWidth = 0 },
			wantErr: true,
			errMsg:  "thumbnail_width must be greater than 0",
		},
		{
			name:    "invalid output format",
			mutate:  func(c *Config) { c.Output.DefaultFormat = "invalid" },
			wantErr: true,
			errMsg:  "invalid output format: invalid (must be one of: json, text, markdown, csv)",
		},
		{
			name:    "invalid color mode",
			mutate:  func(c *Config) { c.Output.ColorMode = "sometimes" },
			wantErr: true,
			errMsg:  "invalid color mode",
		},
		{
			name:    "invalid theme",
			mutate:  func(c *Config) { c.Output.Theme = "neon" },
			wantErr: true,
			errMsg:  "invalid theme",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected validation error, but got none")
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("Expected error containing %q, got %q", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestSampleConfigsAreValid(t *testing.T) {
	for name, content := range map[string]string{
		"full":    SampleConfig(),
		"minimal": MinimalSampleConfig(),
	} {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			loader := NewLoader()
			path := writeConfig(t, "sample.yaml", content)
			if err := loader.loadFromFile(cfg, path); err != nil {
				t.Fatalf("Sample config does not parse: %v", err)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("Sample config is invalid: %v", err)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"relative path", "./config.yaml", "./config.yaml"},
		{"absolute path", "/etc/mazesolve/config.yaml", "/etc/mazesolve/config.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := ExpandPath(tt.input); result != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, result)
			}
		})
	}

	t.Run("home directory path", func(t *testing.T) {
		input := "~/.config/mazesolve/config.yaml"
		if result := expandPath(input); result == input {
			t.Errorf("Expected path to be expanded, but got same path")
		}
	})
}

func TestGetConfigPaths(t *testing.T) {
	paths := GetConfigPaths()
	if len(paths) != 3 {
		t.Fatalf("Expected 3 config paths, got %d", len(paths))
	}
	if paths[0] != "./.mazesolve.yaml" {
		t.Errorf("Expected project config first, got %s", paths[0])
	}
	if strings.HasPrefix(paths[1], "~") {
		t.Errorf("Expected user config path to be expanded, got %s", paths[1])
	}
	if paths[2] != "/etc/mazesolve/config.yaml" {
		t.Errorf("Expected system config last, got %s", paths[2])
	}
}
