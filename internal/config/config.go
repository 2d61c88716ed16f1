package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config holds the complete application configuration
type Config struct {
	Version string        `yaml:"version" json:"version"`
	Server  ServerConfig  `yaml:"server" json:"server"`
	Drop    DropConfig    `yaml:"drop" json:"drop"`
	Preview PreviewConfig `yaml:"preview" json:"preview"`
	Output  OutputConfig  `yaml:"output" json:"output"`
}

// ServerConfig configures the maze solving endpoint
type ServerConfig struct {
	Endpoint  string        `yaml:"endpoint" json:"endpoint"`     // base URL of the solver server
	SolvePath string        `yaml:"solve_path" json:"solve_path"` // upload path under the endpoint
	FieldName string        `yaml:"field_name" json:"field_name"` // multipart field carrying the image
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`       // 0 waits for the server indefinitely
	UserAgent string        `yaml:"user_agent" json:"user_agent"`
}

// DropConfig configures the directory drop region
type DropConfig struct {
	Directory string        `yaml:"directory" json:"directory"`   // watched directory, empty disables
	Settle    time.Duration `yaml:"settle" json:"settle"`         // quiet period before a file counts as dropped
	AutoSolve bool          `yaml:"auto_solve" json:"auto_solve"` // submit every accepted drop
}

// PreviewConfig configures image previews
type PreviewConfig struct {
	Enabled        bool `yaml:"enabled" json:"enabled"`
	ThumbnailWidth int  `yaml:"thumbnail_width" json:"thumbnail_width"` // terminal cells
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // text|json|markdown|csv
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Theme         string `yaml:"theme" json:"theme"`                   // default|high-contrast|minimal
	Verbose       bool   `yaml:"verbose" json:"verbose"`
	DownloadDir   string `yaml:"download_dir" json:"download_dir"` // where solution GIFs are saved
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Server: ServerConfig{
			Endpoint:  "http://localhost:5000",
			SolvePath: "/solve_maze",
			FieldName: "mazeImage",
			Timeout:   0,
			UserAgent: "mazesolve",
		},
		Drop: DropConfig{
			Directory: "",
			Settle:    500 * time.Millisecond,
			AutoSolve: true,
		},
		Preview: PreviewConfig{
			Enabled:        true,
			ThumbnailWidth: 48,
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			ColorMode:     "auto",
			Theme:         "default",
			Verbose:       false,
			DownloadDir:   ".",
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateServerConfig(); err != nil {
		return err
	}
	if err := c.validateDropConfig(); err != nil {
		return err
	}
	if err := c.validatePreviewConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	return nil
}

// validateServerConfig validates endpoint-related configuration
func (c *Config) validateServerConfig() error {
	u, err := url.Parse(c.Server.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid server endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid server endpoint: %s (must be an http or https URL)", c.Server.Endpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid server endpoint: %s (missing host)", c.Server.Endpoint)
	}
	if !strings.HasPrefix(c.Server.SolvePath, "/") {
		return fmt.Errorf("solve_path must start with /")
	}
	if strings.TrimSpace(c.Server.FieldName) == "" {
		return fmt.Errorf("field_name must not be empty")
	}
	if c.Server.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}
	return nil
}

// validateDropConfig validates drop region configuration
func (c *Config) validateDropConfig() error {
	if c.Drop.Settle < 0 {
		return fmt.Errorf("settle must be non-negative")
	}
	return nil
}

// validatePreviewConfig validates preview configuration
func (c *Config) validatePreviewConfig() error {
	if c.Preview.ThumbnailWidth < 1 {
		return fmt.Errorf("thumbnail_width must be greater than 0")
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"json":     true,
			"text":     true,
			"markdown": true,
			"csv":      true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: json, text, markdown, csv)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	if c.Output.Theme != "" {
		validThemes := map[string]bool{
			"default":       true,
			"high-contrast": true,
			"minimal":       true,
		}
		if !validThemes[c.Output.Theme] {
			return fmt.Errorf("invalid theme: %s (must be one of: default, high-contrast, minimal)", c.Output.Theme)
		}
	}
	return nil
}
