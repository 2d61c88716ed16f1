package solver

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config holds upload endpoint settings
type Config struct {
	// BaseURL is the server hosting the solve endpoint
	BaseURL string `json:"base_url"`

	// SolvePath is the upload endpoint path
	SolvePath string `json:"solve_path"`

	// FieldName is the multipart field carrying the image
	FieldName string `json:"field_name"`

	// Timeout for a solve round trip; zero waits indefinitely
	Timeout time.Duration `json:"timeout"`

	// UserAgent sent with every request
	UserAgent string `json:"user_agent"`
}

// DefaultConfig returns the settings of a locally running solver
func DefaultConfig() *Config {
	return &Config{
		BaseURL:   "http://localhost:5000",
		SolvePath: "/solve_maze",
		FieldName: "mazeImage",
		Timeout:   0,
		UserAgent: "mazesolve",
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("base URL is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base URL must use http or https, got %q", u.Scheme)
	}
	if !strings.HasPrefix(c.SolvePath, "/") {
		return fmt.Errorf("solve path must start with /")
	}
	if c.FieldName == "" {
		return fmt.Errorf("field name is required")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}
	return nil
}
