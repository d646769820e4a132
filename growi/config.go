package growi

import (
	"os"
	"strings"
	"time"
)

// APIVersion selects which GROWI REST API dialect the client speaks.
type APIVersion string

const (
	APIVersionV1 APIVersion = "1"
	APIVersionV3 APIVersion = "3"
)

// Config holds GROWI connection settings. It is constructed once at startup
// and never mutated afterwards, so it is safe to share across concurrent
// tool calls.
type Config struct {
	// Domain is the GROWI base URL (e.g. https://wiki.example.com), without
	// a trailing slash.
	Domain string

	// APIToken authenticates every API call.
	APIToken string

	// APIVersion is the configured dialect ("1" or "3").
	APIVersion APIVersion

	// ConnectSID is the optional session cookie value required by some
	// deployments for binary attachment downloads.
	ConnectSID string

	// Timeout for API requests
	Timeout time.Duration

	// UserAgent identifies the client to the wiki
	UserAgent string
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	domain := strings.TrimSpace(os.Getenv("GROWI_DOMAIN"))
	if domain == "" {
		return nil, configErr("GROWI_DOMAIN environment variable is required")
	}

	token := strings.TrimSpace(os.Getenv("GROWI_API_TOKEN"))
	if token == "" {
		return nil, configErr("GROWI_API_TOKEN environment variable is required")
	}

	version := strings.TrimSpace(os.Getenv("GROWI_API_VERSION"))
	if version == "" {
		version = string(APIVersionV3)
	}

	timeout := 30 * time.Second
	if t := os.Getenv("GROWI_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			timeout = d
		}
	}

	userAgent := os.Getenv("GROWI_USER_AGENT")
	if userAgent == "" {
		userAgent = "growi-mcp-server/1.0 (github.com/aoyamat/growi-mcp-server)"
	}

	cfg := &Config{
		Domain:     normalizeDomain(domain),
		APIToken:   token,
		APIVersion: APIVersion(version),
		ConnectSID: strings.TrimSpace(os.Getenv("GROWI_CONNECT_SID")),
		Timeout:    timeout,
		UserAgent:  userAgent,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration before any network call is attempted.
// An unsupported API version is fatal here, not at call time.
func (c *Config) Validate() error {
	if c.Domain == "" {
		return configErr("GROWI domain is required")
	}
	if c.APIToken == "" {
		return configErr("GROWI API token is required")
	}
	switch c.APIVersion {
	case APIVersionV1, APIVersionV3:
		return nil
	default:
		return configErr("unsupported GROWI API version %q: must be \"1\" or \"3\"", c.APIVersion)
	}
}

// HasSessionCookie returns true if a connect.sid session credential is configured.
func (c *Config) HasSessionCookie() bool {
	return c.ConnectSID != ""
}

// normalizeDomain strips a trailing slash so paths can be appended directly.
func normalizeDomain(domain string) string {
	return strings.TrimRight(domain, "/")
}
