// Package config loads gitkit's user configuration: the git timeout, log rotation
// settings and the MCP transport table.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides the default config file location
const EnvConfigPath = "GITKIT_CONFIG"

// TransportHTTP is the only transport type gitkit knows how to build
const TransportHTTP = "http"

const (
	// DefaultGitTimeout matches the git service default
	DefaultGitTimeout = 5 * time.Minute
	// DefaultTransportTimeout is used for transports without a timeout
	DefaultTransportTimeout = 30 * time.Second
)

// Config is the root of the configuration file
type Config struct {
	Git GitConfig `toml:"git" yaml:"git" json:"git"`
	Log LogConfig `toml:"log" yaml:"log" json:"log"`
	MCP MCPConfig `toml:"mcp" yaml:"mcp" json:"mcp"`
}

// GitConfig configures the git service
type GitConfig struct {
	Timeout Duration `toml:"timeout" yaml:"timeout" json:"timeout"`
}

// LogConfig configures the rotating log file. Zero values fall back to the
// GITKIT_LOG_* environment variables and then to built-in defaults.
type LogConfig struct {
	File       string `toml:"file,omitempty" yaml:"file,omitempty" json:"file,omitempty"`
	MaxSize    int    `toml:"max_size,omitempty" yaml:"max_size,omitempty" json:"max_size,omitempty"`
	MaxBackups int    `toml:"max_backups,omitempty" yaml:"max_backups,omitempty" json:"max_backups,omitempty"`
	MaxAge     int    `toml:"max_age,omitempty" yaml:"max_age,omitempty" json:"max_age,omitempty"`
}

// MCPConfig holds the transport table keyed by transport name
type MCPConfig struct {
	Transports map[string]TransportConfig `toml:"transports" yaml:"transports" json:"transports"`
}

// TransportConfig describes one MCP server
type TransportConfig struct {
	Type    string            `toml:"type" yaml:"type" json:"type"`
	URL     string            `toml:"url" yaml:"url" json:"url"`
	Headers map[string]string `toml:"headers,omitempty" yaml:"headers,omitempty" json:"headers,omitempty"`
	Timeout Duration          `toml:"timeout,omitempty" yaml:"timeout,omitempty" json:"timeout,omitempty"`
	// Verify disables TLS certificate verification when explicitly false
	Verify *bool `toml:"verify,omitempty" yaml:"verify,omitempty" json:"verify,omitempty"`
	// Token is sent as a bearer token. ${VAR} references are expanded.
	Token string `toml:"token,omitempty" yaml:"token,omitempty" json:"token,omitempty"`
}

// VerifyTLS reports whether TLS certificates should be verified
func (t TransportConfig) VerifyTLS() bool {
	return t.Verify == nil || *t.Verify
}

// TimeoutOrDefault returns the configured timeout or DefaultTransportTimeout
func (t TransportConfig) TimeoutOrDefault() time.Duration {
	if t.Timeout.Duration <= 0 {
		return DefaultTransportTimeout
	}
	return t.Timeout.Duration
}

// ExpandedToken returns Token with environment references expanded
func (t TransportConfig) ExpandedToken() string {
	return os.ExpandEnv(t.Token)
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Git: GitConfig{Timeout: Duration{DefaultGitTimeout}},
		MCP: MCPConfig{Transports: map[string]TransportConfig{}},
	}
}

// DefaultPath returns $GITKIT_CONFIG or ~/.config/gitkit/config.toml
func DefaultPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "gitkit.toml"
	}
	return filepath.Join(home, ".config", "gitkit", "config.toml")
}

// Load reads the configuration at path. An empty path means DefaultPath; a missing
// file at the default location yields Default, while a missing explicit path is an error.
// The format is chosen by extension: .yaml and .yml are YAML, anything else TOML.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	default:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if cfg.Git.Timeout.Duration == 0 {
		cfg.Git.Timeout = Duration{DefaultGitTimeout}
	}
	if cfg.MCP.Transports == nil {
		cfg.MCP.Transports = map[string]TransportConfig{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks timeouts and the transport table
func (c *Config) Validate() error {
	var errs []error
	if c.Git.Timeout.Duration <= 0 {
		errs = append(errs, fmt.Errorf("git.timeout must be positive, got %s", c.Git.Timeout))
	}
	if c.Log.MaxSize < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAge < 0 {
		errs = append(errs, errors.New("log rotation settings must not be negative"))
	}

	for _, name := range c.TransportNames() {
		t := c.MCP.Transports[name]
		if t.Type != TransportHTTP {
			errs = append(errs, fmt.Errorf("mcp transport [%s]: unsupported type %q", name, t.Type))
			continue
		}
		u, err := url.Parse(t.URL)
		if t.URL == "" || err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("mcp transport [%s]: invalid url %q", name, t.URL))
		}
		if t.Timeout.Duration < 0 {
			errs = append(errs, fmt.Errorf("mcp transport [%s]: timeout must not be negative", name))
		}
	}
	return errors.Join(errs...)
}

// TransportNames returns the configured transport names in sorted order
func (c *Config) TransportNames() []string {
	names := make([]string, 0, len(c.MCP.Transports))
	for name := range c.MCP.Transports {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EncodeTOML renders the configuration as TOML
func (c *Config) EncodeTOML() (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.String(), nil
}
