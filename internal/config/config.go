package config

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	ModeHTTP = "http"
	ModeMock = "mock"

	envBaseURL = "SKILLSWAP_API_URL"
	envMode    = "SKILLSWAP_API_MODE"
	envTimeout = "SKILLSWAP_API_TIMEOUT"

	fileName = "skillswap.yml"
)

// Config models skillswap.yml.
type Config struct {
	API struct {
		BaseURL string `yaml:"base_url"`
		Mode    string `yaml:"mode"`
		Timeout string `yaml:"timeout"`
	} `yaml:"api"`
	Identity Identity `yaml:"identity"`
	Mock     struct {
		Workspace string `yaml:"workspace"`
		Addr      string `yaml:"addr"`
		Seed      bool   `yaml:"seed"`
	} `yaml:"mock"`
}

// Identity is the synthetic user installed when the session starts.
type Identity struct {
	ID       string `yaml:"id"`
	FullName string `yaml:"full_name"`
	Email    string `yaml:"email"`
	Skill    string `yaml:"skill"`
}

// Default returns the config used when no file exists.
func Default() *Config {
	var cfg Config
	_ = yaml.NewDecoder(bytes.NewBufferString(defaultTemplate)).Decode(&cfg)
	return &cfg
}

// Path returns the config file path for a directory.
func Path(dir string) string {
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, fileName)
}

// Load reads path if it exists, applies SKILLSWAP_* overrides and validates.
// An empty path means defaults plus environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			cfg, err = decode(data)
			if err != nil {
				return nil, err
			}
		case os.IsNotExist(err):
		default:
			return nil, err
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromYAML parses and validates config from raw YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	cfg, err := decode(data)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode overlays data on the defaults so partial files stay usable.
func decode(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid config yaml: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv(envBaseURL); ok && strings.TrimSpace(v) != "" {
		c.API.BaseURL = strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv(envMode); ok && strings.TrimSpace(v) != "" {
		c.API.Mode = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := os.LookupEnv(envTimeout); ok && strings.TrimSpace(v) != "" {
		c.API.Timeout = strings.TrimSpace(v)
	}
}

// Validate ensures the config meets required structure.
func (c *Config) Validate() error {
	switch c.API.Mode {
	case ModeHTTP:
		if c.API.BaseURL == "" {
			return fmt.Errorf("config.api.base_url is required in http mode")
		}
		u, err := url.Parse(c.API.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config.api.base_url must be an absolute url, got %q", c.API.BaseURL)
		}
	case ModeMock:
	default:
		return fmt.Errorf("config.api.mode must be %q or %q, got %q", ModeHTTP, ModeMock, c.API.Mode)
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}
	if c.Identity.ID == "" {
		return fmt.Errorf("config.identity.id is required")
	}
	return nil
}

// Timeout parses api.timeout. Bare integers are seconds.
func (c *Config) Timeout() (time.Duration, error) {
	raw := strings.TrimSpace(c.API.Timeout)
	if raw == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("config.api.timeout must not be negative")
		}
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config.api.timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("config.api.timeout must not be negative")
	}
	return d, nil
}

// ToYAML renders the config.
func (c *Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// GenerateDefault returns default config YAML.
func GenerateDefault() string {
	return defaultTemplate
}

const defaultTemplate = `api:
  base_url: http://localhost:8000
  mode: http
  timeout: 10s

identity:
  id: test-user-123
  full_name: Test User
  email: test@example.com
  skill: general

mock:
  workspace: .
  addr: 127.0.0.1:8000
  seed: true
`
