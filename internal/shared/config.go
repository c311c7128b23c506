package shared

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

const defaultHelperTimeout = 10 * time.Second

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Helper      HelperConfig      `toml:"helper"`
	Database    DatabaseConfig    `toml:"database"`
	HTTP        HTTPConfig        `toml:"http"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	QQ QQConfig `toml:"qq"`
}

// QQConfig holds the account number and session cookie sent with authenticated calls.
type QQConfig struct {
	UIN    string `toml:"uin"`
	Cookie string `toml:"cookie"`
}

// HelperConfig describes the external sign/encrypt/decrypt program.
type HelperConfig struct {
	Command string   `toml:"command"`
	Args    []string `toml:"args"`
	Timeout string   `toml:"timeout"`
}

// TimeoutDuration parses Timeout, falling back to 10s when empty or invalid.
func (h HelperConfig) TimeoutDuration() time.Duration {
	if d, err := time.ParseDuration(h.Timeout); err == nil && d > 0 {
		return d
	}
	return defaultHelperTimeout
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// HTTPConfig contains outgoing request settings.
type HTTPConfig struct {
	UserAgent string `toml:"user_agent"`
	Timeout   string `toml:"timeout"`
}

// TimeoutDuration parses Timeout. Zero means the client has no timeout.
func (h HTTPConfig) TimeoutDuration() (time.Duration, error) {
	if h.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(h.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: http.timeout %q: %v", ErrInvalidConfig, h.Timeout, err)
	}
	return d, nil
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Values missing from the file keep the defaults of the embedded example config.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SaveConfig encodes config as TOML and writes it to path, replacing any existing file.
//
// The file holds a session cookie so it is written owner-readable only.
func SaveConfig(path string, config *Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
