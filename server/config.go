package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// ErrConfiguration indicates an invalid or incomplete configuration.
var ErrConfiguration = errors.New("server: invalid configuration")

// Default tuning for live-session operations.
const (
	DefaultOperationTimeout = 10 * time.Second
	DefaultMaxRetries       = 3
	DefaultRetryDelay       = time.Second
	DefaultBreakerThreshold = 3
)

// Config holds the server configuration. The zero value is usable
// after applyDefaults; only invalid explicit settings fail Validate.
type Config struct {
	// Name identifies the server to MCP clients.
	Name string `toml:"name"`
	// Version is reported during the MCP handshake.
	Version string `toml:"version"`

	// StrudelWSURL is the DevTools websocket URL of the REPL tab.
	// Empty means no live session; playback tools report that.
	StrudelWSURL string `toml:"strudel_ws_url"`

	// OperationTimeout bounds each browser round trip.
	OperationTimeout Duration `toml:"operation_timeout"`
	// MaxRetries is the number of retries after the first attempt.
	// Zero selects the default.
	MaxRetries int `toml:"max_retries"`
	// RetryDelay is the base delay between attempts.
	RetryDelay Duration `toml:"retry_delay"`
	// ExponentialBackoff doubles the delay after each failure.
	ExponentialBackoff bool `toml:"exponential_backoff"`
	// BreakerThreshold is the failure count that opens the circuit.
	BreakerThreshold int `toml:"breaker_threshold"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
}

// Duration is a time.Duration that decodes from TOML strings such as
// "10s" or "1m30s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// LoadConfig reads a TOML config file and applies environment
// overrides. A missing file is not an error; defaults apply.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("%w: %s: %v", ErrConfiguration, path, err)
			}
		}
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overlays STRUDEL_MCP_* environment variables onto the
// file-provided values.
func (c *Config) applyEnv() {
	if v := os.Getenv("STRUDEL_MCP_WS_URL"); v != "" {
		c.StrudelWSURL = v
	}
	if v := os.Getenv("STRUDEL_MCP_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("STRUDEL_MCP_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.OperationTimeout = Duration{parsed}
		}
	}
}

// applyDefaults sets default values for unset optional fields.
func (c *Config) applyDefaults() {
	if c.Name == "" {
		c.Name = "strudel-mcp"
	}
	if c.Version == "" {
		c.Version = "dev"
	}
	if c.OperationTimeout.Duration == 0 {
		c.OperationTimeout = Duration{DefaultOperationTimeout}
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.RetryDelay.Duration == 0 {
		c.RetryDelay = Duration{DefaultRetryDelay}
	}
	if c.BreakerThreshold == 0 {
		c.BreakerThreshold = DefaultBreakerThreshold
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate checks for settings no deployment can mean.
func (c *Config) Validate() error {
	if c.MaxRetries < 0 {
		return fmt.Errorf("%w: max_retries must not be negative", ErrConfiguration)
	}
	if c.OperationTimeout.Duration < 0 {
		return fmt.Errorf("%w: operation_timeout must not be negative", ErrConfiguration)
	}
	if c.BreakerThreshold < 0 {
		return fmt.Errorf("%w: breaker_threshold must not be negative", ErrConfiguration)
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrConfiguration, c.LogLevel)
	}
	return nil
}
