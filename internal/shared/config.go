package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// APIKeyEnv overrides [GeminiConfig.APIKey] when set.
const APIKeyEnv = "GENERATIVE_LANGUAGE_API_KEY"

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Translator TranslatorConfig `toml:"translator"`
	Server     ServerConfig     `toml:"server"`
	Gemini     GeminiConfig     `toml:"gemini"`
	Export     ExportConfig     `toml:"export"`
}

// TranslatorConfig contains settings for the client side of the translation pipeline.
type TranslatorConfig struct {
	Endpoint        string `toml:"endpoint"`
	TimeoutMS       int    `toml:"timeout_ms"`
	DebounceMS      int    `toml:"debounce_ms"`
	IndicatorMS     int    `toml:"indicator_ms"`
	DefaultLanguage string `toml:"default_language"`
}

// Timeout is the hard budget for a single translation request.
func (t TranslatorConfig) Timeout() time.Duration { return time.Duration(t.TimeoutMS) * time.Millisecond }

// Debounce is the quiet period before a submitted request is sent.
func (t TranslatorConfig) Debounce() time.Duration {
	return time.Duration(t.DebounceMS) * time.Millisecond
}

// Indicator is the cadence of the in-progress indicator.
func (t TranslatorConfig) Indicator() time.Duration {
	return time.Duration(t.IndicatorMS) * time.Millisecond
}

// ServerConfig contains HTTP settings for the translation endpoint.
type ServerConfig struct {
	Host      string  `toml:"host"`
	Port      int     `toml:"port"`
	RateLimit float64 `toml:"rate_limit"`
	Burst     int     `toml:"burst"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// GeminiConfig contains generative language API settings used by the endpoint.
type GeminiConfig struct {
	APIKey           string `toml:"api_key"`
	Model            string `toml:"model"`
	MaxRetries       int    `toml:"max_retries"`
	InitialBackoffMS int    `toml:"initial_backoff_ms"`
}

// InitialBackoff is the delay before the first retry.
func (g GeminiConfig) InitialBackoff() time.Duration {
	return time.Duration(g.InitialBackoffMS) * time.Millisecond
}

// ExportConfig contains defaults for merged document exports.
type ExportConfig struct {
	Format       string `toml:"format"`
	FirstBold    bool   `toml:"first_bold"`
	FirstItalic  bool   `toml:"first_italic"`
	SecondBold   bool   `toml:"second_bold"`
	SecondItalic bool   `toml:"second_italic"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read config file: %v", ErrMissingConfig, err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
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

// Validate checks the values that would otherwise fail at request time.
func (c *Config) Validate() error {
	switch {
	case c.Translator.Endpoint == "":
		return fmt.Errorf("%w: translator.endpoint is empty", ErrInvalidConfig)
	case c.Translator.TimeoutMS <= 0:
		return fmt.Errorf("%w: translator.timeout_ms must be positive", ErrInvalidConfig)
	case c.Translator.DebounceMS < 0:
		return fmt.Errorf("%w: translator.debounce_ms must not be negative", ErrInvalidConfig)
	case c.Translator.IndicatorMS <= 0:
		return fmt.Errorf("%w: translator.indicator_ms must be positive", ErrInvalidConfig)
	case c.Server.Port <= 0 || c.Server.Port > 65535:
		return fmt.Errorf("%w: server.port %d out of range", ErrInvalidConfig, c.Server.Port)
	}
	return nil
}

// ResolveAPIKey returns the API key from the environment, falling back to the config file.
func (c *Config) ResolveAPIKey() string {
	if key := os.Getenv(APIKeyEnv); key != "" {
		return key
	}
	return c.Gemini.APIKey
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
