package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrInvalid marks configuration problems the user has to fix before a run
// can start, a missing API key above all. Callers match with errors.Is and
// point the user at the config file.
var ErrInvalid = errors.New("invalid configuration")

// Retry tunes the completion requester's backoff.
type Retry struct {
	MaxAttempts int     `toml:"max_attempts" mapstructure:"max_attempts"`
	BackoffBase float64 `toml:"backoff_base" mapstructure:"backoff_base"` // seconds
	BackoffMax  float64 `toml:"backoff_max" mapstructure:"backoff_max"`   // seconds
}

// Config is the resolved, validated configuration record. Immutable once
// loaded; every pipeline component reads it, none writes it.
type Config struct {
	APIKey         string  `toml:"api_key" mapstructure:"api_key"`
	Provider       string  `toml:"provider" mapstructure:"provider"`
	Model          string  `toml:"model" mapstructure:"model"`
	BaseURL        string  `toml:"base_url,omitempty" mapstructure:"base_url"`
	ContextPrefix  string  `toml:"context_prefix,omitempty" mapstructure:"context_prefix"`
	Suggestions    int     `toml:"suggestions" mapstructure:"suggestions"`
	MaxTokens      int     `toml:"max_tokens" mapstructure:"max_tokens"`
	Temperature    float32 `toml:"temperature" mapstructure:"temperature"`
	IgnoreSpace    bool    `toml:"ignore_space" mapstructure:"ignore_space"`
	DiffCharLimit  int     `toml:"diff_char_limit" mapstructure:"diff_char_limit"`
	RequestTimeout int     `toml:"request_timeout" mapstructure:"request_timeout"` // seconds
	Redact         bool    `toml:"redact" mapstructure:"redact"`
	Retry          Retry   `toml:"retry" mapstructure:"retry"`
}

// Timeout returns the per-request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

// DefaultConfigPath is ~/.config/commitgpt/config.toml, honoring
// XDG_CONFIG_HOME.
func DefaultConfigPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "commitgpt", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".config", "commitgpt", "config.toml"), nil
}

func defaults(v *viper.Viper) {
	v.SetDefault("provider", "openai")
	v.SetDefault("model", "gpt-4o-mini")
	v.SetDefault("suggestions", 5)
	v.SetDefault("max_tokens", 400)
	v.SetDefault("temperature", 0.7)
	v.SetDefault("ignore_space", true)
	v.SetDefault("diff_char_limit", 3800)
	v.SetDefault("request_timeout", 90)
	v.SetDefault("redact", true)
	v.SetDefault("retry.max_attempts", 3)
	v.SetDefault("retry.backoff_base", 1.0)
	v.SetDefault("retry.backoff_max", 8.0)
}

// Load resolves configuration with precedence env > file > defaults. path
// overrides the default config file location when non-empty. The returned
// record has every range validated; errors wrap ErrInvalid.
func Load(path string) (*Config, error) {
	v := viper.New()
	defaults(v)

	if path == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	// A missing file is fine, env and defaults still apply. A broken file
	// is not.
	if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrInvalid, path, err)
	}

	v.SetEnvPrefix("COMMITGPT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only surfaces env values through Unmarshal for keys viper
	// already knows about; keys without defaults need explicit binds.
	for _, key := range []string{"api_key", "base_url", "context_prefix"} {
		_ = v.BindEnv(key)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	// OPENAI_API_KEY wins over the file, matching how most CI setups inject
	// the key.
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.APIKey = key
	}

	if err := cfg.Validate(path); err != nil {
		return &cfg, err
	}
	return &cfg, nil
}

// Validate checks ranges and required fields. path is used only for the
// missing-key hint.
func (c *Config) Validate(path string) error {
	switch c.Provider {
	case "openai", "mock":
	default:
		return fmt.Errorf("%w: unknown provider %q (want \"openai\" or \"mock\")", ErrInvalid, c.Provider)
	}
	if c.Provider == "openai" && strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: no API key; add api_key = \"...\" to %s or set OPENAI_API_KEY", ErrInvalid, path)
	}
	if c.Suggestions < 1 || c.Suggestions > 10 {
		return fmt.Errorf("%w: suggestions must be within 1..10, got %d", ErrInvalid, c.Suggestions)
	}
	if c.MaxTokens < 1 || c.MaxTokens > 128000 {
		return fmt.Errorf("%w: max_tokens must be within 1..128000, got %d", ErrInvalid, c.MaxTokens)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("%w: temperature must be within 0..2, got %.2f", ErrInvalid, c.Temperature)
	}
	if c.DiffCharLimit < 1 {
		return fmt.Errorf("%w: diff_char_limit must be positive, got %d", ErrInvalid, c.DiffCharLimit)
	}
	if c.RequestTimeout < 1 {
		return fmt.Errorf("%w: request_timeout must be positive, got %d", ErrInvalid, c.RequestTimeout)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("%w: retry.max_attempts must be positive, got %d", ErrInvalid, c.Retry.MaxAttempts)
	}
	if c.Retry.BackoffMax < c.Retry.BackoffBase {
		return fmt.Errorf("%w: retry.backoff_max must be >= retry.backoff_base", ErrInvalid)
	}
	return nil
}
