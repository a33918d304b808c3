// Package config loads algebrix settings from an optional YAML file and
// ALGEBRIX_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/algebrix/algebrix/internal/llm"
	"github.com/algebrix/algebrix/internal/store"
)

// EnvPrefix is prepended to every environment variable.
const EnvPrefix = "ALGEBRIX"

type Config struct {
	DB      string        `mapstructure:"db"`
	Log     LogConfig     `mapstructure:"log"`
	Server  ServerConfig  `mapstructure:"server"`
	Tutor   TutorConfig   `mapstructure:"tutor"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	LLM     llm.Config    `mapstructure:"llm"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Dir   string `mapstructure:"dir"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	Mode string `mapstructure:"mode"`
}

type TutorConfig struct {
	HintThreshold int     `mapstructure:"hint_threshold"`
	RootTolerance float64 `mapstructure:"root_tolerance"`
	Resume        bool    `mapstructure:"resume"`
}

type CatalogConfig struct {
	// Path to a catalog JSON file. Empty uses the embedded catalog.
	Path string `mapstructure:"path"`
}

// keys lists every setting that may come from the environment.
var keys = []string{
	"db",
	"log.level", "log.dir",
	"server.addr", "server.mode",
	"tutor.hint_threshold", "tutor.root_tolerance", "tutor.resume",
	"catalog.path",
	"llm.provider", "llm.timeout",
	"llm.anthropic.api_key", "llm.anthropic.model",
	"llm.openai.api_key", "llm.openai.model", "llm.openai.base_url",
	"llm.gemini.api_key", "llm.gemini.model",
	"llm.openrouter.api_key", "llm.openrouter.model", "llm.openrouter.base_url",
	"llm.retry.max_attempts", "llm.retry.initial_wait", "llm.retry.max_wait", "llm.retry.multiplier",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db", "")
	v.SetDefault("log.level", "info")
	logDir := "logs"
	if dir, err := store.DataDir(); err == nil {
		logDir = filepath.Join(dir, "logs")
	}
	v.SetDefault("log.dir", logDir)
	v.SetDefault("server.addr", ":5001")
	v.SetDefault("server.mode", "release")
	v.SetDefault("tutor.hint_threshold", 3)
	v.SetDefault("tutor.root_tolerance", 0.01)
	v.SetDefault("tutor.resume", true)
	v.SetDefault("catalog.path", "")

	d := llm.DefaultConfig()
	v.SetDefault("llm.provider", d.Provider)
	v.SetDefault("llm.timeout", d.Timeout)
	v.SetDefault("llm.anthropic.model", d.Anthropic.Model)
	v.SetDefault("llm.openai.model", d.OpenAI.Model)
	v.SetDefault("llm.gemini.model", d.Gemini.Model)
	v.SetDefault("llm.openrouter.model", d.OpenRouter.Model)
	v.SetDefault("llm.retry.max_attempts", d.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.Retry.Multiplier)
}

// Load reads configuration. An explicit path must exist; otherwise a
// config.yaml is looked up in the user config dir and the working directory
// and skipped when absent.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir())
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("bind %s: %w", k, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.LLM, _ = cfg.LLM.Discover()
	return &cfg, nil
}

// Validate checks value ranges. LLM settings are checked when a provider is built.
func (c *Config) Validate() error {
	if c.Tutor.HintThreshold < 1 {
		return fmt.Errorf("tutor.hint_threshold must be at least 1, got %d", c.Tutor.HintThreshold)
	}
	if c.Tutor.RootTolerance < 0 {
		return fmt.Errorf("tutor.root_tolerance must not be negative, got %v", c.Tutor.RootTolerance)
	}
	switch c.Server.Mode {
	case "release", "debug", "test":
	default:
		return fmt.Errorf("server.mode must be release, debug or test, got %q", c.Server.Mode)
	}
	return nil
}

// LLMEnabled reports whether a provider was configured or discovered.
func (c *Config) LLMEnabled() bool {
	return c.LLM.Provider != ""
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "algebrix")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "algebrix")
}
