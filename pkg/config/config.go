package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Chat    ChatConfig    `mapstructure:"chat"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds backend connection settings.
type APIConfig struct {
	// URL is the DataDiver backend base URL.
	URL string `mapstructure:"url"`
	// Timeout bounds non-streaming requests. Streaming requests are only
	// bounded by ConnectTimeout for the initial connection; the stream
	// itself runs until the backend closes it or the user cancels.
	Timeout        time.Duration `mapstructure:"timeout"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// ChatConfig holds chat and generation defaults.
type ChatConfig struct {
	// SearchType selects the backend retrieval strategy for proposal
	// generation (vector, graph, hybrid).
	SearchType string `mapstructure:"search_type"`
	// ShowRetrieval toggles the retrieval progress timeline in the TUI.
	ShowRetrieval bool `mapstructure:"show_retrieval"`
	// SystemGreeting is shown as the first message of a fresh conversation.
	SystemGreeting string `mapstructure:"system_greeting"`
}

// LoggingConfig holds logging-related configuration.
type LoggingConfig struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// Global config instance.
var cfg *Config

// Get returns the global config instance.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized")
	}
	return cfg
}

// Load loads configuration from file and environment into the global
// instance. Defaults are registered by the cmd package before Load runs.
func Load(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(SettingsDir())
		viper.SetConfigType("yaml")
		viper.SetConfigName("settings")
	}

	viper.SetEnvPrefix("DIVER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A missing implicit settings file is fine; defaults and env cover
		// it. An explicitly named file must exist.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	loaded := &Config{}
	if err := viper.Unmarshal(loaded); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg = loaded
	return cfg, nil
}

// Set replaces the global config instance. Used by tests.
func Set(c *Config) {
	cfg = c
}
