// File: internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the entire application configuration.
type Config struct {
	Logger   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
	Scoring  ScoringConfig  `mapstructure:"scoring" yaml:"scoring"`
	Analyzer AnalyzerConfig `mapstructure:"analyzer" yaml:"analyzer"`
	// Scan gets its marching orders from CLI flags, not the config file.
	Scan ScanConfig `mapstructure:"-" yaml:"-"`
}

// LoggerConfig controls the zap logger setup.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"` // "console" or "json"
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"` // Megabytes before rotation.
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"` // Days.
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig maps log levels to terminal colors for the console encoder.
type ColorConfig struct {
	Debug string `mapstructure:"debug" yaml:"debug"`
	Info  string `mapstructure:"info" yaml:"info"`
	Warn  string `mapstructure:"warn" yaml:"warn"`
	Error string `mapstructure:"error" yaml:"error"`
}

// ScoringConfig holds the per-severity score deductions. The defaults
// reproduce the reference policy (25/10/2); they are policy constants, not
// hard-coded, so deployments can tune them.
type ScoringConfig struct {
	CriticalPenalty int `mapstructure:"critical_penalty" yaml:"critical_penalty"`
	WarningPenalty  int `mapstructure:"warning_penalty" yaml:"warning_penalty"`
	InfoPenalty     int `mapstructure:"info_penalty" yaml:"info_penalty"`
}

// AnalyzerConfig configures the external AI analysis provider. The rule
// engine never reads this; it only matters when --ai is requested.
type AnalyzerConfig struct {
	Model             string        `mapstructure:"model" yaml:"model"`
	APIKey            string        `mapstructure:"api_key" yaml:"api_key"`
	Endpoint          string        `mapstructure:"endpoint" yaml:"endpoint"` // Optional override, mainly for tests.
	APITimeout        time.Duration `mapstructure:"api_timeout" yaml:"api_timeout"`
	Temperature       float64       `mapstructure:"temperature" yaml:"temperature"`
	MaxTokens         int           `mapstructure:"max_tokens" yaml:"max_tokens"`
	RequestsPerMinute float64       `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
}

// ScanConfig centralizes the runtime settings of the current invocation.
type ScanConfig struct {
	Targets     []string // Input files; "-" means stdin.
	Profile     string   // Platform profile id; empty selects the default.
	Format      string   // Report format: text, json, checkstyle.
	Output      string   // Output path; empty or "stdout" writes to stdout.
	UseAI       bool     // Route analysis through the external provider.
	ContextHint string   // Free-text hint forwarded to the external provider.
	Manifest    string   // Optional package manifest path for the dependency audit.
}

// SetDefaults initializes default values for all configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "relic-cli")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "magenta")
	v.SetDefault("logger.colors.info", "blue")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")

	// -- Scoring --
	v.SetDefault("scoring.critical_penalty", 25)
	v.SetDefault("scoring.warning_penalty", 10)
	v.SetDefault("scoring.info_penalty", 2)

	// -- Analyzer --
	v.SetDefault("analyzer.model", "gemini-2.5-flash")
	v.SetDefault("analyzer.api_timeout", "90s")
	v.SetDefault("analyzer.temperature", 0.1)
	v.SetDefault("analyzer.max_tokens", 8192)
	v.SetDefault("analyzer.requests_per_minute", 10.0)
}

// NewDefaultConfig creates a configuration struct populated with defaults.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// Cannot happen with the defaults above; fail loudly if it does.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// NewConfigFromViper creates a validated configuration from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	// Bind environment variables for sensitive data.
	v.BindEnv("analyzer.api_key", "RELIC_API_KEY")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	if c.Scoring.CriticalPenalty < 0 || c.Scoring.WarningPenalty < 0 || c.Scoring.InfoPenalty < 0 {
		return fmt.Errorf("scoring penalties must be non-negative")
	}
	if c.Scoring.CriticalPenalty < c.Scoring.WarningPenalty || c.Scoring.WarningPenalty < c.Scoring.InfoPenalty {
		return fmt.Errorf("scoring penalties must be ordered critical >= warning >= info")
	}
	if c.Analyzer.APITimeout <= 0 {
		return fmt.Errorf("analyzer.api_timeout must be a positive duration")
	}
	if c.Analyzer.RequestsPerMinute <= 0 {
		return fmt.Errorf("analyzer.requests_per_minute must be positive")
	}
	return nil
}
