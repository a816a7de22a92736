package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	// The default deduction table is the documented reference policy.
	assert.Equal(t, 25, cfg.Scoring.CriticalPenalty)
	assert.Equal(t, 10, cfg.Scoring.WarningPenalty)
	assert.Equal(t, 2, cfg.Scoring.InfoPenalty)

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.Equal(t, "relic-cli", cfg.Logger.ServiceName)

	require.NoError(t, cfg.Validate())
}

func TestNewConfigFromViper_Overrides(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("scoring.critical_penalty", 15)
	v.Set("scoring.warning_penalty", 5)
	v.Set("logger.level", "debug")

	cfg, err := NewConfigFromViper(v)
	require.NoError(t, err)

	assert.Equal(t, 15, cfg.Scoring.CriticalPenalty)
	assert.Equal(t, 5, cfg.Scoring.WarningPenalty)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{
			name:   "negative penalty",
			mutate: func(c *Config) { c.Scoring.InfoPenalty = -1 },
		},
		{
			name:   "inverted penalty ordering",
			mutate: func(c *Config) { c.Scoring.WarningPenalty = c.Scoring.CriticalPenalty + 1 },
		},
		{
			name:   "zero analyzer timeout",
			mutate: func(c *Config) { c.Analyzer.APITimeout = 0 },
		},
		{
			name:   "zero rate limit",
			mutate: func(c *Config) { c.Analyzer.RequestsPerMinute = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
