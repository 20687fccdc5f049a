package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{"JWT_SECRET": "s3cret"})
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "game.db", cfg.DBPath)
	assert.Equal(t, 20.0, cfg.RateLimitRPS)
	assert.Equal(t, 40, cfg.RateLimitBurst)
	assert.Equal(t, int64(65536), cfg.MaxBodyBytes)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"JWT_SECRET":       "s3cret",
		"PORT":             "9000",
		"RATE_LIMIT_RPS":   "2.5",
		"RATE_LIMIT_BURST": "5",
		"LOG_FORMAT":       "console",
	})
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, 5, cfg.RateLimitBurst)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoadRejects(t *testing.T) {
	cases := map[string]map[string]string{
		"missing secret": {},
		"bad format":     {"JWT_SECRET": "x", "LOG_FORMAT": "xml"},
		"zero rps":       {"JWT_SECRET": "x", "RATE_LIMIT_RPS": "0"},
		"bad number":     {"JWT_SECRET": "x", "RATE_LIMIT_BURST": "many"},
	}
	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFrom(vars)
			assert.Error(t, err)
		})
	}
}
