package config

import (
	"strconv"
	"testing"

	"poststream/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, models.DefaultLimits(), cfg.Limits())
		assert.Equal(t, "data/badger", cfg.BadgerFilepath)
		assert.Equal(t, "localhost:8080", cfg.Address())
		assert.Equal(t, "INFO", cfg.LogLevel)
		assert.True(t, cfg.Colours)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("MAX_TITLE_LEN", "20")
		t.Setenv("MAX_POST_LEN", "140")
		t.Setenv("PORT", "9090")
		t.Setenv("LOG_LEVEL", "DEBUG")
		t.Setenv("COLOURS", "false")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, models.Limits{MaxTitleLen: 20, MaxPostLen: 140}, cfg.Limits())
		assert.Equal(t, "localhost:9090", cfg.Address())
		assert.Equal(t, "DEBUG", cfg.LogLevel)
		assert.False(t, cfg.Colours)
	})

	invalid := []struct {
		name  string
		key   string
		value string
	}{
		{"zero title length", "MAX_TITLE_LEN", "0"},
		{"title wider than its row", "MAX_TITLE_LEN", "80"},
		{"negative post length", "MAX_POST_LEN", "-1"},
		{"port out of range", "PORT", "70000"},
		{"unknown log level", "LOG_LEVEL", "TRACE"},
		{"not a number", "MAX_TITLE_LEN", "fifty"},
	}

	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}

	t.Run("title as wide as its row", func(t *testing.T) {
		t.Setenv("MAX_TITLE_LEN", strconv.Itoa(models.TextWidth))
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, models.TextWidth, cfg.MaxTitleLen)
	})
}
