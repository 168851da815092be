package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, "0 9 * * *", cfg.ReminderCron)
	assert.NotEmpty(t, cfg.DBConn)
	assert.NotEmpty(t, cfg.SenderEmail)
}

func TestNewConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("JWT_SECRET", "override")
	t.Setenv("REMINDER_CRON", "30 8 * * *")

	cfg, err := NewConfig()

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, "override", cfg.JWTSecret)
	assert.Equal(t, "30 8 * * *", cfg.ReminderCron)
}
