package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_OverlaysPresentVariables(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_USER", "bertie")
	t.Setenv("DB_PASSWORD", "s3cret")
	t.Setenv("DB_NAME", "shop")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("SESSION_IDLE_TIMEOUT", "15m")
	t.Setenv("REDIS_ADDR", "redis:6379")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, "db.internal", c.DBHost)
	assert.Equal(t, "bertie", c.DBUser)
	assert.Equal(t, "s3cret", c.DBPassword)
	assert.Equal(t, "shop", c.DBName)
	assert.Equal(t, 6543, c.DBPort)
	assert.Equal(t, 15*time.Minute, c.SessionIdleTimeout)
	assert.Equal(t, "redis:6379", c.RedisAddr)

	// untouched by the environment
	assert.Equal(t, ":8000", c.HTTPAddr)
	assert.Equal(t, DriverPostgres, c.DBDriver)
}

func TestParseEnv_PanicsOnMalformedValue(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-port")

	var c Config
	c.LoadDefaults()
	require.Panics(t, func() { parseEnv(&c) })
}
