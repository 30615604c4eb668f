package server

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dmitrijs2005/bookstore/internal/logging"
	"github.com/dmitrijs2005/bookstore/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(name string) *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.HTTPAddr = "127.0.0.1:0"
	cfg.DBDriver = config.DriverSQLite
	cfg.DatabaseDSN = "file:app_" + name + "?mode=memory&cache=shared"
	return cfg
}

func TestNewApp_MemorySessions(t *testing.T) {
	app, err := newApp(context.Background(), testConfig("memory"), logging.Discard())
	require.NoError(t, err)
	assert.Nil(t, app.redis)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
	assert.Error(t, app.db.Ping())
}

func TestNewApp_RedisSessions(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig("redis")
	cfg.RedisAddr = mr.Addr()

	app, err := newApp(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)
	require.NotNil(t, app.redis)
	t.Cleanup(func() { app.close(context.Background()) })

	assert.NoError(t, app.redis.Ping(context.Background()).Err())
}

func TestNewApp_Errors(t *testing.T) {
	cfg := testConfig("errors")
	cfg.DBDriver = "mysql"
	_, err := newApp(context.Background(), cfg, logging.Discard())
	assert.Error(t, err)

	cfg = testConfig("errors")
	cfg.DatabaseDSN = ""
	_, err = newApp(context.Background(), cfg, logging.Discard())
	assert.Error(t, err)

	cfg = testConfig("redis_down")
	cfg.RedisAddr = "127.0.0.1:1"
	_, err = newApp(context.Background(), cfg, logging.Discard())
	assert.Error(t, err)
}

func TestNewApp_RejectsNonPositiveIdleTimeout(t *testing.T) {
	for _, idle := range []time.Duration{0, -time.Minute} {
		cfg := testConfig("idle")
		cfg.SessionIdleTimeout = idle

		app, err := newApp(context.Background(), cfg, logging.Discard())
		require.Error(t, err, idle)
		assert.Nil(t, app)
		assert.Contains(t, err.Error(), "session idle timeout")
	}
}
