// Package config handles configuration for the bookstore server: built-in
// defaults, an optional JSON file, environment variables and command-line flags,
// applied in that order.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds runtime settings for the bookstore server.
//
// DB* fields describe the Postgres connection the way the deployment
// environment provides it (DB_HOST, DB_USER, DB_PASSWORD, DB_NAME).
// DatabaseDSN, when set, wins over the individual fields; it is required
// for the sqlite driver, where it is the database file path.
//
// An empty SessionSecret makes the server generate a random one at startup,
// which invalidates every session on restart.
type Config struct {
	HTTPAddr           string        `env:"HTTP_ADDR"`
	DBDriver           string        `env:"DB_DRIVER"`
	DBHost             string        `env:"DB_HOST"`
	DBPort             int           `env:"DB_PORT"`
	DBUser             string        `env:"DB_USER"`
	DBPassword         string        `env:"DB_PASSWORD"`
	DBName             string        `env:"DB_NAME"`
	DatabaseDSN        string        `env:"DATABASE_DSN"`
	SessionSecret      string        `env:"SESSION_SECRET"`
	SessionIdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT"`
	RedisAddr          string        `env:"REDIS_ADDR"`
	RedisPassword      string        `env:"REDIS_PASSWORD"`
	RedisDB            int           `env:"REDIS_DB"`
	LogLevel           string        `env:"LOG_LEVEL"`
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":8000"
	c.DBDriver = DriverPostgres
	c.DBHost = "localhost"
	c.DBPort = 5432
	c.DBUser = "berties_books_app"
	c.DBPassword = "qwertyuiop"
	c.DBName = "berties_books"
	c.DatabaseDSN = ""
	c.SessionSecret = ""
	c.SessionIdleTimeout = 10 * time.Minute
	c.RedisAddr = ""
	c.RedisPassword = ""
	c.RedisDB = 0
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then the optional JSON
// file, then environment variables and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// DSN returns the data source name for the configured driver.
func (c *Config) DSN() (string, error) {
	switch c.DBDriver {
	case DriverPostgres:
		if c.DatabaseDSN != "" {
			return c.DatabaseDSN, nil
		}
		if c.DBHost == "" || c.DBName == "" {
			return "", errors.New("postgres requires DB_HOST and DB_NAME or DATABASE_DSN")
		}
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.DBUser, c.DBPassword),
			Host:     net.JoinHostPort(c.DBHost, strconv.Itoa(c.DBPort)),
			Path:     "/" + c.DBName,
			RawQuery: "sslmode=disable",
		}
		return u.String(), nil
	case DriverSQLite:
		if c.DatabaseDSN == "" {
			return "", errors.New("sqlite requires DATABASE_DSN")
		}
		return c.DatabaseDSN, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", c.DBDriver)
	}
}
