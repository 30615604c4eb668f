package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/bookstore/internal/flagx"
	"github.com/dmitrijs2005/bookstore/internal/timex"
)

// JsonConfig is the on-disk shape of the optional configuration file.
// Durations accept "10m" strings or integer nanoseconds.
type JsonConfig struct {
	HTTPAddr           string         `json:"http_addr"`
	DBDriver           string         `json:"db_driver"`
	DBHost             string         `json:"db_host"`
	DBPort             int            `json:"db_port"`
	DBUser             string         `json:"db_user"`
	DBPassword         string         `json:"db_password"`
	DBName             string         `json:"db_name"`
	DatabaseDSN        string         `json:"database_dsn"`
	SessionSecret      string         `json:"session_secret"`
	SessionIdleTimeout timex.Duration `json:"session_idle_timeout"`
	RedisAddr          string         `json:"redis_addr"`
	RedisPassword      string         `json:"redis_password"`
	RedisDB            int            `json:"redis_db"`
	LogLevel           string         `json:"log_level"`
}

// parseJson loads the file named by -c/-config, if any, and copies every
// non-zero field into config. An unreadable or invalid file panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.applyTo(config)
}

func (c *JsonConfig) applyTo(config *Config) {
	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.DBDriver, c.DBDriver)
	setString(&config.DBHost, c.DBHost)
	setString(&config.DBUser, c.DBUser)
	setString(&config.DBPassword, c.DBPassword)
	setString(&config.DBName, c.DBName)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SessionSecret, c.SessionSecret)
	setString(&config.RedisAddr, c.RedisAddr)
	setString(&config.RedisPassword, c.RedisPassword)
	setString(&config.LogLevel, c.LogLevel)

	if c.DBPort != 0 {
		config.DBPort = c.DBPort
	}
	if c.RedisDB != 0 {
		config.RedisDB = c.RedisDB
	}
	if c.SessionIdleTimeout.Duration != 0 {
		config.SessionIdleTimeout = c.SessionIdleTimeout.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
