package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv overlays variables that are present in the environment onto config.
// Unset variables leave the current values untouched. A malformed value
// (e.g. DB_PORT=abc) panics, like a malformed JSON file does.
func parseEnv(config *Config) {
	if err := env.Parse(config); err != nil {
		panic(fmt.Errorf("parse env: %w", err))
	}
}
