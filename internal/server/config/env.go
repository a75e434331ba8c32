package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv overlays CROSSCLIP_* variables. Unset variables keep the current
// value; a malformed value panics like a malformed config file does.
func parseEnv(config *Config) {
	if err := env.Parse(config); err != nil {
		panic(fmt.Errorf("parse env: %w", err))
	}
}
