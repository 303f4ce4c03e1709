package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// parseEnv loads dotenvPath into the process environment (existing variables
// win, a missing file is fine) and then overlays every variable named by an
// `env` tag on Config. Unset variables keep the current value.
func parseEnv(cfg *Config, dotenvPath string) error {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return env.Parse(cfg)
}
