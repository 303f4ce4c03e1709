package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime settings for the vaultkeeper CLI.
type Config struct {
	ServerEndpointAddr string        `env:"SERVER_ADDRESS"`
	AccessToken        string        `env:"TOKEN"`
	APIVersion         string        `env:"API_VERSION"`
	Timeout            time.Duration `env:"TIMEOUT"`
	HistoryDB          string        `env:"HISTORY_DB"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.AccessToken = ""
	c.APIVersion = "v2"
	c.Timeout = 5 * time.Second
	c.HistoryDB = "vaultkeeper-history.db"
}

// Load applies defaults, then the environment, JSON and flags found in args.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "VAULTKEEPER_"}); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}
	if err := parseJSON(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if cfg.APIVersion != "v1" && cfg.APIVersion != "v2" {
		return nil, fmt.Errorf("unsupported api version %q", cfg.APIVersion)
	}
	return cfg, nil
}

// LoadConfig is Load over os.Args.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}
