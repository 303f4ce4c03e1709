package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/vaultkeeper/internal/flagx"
)

// parseFlags overlays connection settings. Command flags such as -name are
// filtered out and left to the cli package.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-k", "-v", "-t", "-db"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.StringVar(&cfg.AccessToken, "k", cfg.AccessToken, "access token")
	fs.StringVar(&cfg.APIVersion, "v", cfg.APIVersion, "payload version (v1 or v2)")
	fs.DurationVar(&cfg.Timeout, "t", cfg.Timeout, "request timeout")
	fs.StringVar(&cfg.HistoryDB, "db", cfg.HistoryDB, "local history database")

	return fs.Parse(args)
}
