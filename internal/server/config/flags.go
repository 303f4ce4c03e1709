package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/vaultkeeper/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string    gRPC bind address (e.g. ":50051")
//	-w string    HTTP bind address (e.g. ":8080")
//	-d string    PostgreSQL DSN
//	-s string    JWT HMAC secret key
//	-l string    log level
//	-m bool      run migrations on start
//	-b string    archive bucket (empty disables archiving)
//	-u string    S3 root user
//	-p string    S3 root password
//	-g string    S3 region
//	-e string    S3 base endpoint
//	-t duration  archive upload timeout (e.g. "10s")
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-w", "-d", "-s", "-l", "-m", "-b", "-u", "-p", "-g", "-e", "-t"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "gRPC address")
	fs.StringVar(&config.EndpointAddrHTTP, "w", config.EndpointAddrHTTP, "HTTP address")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.BoolVar(&config.MigrateOnStart, "m", config.MigrateOnStart, "run migrations on start")
	fs.StringVar(&config.ArchiveBucket, "b", config.ArchiveBucket, "archive bucket")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.DurationVar(&config.ArchiveTimeout, "t", config.ArchiveTimeout, "archive upload timeout")

	return fs.Parse(args)
}
