package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/vaultkeeper/internal/flagx"
	"github.com/dmitrijs2005/vaultkeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the optional JSON config file. Pointer
// fields distinguish "absent" from "zero" so a partial file only overrides
// what it names.
type JsonConfig struct {
	EndpointAddrGRPC *string         `json:"endpoint_addr_grpc"`
	EndpointAddrHTTP *string         `json:"endpoint_addr_http"`
	DatabaseDSN      *string         `json:"database_dsn"`
	SecretKey        *string         `json:"secret_key"`
	LogLevel         *string         `json:"log_level"`
	MigrateOnStart   *bool           `json:"migrate_on_start"`
	ArchiveBucket    *string         `json:"archive_bucket"`
	S3RootUser       *string         `json:"s3_root_user"`
	S3RootPassword   *string         `json:"s3_root_password"`
	S3Region         *string         `json:"s3_region"`
	S3BaseEndpoint   *string         `json:"s3_base_endpoint"`
	ArchiveTimeout   *timex.Duration `json:"archive_timeout"`
}

// parseJson overlays the file named by -c/-config, if any.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var c JsonConfig
	if err := json.Unmarshal(file, &c); err != nil {
		return err
	}

	setString(&cfg.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&cfg.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&cfg.DatabaseDSN, c.DatabaseDSN)
	setString(&cfg.SecretKey, c.SecretKey)
	setString(&cfg.LogLevel, c.LogLevel)
	setString(&cfg.ArchiveBucket, c.ArchiveBucket)
	setString(&cfg.S3RootUser, c.S3RootUser)
	setString(&cfg.S3RootPassword, c.S3RootPassword)
	setString(&cfg.S3Region, c.S3Region)
	setString(&cfg.S3BaseEndpoint, c.S3BaseEndpoint)
	if c.MigrateOnStart != nil {
		cfg.MigrateOnStart = *c.MigrateOnStart
	}
	if c.ArchiveTimeout != nil {
		cfg.ArchiveTimeout = c.ArchiveTimeout.Duration
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
