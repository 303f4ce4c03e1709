// Package config loads runtime configuration for the vaultkeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables prefixed with VAULTKEEPER_.
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string     address:port of the backend gRPC endpoint
//	-k string     access token issued by the identity provider
//	-v string     payload shape sent to the server ("v1" or "v2")
//	-t duration   per-request timeout
//	-db string    path of the local history database
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "access_token": "eyJ...",
//	  "api_version": "v2",
//	  "timeout": "5s",
//	  "history_db": "vaultkeeper-history.db"
//	}
package config
