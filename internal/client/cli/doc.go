// Package cli provides the vaultkeeper command-line client.
//
// Commands:
//
//	add      create a resource; the armored secret is read from stdin
//	history  list resources created from this machine
//
// add flags: -name, -username, -uri, -description. Connection flags are
// handled by internal/client/config.
package cli
