// Package common contains shared constants and sentinel errors used across
// vaultkeeper components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on inbound and outbound requests.
const AccessTokenHeaderName = "access_token"

// APIVersionHeaderName is the gRPC metadata key carrying the payload shape
// version ("v1" legacy, "v2" canonical).
const APIVersionHeaderName = "api-version"
