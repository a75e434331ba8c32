// Package common contains shared constants and sentinel errors used across
// CrossClip components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// MaxContentBytes bounds the size of a single shared item accepted by the server.
const MaxContentBytes = 1 << 20
