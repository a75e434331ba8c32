package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Setenv("CROSSCLIP_GRPC_ADDR", ":6000")
	t.Setenv("CROSSCLIP_ACCESS_TOKEN_TTL", "90s")
	t.Setenv("CROSSCLIP_RATE_LIMIT_BURST", "3")
	t.Setenv("CROSSCLIP_GOOGLE_CLIENT_ID", "env-cid")

	c := &Config{}
	c.LoadDefaults()
	require.NotPanics(t, func() { parseEnv(c) })

	assert.Equal(t, ":6000", c.EndpointAddrGRPC)
	assert.Equal(t, 90*time.Second, c.AccessTokenValidityDuration)
	assert.Equal(t, 3, c.RateLimitBurst)
	assert.Equal(t, "env-cid", c.GoogleClientID)
	assert.Equal(t, "crossclip", c.S3Bucket)
}

func TestParseEnv_Malformed_Panics(t *testing.T) {
	t.Setenv("CROSSCLIP_RATE_LIMIT_BURST", "many")
	require.Panics(t, func() { parseEnv(&Config{}) })
}
