package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krazyTry/launchpool-go/launchpool"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, launchpool.DevnetProgramID, cfg.ProgramKey())
	assert.Equal(t, rpc.CommitmentConfirmed, cfg.Commitment)
}

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
rpc_endpoint: http://127.0.0.1:8899
program_id: BW6SPYkVKy7QzVRwAdstwDUyUYHxiLXBwP2cwwRQpgG6
cache_size: 0
`))
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8899", cfg.RPCEndpoint)
	assert.Equal(t, rpc.DevNet_WS, cfg.WSEndpoint)
	assert.Equal(t, launchpool.LocalProgramID, cfg.ProgramKey())
	assert.Equal(t, 0, cfg.CacheSize)

	d, err := cfg.NewDeriver()
	require.NoError(t, err)
	assert.Equal(t, launchpool.LocalProgramID, d.ProgramID())
}

func TestParseRejectsInvalid(t *testing.T) {
	for name, doc := range map[string]string{
		"commitment": "commitment: recent",
		"program":    "program_id: not-base58!",
		"cache":      "cache_size: -1",
		"endpoint":   `rpc_endpoint: ""`,
	} {
		_, err := Parse([]byte(doc))
		assert.ErrorIs(t, err, ErrInvalidConfig, name)
	}

	_, err := Parse([]byte("rpc_endpoint: [unterminated"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "launchpool.yaml")
	require.NoError(t, os.WriteFile(path, []byte("commitment: finalized\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, rpc.CommitmentFinalized, cfg.Commitment)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
