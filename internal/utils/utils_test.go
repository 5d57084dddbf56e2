package utils

import (
	"context"
	"crypto/tls"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"country-stats/internal/config"
)

func TestDisabledBackends(t *testing.T) {
	st, err := OpenStoreFromConfig(context.Background(), config.Postgres{Enable: false})
	assert.NoError(t, err)
	assert.Nil(t, st)
	assert.Nil(t, OpenRedis(config.Redis{Enable: false}))
}

func TestOpenRedisEnabled(t *testing.T) {
	rc := OpenRedis(config.Redis{Enable: true, Host: "127.0.0.1", Port: "6390", DB: -1})
	require.NotNil(t, rc)
	defer rc.Close()
	assert.Equal(t, "127.0.0.1:6390", rc.Options().Addr)
	assert.Equal(t, 0, rc.Options().DB)
}

func TestEnsureSelfSignedCert(t *testing.T) {
	dir := t.TempDir()
	cert := filepath.Join(dir, "certs", "server.crt")
	key := filepath.Join(dir, "keys", "server.key")
	require.NoError(t, EnsureSelfSignedCert(cert, key, "country-stats.local"))
	_, err := tls.LoadX509KeyPair(cert, key)
	require.NoError(t, err)

	st, err := os.Stat(cert)
	require.NoError(t, err)
	mod := st.ModTime()
	require.NoError(t, EnsureSelfSignedCert(cert, key, "country-stats.local"))
	st2, err := os.Stat(cert)
	require.NoError(t, err)
	assert.Equal(t, mod, st2.ModTime())
}
