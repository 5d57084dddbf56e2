package geo

import (
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledHinter(t *testing.T) {
	h, err := Open("")
	require.NoError(t, err)
	assert.Equal(t, "", h.Hint("8.8.8.8"))
	assert.NoError(t, h.Close())

	var nilH *Hinter
	assert.Equal(t, "", nilH.Hint("8.8.8.8"))
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.mmdb"))
	assert.Error(t, err)
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.9:5555"
	assert.Equal(t, "10.0.0.9", ClientIP(r))

	r.Header.Set("x-real-ip", "5.6.7.8")
	assert.Equal(t, "5.6.7.8", ClientIP(r))

	r.Header.Set("x-forwarded-for", " 1.2.3.4 , 10.0.0.1")
	assert.Equal(t, "1.2.3.4", ClientIP(r))
}
