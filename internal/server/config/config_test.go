package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":8080", cfg.EndpointAddr)
	assert.NotEmpty(t, cfg.DatabaseDSN)
	assert.Equal(t, DefaultKDFIterations, cfg.KDFIterations)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfig_RaisesLowIterations(t *testing.T) {
	t.Setenv("FLEETTRACK_KDF_ITERATIONS", "1000")
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = []string{"test"}

	cfg := LoadConfig()
	assert.Equal(t, DefaultKDFIterations, cfg.KDFIterations, "iteration count below the floor must be raised")
}

func TestParseEnv(t *testing.T) {
	t.Setenv("FLEETTRACK_ADDR", ":9999")
	t.Setenv("FLEETTRACK_DATABASE_DSN", "postgres://env")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, ":9999", cfg.EndpointAddr)
	assert.Equal(t, "postgres://env", cfg.DatabaseDSN)
}

func TestJsonConfig_Unmarshal(t *testing.T) {
	raw := []byte(`{
		"endpoint_addr": ":7070",
		"database_dsn": "postgres://json",
		"kdf_iterations": 200000,
		"shutdown_timeout": "10s"
	}`)

	c := &JsonConfig{}
	require.NoError(t, json.Unmarshal(raw, c))

	assert.Equal(t, ":7070", c.EndpointAddr)
	assert.Equal(t, "postgres://json", c.DatabaseDSN)
	assert.Equal(t, 200000, c.KDFIterations)
	assert.Equal(t, 10*time.Second, c.ShutdownTimeout.Duration)
}

func TestParseJson_FromFlag(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"endpoint_addr": ":7171"}`), 0o600))

	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = []string{"test", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, ":7171", cfg.EndpointAddr)
	assert.NotEmpty(t, cfg.DatabaseDSN, "fields absent from JSON keep defaults")
}
