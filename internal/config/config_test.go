package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, ":8081", cfg.HTTPAddr)
	assert.Equal(t, []string{"kafka:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "checkout-api", cfg.ServiceName)
}

func TestLoadBrokersCSV(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "b1:9092, b2:9092 ,,b3:9092")
	cfg := Load()
	assert.Equal(t, []string{"b1:9092", "b2:9092", "b3:9092"}, cfg.KafkaBrokers)
}

func TestJWTSecretFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secret")
	require.NoError(t, os.WriteFile(path, []byte("from-file\n"), 0o600))
	t.Setenv("JWT_SECRET_FILE", path)
	t.Setenv("JWT_SECRET", "from-env")

	cfg := Load()
	assert.Equal(t, "from-file", cfg.JWTSecret)
}
