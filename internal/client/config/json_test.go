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

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()

	t.Run("loads every field", func(t *testing.T) {
		path := writeTempJSON(t, dir, "full.json", map[string]any{
			"server_endpoint_addr":  "evaluator:50051",
			"access_token":          "tok",
			"data_dir":              "state",
			"keystore_dsn":          ":memory:",
			"key_bits":              1024,
			"keygen_timeout":        "30s",
			"online_check_interval": 5000000000,
			"stop_words":            []string{"the"},
			"min_word_length":       3,
		})
		os.Args = []string{"cli", "-config", path}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "evaluator:50051", cfg.ServerEndpointAddr)
		assert.Equal(t, "tok", cfg.AccessToken)
		assert.Equal(t, "state", cfg.DataDir)
		assert.Equal(t, ":memory:", cfg.KeystoreDSN)
		assert.Equal(t, 1024, cfg.KeyBits)
		assert.Equal(t, 30*time.Second, cfg.KeygenTimeout)
		assert.Equal(t, 5*time.Second, cfg.OnlineCheckInterval)
		assert.Equal(t, []string{"the"}, cfg.StopWords)
		assert.Equal(t, 3, cfg.MinWordLength)
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := writeTempJSON(t, dir, "partial.json", map[string]any{"key_bits": 512})
		os.Args = []string{"cli", "-c", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, 512, cfg.KeyBits)
		assert.Equal(t, "127.0.0.1:50051", cfg.ServerEndpointAddr)
		assert.Equal(t, time.Minute, cfg.KeygenTimeout)
	})

	t.Run("no config flag is a no-op", func(t *testing.T) {
		os.Args = []string{"cli"}
		cfg := &Config{KeyBits: 7}
		parseJson(cfg)
		assert.Equal(t, 7, cfg.KeyBits)
	})

	t.Run("missing file panics", func(t *testing.T) {
		os.Args = []string{"cli", "-c", filepath.Join(dir, "absent.json")}
		require.Panics(t, func() { parseJson(&Config{}) })
	})

	t.Run("bad duration panics", func(t *testing.T) {
		path := writeTempJSON(t, dir, "bad.json", map[string]any{"keygen_timeout": true})
		os.Args = []string{"cli", "-c", path}
		require.Panics(t, func() { parseJson(&Config{}) })
	})
}
