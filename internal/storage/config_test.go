package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jacksmith/todo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeUserConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".todoconfig.yaml"), []byte(content), 0644))
}

func TestLoadConfig(t *testing.T) {
	t.Run("no .todoconfig.yaml returns defaults", func(t *testing.T) {
		dir := t.TempDir()
		s, err := Init(dir)
		require.NoError(t, err)

		cfg, err := s.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, DefaultDefaultPriority, cfg.DefaultPriority)
		assert.Equal(t, DefaultBackend, cfg.Backend)
		assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
		assert.Equal(t, DefaultConfirmClearAll, cfg.ConfirmClearAll)
	})

	t.Run("full .todoconfig.yaml loads all values", func(t *testing.T) {
		dir := t.TempDir()
		s, err := Init(dir)
		require.NoError(t, err)

		writeUserConfig(t, dir, `default_priority: high
backend: file
log_level: debug
confirm_clear_all: false
`)

		cfg, err := s.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, model.PriorityHigh, cfg.DefaultPriority)
		assert.Equal(t, BackendFile, cfg.Backend)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.False(t, cfg.ConfirmClearAll)
	})

	t.Run("partial .todoconfig.yaml merges with defaults", func(t *testing.T) {
		dir := t.TempDir()
		s, err := Init(dir)
		require.NoError(t, err)

		writeUserConfig(t, dir, "default_priority: L\n")

		cfg, err := s.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, model.PriorityLow, cfg.DefaultPriority)
		assert.Equal(t, DefaultBackend, cfg.Backend)
		assert.Equal(t, DefaultConfirmClearAll, cfg.ConfirmClearAll)
	})

	t.Run("invalid priority is rejected", func(t *testing.T) {
		dir := t.TempDir()
		s, err := Init(dir)
		require.NoError(t, err)

		writeUserConfig(t, dir, "default_priority: urgent\n")

		_, err = s.LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "default_priority")
	})

	t.Run("invalid backend is rejected", func(t *testing.T) {
		dir := t.TempDir()
		s, err := Init(dir)
		require.NoError(t, err)

		writeUserConfig(t, dir, "backend: redis\n")

		_, err = s.LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "backend")
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		dir := t.TempDir()
		s, err := Init(dir)
		require.NoError(t, err)

		writeUserConfig(t, dir, "default_priority: [unclosed\n")

		_, err = s.LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse")
	})
}

func TestConfigPath(t *testing.T) {
	dir := t.TempDir()
	s, err := Init(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, ".todoconfig.yaml"), s.ConfigPath())
}
