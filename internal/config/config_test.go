package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/steel-compendium/internal/config"
	"github.com/KirkDiggler/steel-compendium/internal/entities/drawsteel"
	"github.com/KirkDiggler/steel-compendium/internal/errors"
	"github.com/KirkDiggler/steel-compendium/internal/parser"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := config.Parse()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, config.StoreNone, cfg.Store)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "compendium.db", cfg.SQLitePath)
	assert.Equal(t, 50051, cfg.GRPCPort)
	assert.Zero(t, cfg.HTTPPort)
	assert.Empty(t, cfg.VocabularyFile)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestParseFromEnvironment(t *testing.T) {
	t.Setenv("COMPENDIUM_LOG_LEVEL", "debug")
	t.Setenv("COMPENDIUM_WORKERS", "8")
	t.Setenv("COMPENDIUM_STORE", "sqlite")
	t.Setenv("COMPENDIUM_SQLITE_PATH", "/tmp/rules.db")

	cfg, err := config.Parse()
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, config.StoreSQLite, cfg.Store)
	assert.Equal(t, "/tmp/rules.db", cfg.SQLitePath)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestParseRejectsInvalidValues(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unknown store", key: "COMPENDIUM_STORE", value: "postgres"},
		{name: "unknown log level", key: "COMPENDIUM_LOG_LEVEL", value: "chatty"},
		{name: "no workers", key: "COMPENDIUM_WORKERS", value: "0"},
		{name: "not a number", key: "COMPENDIUM_GRPC_PORT", value: "port"},
		{name: "http port out of range", key: "COMPENDIUM_HTTP_PORT", value: "70000"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)

			_, err := config.Parse()
			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err))
		})
	}
}

func TestLoadVocabulary(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		vocab, err := config.LoadVocabulary("")
		require.NoError(t, err)
		assert.Equal(t, parser.DefaultVocabulary(), vocab)
	})

	t.Run("overlay", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "vocabulary.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
tier_ranges:
  strong: ["18+"]
stat_keys:
  Hit Points: stamina
`), 0o600))

		vocab, err := config.LoadVocabulary(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"18+"}, vocab.TierRanges.Strong)
		assert.Equal(t, parser.StatStamina, vocab.StatKeys["hit points"])
		assert.Equal(t, []string{"M", "A", "R", "I", "P"}, vocab.Characteristics)

		p, err := parser.New(&parser.Config{Vocabulary: vocab})
		require.NoError(t, err)
		assert.Equal(t, drawsteel.TierStrong, p.ClassifyTier("18+"))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadVocabulary(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid overlay", func(t *testing.T) {
		_, err := config.ParseVocabulary([]byte("characteristics: [Might]"))
		require.Error(t, err)
		assert.True(t, errors.IsInvalidArgument(err))
	})

	t.Run("not yaml", func(t *testing.T) {
		_, err := config.ParseVocabulary([]byte("characteristics: [unclosed"))
		require.Error(t, err)
		assert.True(t, errors.IsInvalidArgument(err))
	})
}
