// Package config loads runtime configuration from the environment and the
// optional vocabulary overlay file.
package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/steel-compendium/internal/errors"
	"github.com/KirkDiggler/steel-compendium/internal/parser"
)

// Store backends
const (
	StoreNone   = "none"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// Env is the process configuration
type Env struct {
	LogLevel       string `env:"COMPENDIUM_LOG_LEVEL" envDefault:"info"`
	Workers        int    `env:"COMPENDIUM_WORKERS" envDefault:"4"`
	Store          string `env:"COMPENDIUM_STORE" envDefault:"none"`
	RedisAddr      string `env:"COMPENDIUM_REDIS_ADDR" envDefault:"localhost:6379"`
	SQLitePath     string `env:"COMPENDIUM_SQLITE_PATH" envDefault:"compendium.db"`
	GRPCPort       int    `env:"COMPENDIUM_GRPC_PORT" envDefault:"50051"`
	HTTPPort       int    `env:"COMPENDIUM_HTTP_PORT" envDefault:"0"`
	VocabularyFile string `env:"COMPENDIUM_VOCABULARY_FILE"`
}

// Load reads a .env file when one exists and then parses the environment
func Load() (*Env, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "failed to load .env")
	}
	return Parse()
}

// Parse reads the environment without touching .env
func Parse() (*Env, error) {
	cfg := &Env{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

// Validate checks the values that have a closed set or a range
func (e *Env) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateEnum("log_level", strings.ToLower(e.LogLevel), []string{"debug", "info", "warn", "error"}, vb)
	errors.ValidateEnum("store", e.Store, []string{StoreNone, StoreRedis, StoreSQLite}, vb)
	errors.ValidateRange("workers", e.Workers, 1, 64, vb)
	errors.ValidateRange("grpc_port", e.GRPCPort, 1, 65535, vb)
	// zero disables the HTTP view
	errors.ValidateRange("http_port", e.HTTPPort, 0, 65535, vb)

	switch e.Store {
	case StoreRedis:
		errors.ValidateRequired("redis_addr", e.RedisAddr, vb)
	case StoreSQLite:
		errors.ValidateRequired("sqlite_path", e.SQLitePath, vb)
	}

	return vb.Build()
}

// SlogLevel maps LogLevel to a slog level
func (e *Env) SlogLevel() slog.Level {
	switch strings.ToLower(e.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LoadVocabulary returns the built-in vocabulary overlaid with the YAML file
// at path. An empty path returns the defaults.
func LoadVocabulary(path string) (*parser.Vocabulary, error) {
	vocab := parser.DefaultVocabulary()
	if path == "" {
		return vocab, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read vocabulary %s", path)
	}

	return ParseVocabulary(data)
}

// ParseVocabulary overlays YAML vocabulary data on the defaults
func ParseVocabulary(data []byte) (*parser.Vocabulary, error) {
	var overlay parser.Vocabulary
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "vocabulary is not valid YAML")
	}

	vocab := parser.DefaultVocabulary().Merge(&overlay)
	if err := vocab.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid vocabulary")
	}

	slog.Debug("Loaded vocabulary overlay",
		"characteristics", len(vocab.Characteristics),
		"stat_keys", len(vocab.StatKeys))

	return vocab, nil
}
