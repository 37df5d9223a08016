package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/pennywise/internal/common"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the application.
const EnvPrefix = "PENNYWISE"

// Configuration keys.
const (
	KeyDatabasePath = "database.path"
	KeyServerAddr   = "server.addr"
	KeyLexiconPath  = "lexicon.path"
	KeySuggestLimit = "categorize.suggest_limit"
	KeyBatchLimit   = "categorize.batch_limit"
	KeyCurrency     = "display.currency"
	KeyLogLevel     = "logging.level"
	KeyLogFormat    = "logging.format"
)

// Config represents the complete application configuration.
type Config struct {
	Database struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`

	Server struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"server"`

	Lexicon struct {
		// Path optionally replaces the embedded keyword lexicon.
		Path string `mapstructure:"path"`
	} `mapstructure:"lexicon"`

	Categorize struct {
		SuggestLimit int `mapstructure:"suggest_limit"`
		BatchLimit   int `mapstructure:"batch_limit"`
	} `mapstructure:"categorize"`

	Display struct {
		Currency string `mapstructure:"currency"`
	} `mapstructure:"display"`

	Logging struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"logging"`
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDatabasePath, DefaultDatabasePath())
	v.SetDefault(KeyServerAddr, ":8080")
	v.SetDefault(KeyLexiconPath, "")
	v.SetDefault(KeySuggestLimit, 3)
	v.SetDefault(KeyBatchLimit, 100)
	v.SetDefault(KeyCurrency, "BRL")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
}

// Initialize prepares v with defaults, the config file (cfgFile, or config.yaml in the
// standard locations) and PENNYWISE_ environment variables, then decodes and validates
// the result. A missing config file is not an error.
func Initialize(v *viper.Viper, cfgFile string) (*Config, error) {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if dir := DefaultConfigDir(); dir != "" {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Database.Path = ExpandPath(cfg.Database.Path)
	cfg.Lexicon.Path = ExpandPath(cfg.Lexicon.Path)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the decoded configuration values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("%w: %s", common.ErrMissingConfig, KeyDatabasePath)
	}
	if c.Categorize.SuggestLimit < 1 {
		return fmt.Errorf("%w: %s must be positive, got %d", common.ErrInvalidConfig, KeySuggestLimit, c.Categorize.SuggestLimit)
	}
	if c.Categorize.BatchLimit < 1 {
		return fmt.Errorf("%w: %s must be positive, got %d", common.ErrInvalidConfig, KeyBatchLimit, c.Categorize.BatchLimit)
	}
	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}
	switch c.Logging.Format {
	case "console", "text", "json":
	default:
		return fmt.Errorf("%w: %s must be console or json, got %q", common.ErrInvalidConfig, KeyLogFormat, c.Logging.Format)
	}
	return nil
}

// LoadDotEnv loads the first .env file found among candidates into the process
// environment without overriding variables that are already set. It returns the file
// that was loaded, or "" when none exists.
func LoadDotEnv(candidates ...string) (string, error) {
	if len(candidates) == 0 {
		candidates = []string{".env", filepath.Join("..", ".env")}
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return "", fmt.Errorf("failed to load %s: %w", path, err)
		}
		return path, nil
	}
	return "", nil
}
