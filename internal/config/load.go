package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. WORDLE_SERVER_PORT.
const EnvPrefix = "WORDLE"

// DefaultCORSOrigins are the local frontend dev servers.
var DefaultCORSOrigins = []string{
	"http://localhost:5173",
	"http://localhost:5174",
	"http://127.0.0.1:5173",
	"http://127.0.0.1:5174",
}

// Load configuration from environment variables and optionally a config.yaml
// in the working directory. Environment variables take precedence over values
// from config files.
func Load() (*Config, error) {
	return load("")
}

// LoadFile is like Load but reads the given config file instead of searching
// the working directory. The file must exist.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config file path is empty")
	}
	return load(path)
}

func load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	cfg.Cache.Dir = expandHome(cfg.Cache.Dir)
	cfg.Cache.BadgerPath = expandHome(cfg.Cache.BadgerPath)

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.cors_origins", DefaultCORSOrigins)
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	v.SetDefault("solver.wordlist_path", "wordlist.txt")
	v.SetDefault("solver.starter_cache_path", "starter_cache.json")
	v.SetDefault("solver.search_threshold", 30)
	v.SetDefault("solver.top_n", 20)
	v.SetDefault("solver.workers", runtime.NumCPU())
	v.SetDefault("solver.memoize_fallback", true)
	v.SetDefault("solver.max_memoized_guesses", 0)

	v.SetDefault("cache.dir", filepath.Join("~", "tmp", "wordle_cache"))
	v.SetDefault("cache.zip_url", "")
	v.SetDefault("cache.backend", BackendFiles)
	v.SetDefault("cache.badger_path", filepath.Join("~", "tmp", "wordle_cache.badger"))
	v.SetDefault("cache.download_attempts", 3)
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
