package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Solver SolverConfig `mapstructure:"solver" validate:"required"`
	Cache  CacheConfig  `mapstructure:"cache"  validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int      `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	LogLevel        string   `mapstructure:"log_level"                validate:"required,oneof=debug info warn error"`
	CORSOrigins     []string `mapstructure:"cors_origins"             validate:"dive,required"`
	ShutdownTimeout int      `mapstructure:"shutdown_timeout_seconds" validate:"gte=0"`
}

// SolverConfig holds the word list inputs and the ranker tunables.
type SolverConfig struct {
	WordlistPath     string `mapstructure:"wordlist_path"      validate:"required"`
	StarterCachePath string `mapstructure:"starter_cache_path"`
	SearchThreshold  int    `mapstructure:"search_threshold"   validate:"gt=0"`
	TopN             int    `mapstructure:"top_n"              validate:"gt=0"`
	Workers          int    `mapstructure:"workers"            validate:"gte=0"`

	// MemoizeFallback keeps computed feedback for later lookups of the same pair.
	MemoizeFallback    bool `mapstructure:"memoize_fallback"`
	// MaxMemoizedGuesses caps how many guesses may accumulate memoized
	// entries. Zero means no cap.
	MaxMemoizedGuesses int `mapstructure:"max_memoized_guesses" validate:"gte=0"`
}

// CacheConfig describes where the precomputed feedback tables live.
type CacheConfig struct {
	Dir              string `mapstructure:"dir"               validate:"required"`
	ZipURL           string `mapstructure:"zip_url"`
	Backend          string `mapstructure:"backend"           validate:"required,oneof=files badger"`
	BadgerPath       string `mapstructure:"badger_path"       validate:"required_if=Backend badger"`
	DownloadAttempts int    `mapstructure:"download_attempts" validate:"gt=0"`
}

// Backend names accepted by CacheConfig.Backend.
const (
	BackendFiles  = "files"
	BackendBadger = "badger"
)
