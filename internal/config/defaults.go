package config

import (
	"os"
	"path/filepath"
)

// Default value constants.
const (
	DefaultBaseURL     = "https://portfolio-api-three-black.vercel.app/api/v1"
	DefaultBackend     = BackendFile
	DefaultRedisAddr   = "localhost:6379"
	DefaultRedisPrefix = "folio:session:"
	DefaultTheme       = "auto"
	DefaultWidth       = 72
	DefaultLogLevel    = "warn"

	// DirName is the config directory under the user's home.
	DirName = ".folio"
	// FileName is the YAML file inside the config directory.
	FileName = "config.yaml"
	// EnvFileName is the optional dotenv file inside the config directory.
	EnvFileName = ".env"
)

// Environment variables.
const (
	EnvConfigDir      = "FOLIO_CONFIG_DIR"
	EnvAPIURL         = "FOLIO_API_URL"
	EnvSessionBackend = "FOLIO_SESSION_BACKEND"
	EnvRedisAddr      = "FOLIO_REDIS_ADDR"
	EnvLogLevel       = "FOLIO_LOG_LEVEL"
	EnvNoColor        = "FOLIO_NO_COLOR"
)

// NewDefaultConfig returns a Config populated with compiled defaults.
func NewDefaultConfig() *Config {
	return &Config{
		API: APIConfig{BaseURL: DefaultBaseURL},
		Session: SessionConfig{
			Backend: DefaultBackend,
			Redis: RedisConfig{
				Addr:   DefaultRedisAddr,
				Prefix: DefaultRedisPrefix,
			},
		},
		UI: UIConfig{
			Theme: DefaultTheme,
			Width: DefaultWidth,
		},
		Log: LogConfig{Level: DefaultLogLevel},
	}
}

// DefaultDir returns FOLIO_CONFIG_DIR when set, else ~/.folio.
func DefaultDir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return filepath.Clean(dir), nil
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", ErrNoHomeDir
	}
	return filepath.Join(home, DirName), nil
}
