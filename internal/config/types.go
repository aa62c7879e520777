package config

import "time"

// Config is the complete client configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Session SessionConfig `yaml:"session"`
	UI      UIConfig      `yaml:"ui"`
	Log     LogConfig     `yaml:"log"`
}

// APIConfig locates the portfolio API.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
}

// Session backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// SessionConfig selects where the session token and user are kept.
type SessionConfig struct {
	Backend string      `yaml:"backend"`
	Redis   RedisConfig `yaml:"redis"`
}

// RedisConfig configures the redis session backend.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password,omitempty"`
	DB       int           `yaml:"db"`
	Prefix   string        `yaml:"prefix"`
	TTL      time.Duration `yaml:"ttl"`
}

// UIConfig controls terminal output.
type UIConfig struct {
	NoColor bool `yaml:"no_color"`
	// Theme is "dark", "light" or "auto".
	Theme string `yaml:"theme"`
	// SharedForm creates and edits projects from the home page instead of
	// the separate project pages.
	SharedForm bool `yaml:"shared_form"`
	// Width is the card width; zero disables wrapping.
	Width int `yaml:"width"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `yaml:"level"`
}
