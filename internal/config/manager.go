package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// @MX:ANCHOR: [AUTO] ConfigManager is the single entry point for configuration; call Load() before use.
// @MX:REASON: every command reads its settings through it
// ConfigManager provides thread-safe configuration management.
// It must be initialized via Load() before use.
type ConfigManager struct {
	mu     sync.RWMutex
	config *Config
	// file is the configuration as read from disk, before environment
	// overrides and Update calls. Save writes it back.
	file     *Config
	dir      string
	loader   *Loader
	fromFile bool
}

// NewConfigManager creates a new ConfigManager instance in uninitialized state.
func NewConfigManager(logger *slog.Logger) *ConfigManager {
	return &ConfigManager{loader: NewLoader(logger)}
}

// @MX:NOTE: [AUTO] priority: compiled defaults < config.yaml < .env < FOLIO_* environment
// Load reads the configuration from dir, or from DefaultDir when dir is
// empty, applies environment overrides and validates the result. The .env
// file of the working directory is loaded first, so it may set
// FOLIO_CONFIG_DIR and takes precedence over the config directory's .env.
func (m *ConfigManager) Load(dir string) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.loader.loadDotenv(EnvFileName)

	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	dir = filepath.Clean(dir)

	cfg, err := m.loader.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	file := *cfg
	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	m.config = cfg
	m.file = &file
	m.dir = dir
	m.fromFile = m.loader.FromFile()
	return cfg, nil
}

// Get returns the current in-memory configuration.
// Returns nil if the manager has not been initialized via Load().
func (m *ConfigManager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// Dir returns the resolved config directory.
func (m *ConfigManager) Dir() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dir
}

// FromFile reports whether config.yaml was read.
func (m *ConfigManager) FromFile() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fromFile
}

// Update applies fn to the in-memory configuration and validates the result.
// The previous configuration is kept when validation fails.
func (m *ConfigManager) Update(fn func(*Config)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.config == nil {
		return ErrNotInitialized
	}
	next := *m.config
	fn(&next)
	if err := Validate(&next); err != nil {
		return err
	}
	m.config = &next
	return nil
}

// Save applies fn to both the file configuration and the in-memory one and
// writes the file configuration to config.yaml atomically. Environment
// overrides and Update calls are never written. Nothing changes when either
// result fails validation. Returns ErrNotInitialized if Load() has not been
// called.
func (m *ConfigManager) Save(fn func(*Config)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.config == nil {
		return ErrNotInitialized
	}

	file := *m.file
	fn(&file)
	if err := Validate(&file); err != nil {
		return err
	}
	next := *m.config
	fn(&next)
	if err := Validate(&next); err != nil {
		return err
	}

	if err := os.MkdirAll(m.dir, 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(&file)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", FileName, err)
	}
	if err := atomicWrite(filepath.Join(m.dir, FileName), data); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	m.file = &file
	m.config = &next
	m.fromFile = true
	return nil
}

// Path returns the location of config.yaml.
func (m *ConfigManager) Path() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return filepath.Join(m.dir, FileName)
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables have higher priority than file-based values.
func applyEnvOverrides(cfg *Config) {
	if u := os.Getenv(EnvAPIURL); u != "" {
		cfg.API.BaseURL = u
	}
	if b := os.Getenv(EnvSessionBackend); b != "" {
		cfg.Session.Backend = strings.ToLower(b)
	}
	if addr := os.Getenv(EnvRedisAddr); addr != "" {
		cfg.Session.Redis.Addr = addr
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.Log.Level = strings.ToLower(level)
	}
	if noColor := os.Getenv(EnvNoColor); noColor != "" {
		if v, err := strconv.ParseBool(noColor); err == nil {
			cfg.UI.NoColor = v
		}
	}
}

// atomicWrite writes data to a file atomically using temp file + os.Rename.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".folio-config-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() // cleanup on error path

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	return os.Rename(tmpName, path)
}
