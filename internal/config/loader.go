package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Loader reads the configuration file and dotenv files of a directory.
type Loader struct {
	logger   *slog.Logger
	fromFile bool
}

// NewLoader creates a new Loader. A nil logger uses slog.Default.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load reads config.yaml from dir over the compiled defaults. A missing file
// yields the defaults; an unparsable file is an error. The .env file in dir
// is loaded into the process environment without overriding variables that
// are already set.
func (l *Loader) Load(dir string) (*Config, error) {
	l.fromFile = false
	cfg := NewDefaultConfig()

	l.loadDotenv(filepath.Join(dir, EnvFileName))

	loaded, err := loadYAMLFile(filepath.Join(dir, FileName), cfg)
	if err != nil {
		return nil, err
	}
	if !loaded {
		l.logger.Debug("config file not found, using defaults", "dir", dir)
	}
	l.fromFile = loaded
	return cfg, nil
}

// FromFile reports whether the last Load read a config file.
func (l *Loader) FromFile() bool {
	return l.fromFile
}

func (l *Loader) loadDotenv(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		l.logger.Warn("failed to load dotenv file", "path", path, "error", err)
	}
}

// loadYAMLFile reads a YAML file and unmarshals it into target. Returns
// (true, nil) if the file was found and parsed, (false, nil) if the file does
// not exist, or (false, error) on failure.
func loadYAMLFile(path string, target any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return false, fmt.Errorf("parse %s: %w: %v", filepath.Base(path), ErrInvalidYAML, err)
	}
	return true, nil
}
