// Package config loads the optional visionml.yaml file that sits next to the
// installation.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bagtoad/visionml/internal/bootstrap"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the install directory.
const FileName = "visionml.yaml"

// LibDirEnv overrides the library directory.
const LibDirEnv = "VISIONML_LIB_DIR"

// Config controls how the native library is located and loaded.
type Config struct {
	// LibDir is the directory with the library and its dependencies.
	// Relative paths are relative to the config file.
	LibDir     string   `yaml:"lib_dir,omitempty"`
	Library    string   `yaml:"library,omitempty"`
	EntryPoint string   `yaml:"entry_point,omitempty"`
	LogLevel   string   `yaml:"log_level,omitempty"`
	ExtraDirs  []string `yaml:"extra_dirs,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Library:    bootstrap.DefaultLibrary,
		EntryPoint: bootstrap.DefaultEntryPoint,
		LogLevel:   logrus.WarnLevel.String(),
	}
}

// DefaultPath returns visionml.yaml in the install directory.
func DefaultPath() string {
	return filepath.Join(bootstrap.ExecutableDir(), FileName)
}

// Load reads the config file at path on top of the defaults. A missing file
// is not an error; use LoadFile for a path the user named.
func Load(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// LoadFile is like Load but fails when the file does not exist.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("cannot parse config file %s: %w", path, err)
	}

	base := filepath.Dir(path)
	if cfg.LibDir != "" && !filepath.IsAbs(cfg.LibDir) {
		cfg.LibDir = filepath.Join(base, cfg.LibDir)
	}
	for i, d := range cfg.ExtraDirs {
		if !filepath.IsAbs(d) {
			cfg.ExtraDirs[i] = filepath.Join(base, d)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// ResolveLibDir picks the library directory.
// Priority: flag > VISIONML_LIB_DIR > config file > lib/ next to the executable.
func (c *Config) ResolveLibDir(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv(LibDirEnv); env != "" {
		return env
	}
	if c.LibDir != "" {
		return c.LibDir
	}
	return filepath.Join(bootstrap.ExecutableDir(), bootstrap.LibSubdir)
}

// Validate checks that required fields are set.
func (c *Config) Validate() error {
	if c.Library == "" {
		return fmt.Errorf("library must not be empty")
	}
	if c.EntryPoint == "" {
		return fmt.Errorf("entry_point must not be empty")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the configured log level.
func (c *Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.WarnLevel
	}
	return level
}

// Options converts c into bootstrap options.
func (c *Config) Options(libDir string) []bootstrap.Option {
	opts := []bootstrap.Option{
		bootstrap.WithLibDir(libDir),
		bootstrap.WithLibrary(c.Library),
		bootstrap.WithEntryPoint(c.EntryPoint),
	}
	if len(c.ExtraDirs) > 0 {
		opts = append(opts, bootstrap.WithExtraDirs(c.ExtraDirs...))
	}
	return opts
}
