package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"
)

// ErrEmptyData is returned when the configuration file is empty.
var ErrEmptyData = errors.New("empty configuration data")

// ErrSectionNotFound is returned when the requested section does not exist
// in the configuration document.
var ErrSectionNotFound = errors.New("section not found")

// ErrInvalidWorkers is returned when the worker count is negative.
var ErrInvalidWorkers = errors.New("workers must not be negative")

// ErrInvalidBatchSize is returned when the batch size is negative.
var ErrInvalidBatchSize = errors.New("batch size must not be negative")

// Config holds the tool configuration.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// SavesDir holds the collected, date-named save files.
	SavesDir string `yaml:"saves_dir"`
	// OutputDir receives all processing output.
	OutputDir string `yaml:"output_dir"`
	// Workers caps processing parallelism; zero means one per CPU.
	Workers int `yaml:"workers"`
	// BatchSize is the number of saves between progress writes.
	BatchSize int `yaml:"batch_size"`
	// MajorCountries is how many countries the CSV summary covers.
	MajorCountries int `yaml:"major_countries"`

	Watch WatchConfig `yaml:"watch"`
}

// WatchConfig configures the autosave watcher.
type WatchConfig struct {
	// SaveDir is the game's save games directory. With a mod active the
	// game writes saves under <base>/<mod>/save games instead.
	SaveDir string `yaml:"save_dir"`
	// Mod is the optional mod folder name appended to SaveDir.
	Mod string `yaml:"mod"`
	// AutosaveName is the autosave filename to react to.
	AutosaveName string `yaml:"autosave_name"`
	// DebounceSeconds suppresses duplicate events within the window.
	DebounceSeconds int `yaml:"debounce_seconds"`
}

// SetDefaults sets default values for the Config. It reports whether
// anything changed.
func (c *Config) SetDefaults() (changed bool) {
	set := func(target *string, def string) {
		if *target == "" {
			*target = def
			changed = true
		}
	}

	set(&c.LogLevel, "info")
	set(&c.SavesDir, "saves")
	set(&c.OutputDir, "output")

	if c.BatchSize == 0 {
		c.BatchSize = 50
		changed = true
	}

	if c.MajorCountries == 0 {
		c.MajorCountries = 20
		changed = true
	}

	if c.Watch.DebounceSeconds == 0 {
		c.Watch.DebounceSeconds = 2
		changed = true
	}

	return changed
}

// Validate validates the Config.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return ErrInvalidWorkers
	}

	if c.BatchSize < 0 {
		return ErrInvalidBatchSize
	}

	return nil
}

// WatchSaveDir resolves the directory the watcher observes, taking the
// optional mod folder into account.
func (c *Config) WatchSaveDir() string {
	if c.Watch.Mod == "" {
		return c.Watch.SaveDir
	}

	return filepath.Join(filepath.Dir(c.Watch.SaveDir), c.Watch.Mod, filepath.Base(c.Watch.SaveDir))
}

// Debounce returns the watch debounce window as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceSeconds) * time.Second
}

// Load reads a YAML configuration file, applies defaults and validates the
// result. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(filepath.Clean(path))
	if errors.Is(err, os.ErrNotExist) {
		cfg.SetDefaults()

		return cfg, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading config %q: %w", path, err)
	}

	if err := Parse(data, cfg, ""); err != nil {
		return nil, err
	}

	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Parse parses YAML data and unmarshals it into the target. A non-empty
// section navigates to that top-level key first via goccy/go-yaml
// PathString, so one file can hold configuration for several tools.
func Parse(data []byte, target any, section string) error {
	if len(data) == 0 {
		return ErrEmptyData
	}

	if section == "" {
		if err := yaml.Unmarshal(data, target); err != nil {
			return fmt.Errorf("unmarshal error: %w", err)
		}

		return nil
	}

	pathObj, err := yaml.PathString("$." + section)
	if err != nil {
		return fmt.Errorf("invalid section %q: %w", section, err)
	}

	if err := pathObj.Read(bytes.NewReader(data), target); err != nil {
		if yaml.IsNotFoundNodeError(err) {
			return fmt.Errorf("%w: %s", ErrSectionNotFound, section)
		}

		return fmt.Errorf("reading section %q: %w", section, err)
	}

	return nil
}
