package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".glyphprint"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the on-disk YAML configuration. All fields are optional;
// zero values leave the corresponding Config field untouched.
//
//	backend: system
//	batch_size: 10
//	batch_delay: 20ms
//	corpus_file: ~/fonts.yaml
//	width_table: widths.yaml
type File struct {
	// Backend selects the measurement backend.
	Backend string `yaml:"backend,omitempty"`

	// BatchSize is the number of fonts probed per batch.
	BatchSize int `yaml:"batch_size,omitempty"`

	// BatchDelay is the inter-batch yield duration as a Go duration
	// string ("20ms"). Kept as a string because yaml.v3 has no native
	// duration decoding; parsed and validated at load time.
	BatchDelay string `yaml:"batch_delay,omitempty"`

	// CorpusFile points to a YAML file of additional font names.
	CorpusFile string `yaml:"corpus_file,omitempty"`

	// WidthTable points to a YAML width table for the table backend.
	WidthTable string `yaml:"width_table,omitempty"`
}

// LoadConfigFile loads settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers
// should handle this error based on whether the path was explicitly
// specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	if cf.BatchDelay != "" {
		if _, err := time.ParseDuration(cf.BatchDelay); err != nil {
			return nil, fmt.Errorf("invalid batch_delay %q: %w", cf.BatchDelay, err)
		}
	}

	return &cf, nil
}

// Apply copies the file's non-zero settings onto the config.
// Flag values already present in cfg are overwritten; callers that want
// flags to win should apply the file before parsing flags.
func (f *File) Apply(cfg *Config) {
	if f.Backend != "" {
		cfg.Backend = f.Backend
	}
	if f.BatchSize > 0 {
		cfg.BatchSize = f.BatchSize
	}
	if f.BatchDelay != "" {
		if d, err := time.ParseDuration(f.BatchDelay); err == nil && d >= 0 {
			cfg.BatchDelay = d
		}
	}
	if f.CorpusFile != "" {
		cfg.CorpusFile = f.CorpusFile
	}
	if f.WidthTable != "" {
		cfg.WidthTableFile = f.WidthTable
	}
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .glyphprint in the current directory
// 3. Look for .glyphprint in the user's home directory
//
// Returns the path to the configuration file if found, or empty string
// if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
