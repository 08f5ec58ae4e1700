package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	if cfg.Backend != BackendTable {
		t.Errorf("Backend = %q, want %q", cfg.Backend, BackendTable)
	}
	if cfg.BatchSize != DefaultBatchSize {
		t.Errorf("BatchSize = %d, want %d", cfg.BatchSize, DefaultBatchSize)
	}
	if cfg.BatchDelay != DefaultBatchDelay {
		t.Errorf("BatchDelay = %v, want %v", cfg.BatchDelay, DefaultBatchDelay)
	}
	if cfg.Runs != DefaultVerifyRuns {
		t.Errorf("Runs = %d, want %d", cfg.Runs, DefaultVerifyRuns)
	}
	if cfg.Concurrency != 1 {
		t.Errorf("Concurrency = %d, want 1", cfg.Concurrency)
	}
	if cfg.SaveToDB {
		t.Error("SaveToDB should default to false")
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{
			name:    "valid defaults",
			modify:  func(c *Config) {},
			wantErr: nil,
		},
		{
			name:    "system backend",
			modify:  func(c *Config) { c.Backend = BackendSystem },
			wantErr: nil,
		},
		{
			name:    "unknown backend",
			modify:  func(c *Config) { c.Backend = "canvas" },
			wantErr: ErrUnknownBackend,
		},
		{
			name:    "zero batch size",
			modify:  func(c *Config) { c.BatchSize = 0 },
			wantErr: ErrInvalidBatchSize,
		},
		{
			name:    "negative batch size",
			modify:  func(c *Config) { c.BatchSize = -5 },
			wantErr: ErrInvalidBatchSize,
		},
		{
			name:    "negative batch delay",
			modify:  func(c *Config) { c.BatchDelay = -time.Millisecond },
			wantErr: ErrInvalidBatchDelay,
		},
		{
			name:    "zero batch delay is allowed",
			modify:  func(c *Config) { c.BatchDelay = 0 },
			wantErr: nil,
		},
		{
			name: "json and markdown together",
			modify: func(c *Config) {
				c.JSONReport = true
				c.MarkdownReport = true
			},
			wantErr: ErrConflictingReportFormats,
		},
		{
			name:    "zero runs",
			modify:  func(c *Config) { c.Runs = 0 },
			wantErr: ErrInvalidRuns,
		},
		{
			name:    "zero concurrency",
			modify:  func(c *Config) { c.Concurrency = 0 },
			wantErr: ErrInvalidConcurrency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("valid file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		content := []byte("backend: system\nbatch_size: 25\nbatch_delay: 50ms\ncorpus_file: extra.yaml\n")
		if err := os.WriteFile(path, content, 0o600); err != nil {
			t.Fatal(err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("LoadConfigFile() error = %v", err)
		}

		if cf.Backend != BackendSystem {
			t.Errorf("Backend = %q, want %q", cf.Backend, BackendSystem)
		}
		if cf.BatchSize != 25 {
			t.Errorf("BatchSize = %d, want 25", cf.BatchSize)
		}
		if cf.BatchDelay != "50ms" {
			t.Errorf("BatchDelay = %q, want 50ms", cf.BatchDelay)
		}
		if cf.CorpusFile != "extra.yaml" {
			t.Errorf("CorpusFile = %q, want %q", cf.CorpusFile, "extra.yaml")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid batch delay", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bad-delay.yaml")
		if err := os.WriteFile(path, []byte("batch_delay: soon\n"), 0o600); err != nil {
			t.Fatal(err)
		}

		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected error for unparseable batch_delay")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("backend: [unterminated"), 0o600); err != nil {
			t.Fatal(err)
		}

		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected parse error, got nil")
		}
	})
}

func TestFileApply(t *testing.T) {
	t.Parallel()

	t.Run("non-zero fields override", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cf := &File{
			Backend:    BackendSystem,
			BatchSize:  3,
			BatchDelay: "5ms",
			WidthTable: "w.yaml",
		}
		cf.Apply(cfg)

		if cfg.Backend != BackendSystem {
			t.Errorf("Backend = %q, want %q", cfg.Backend, BackendSystem)
		}
		if cfg.BatchSize != 3 {
			t.Errorf("BatchSize = %d, want 3", cfg.BatchSize)
		}
		if cfg.BatchDelay != 5*time.Millisecond {
			t.Errorf("BatchDelay = %v, want 5ms", cfg.BatchDelay)
		}
		if cfg.WidthTableFile != "w.yaml" {
			t.Errorf("WidthTableFile = %q, want %q", cfg.WidthTableFile, "w.yaml")
		}
	})

	t.Run("zero fields leave defaults", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		(&File{}).Apply(cfg)

		if cfg.Backend != BackendTable {
			t.Errorf("Backend = %q, want %q", cfg.Backend, BackendTable)
		}
		if cfg.BatchSize != DefaultBatchSize {
			t.Errorf("BatchSize = %d, want %d", cfg.BatchSize, DefaultBatchSize)
		}
	})
}

func TestFindConfigFile(t *testing.T) {
	t.Run("explicit path exists", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cfg.yaml")
		if err := os.WriteFile(path, []byte("backend: table\n"), 0o600); err != nil {
			t.Fatal(err)
		}

		if got := FindConfigFile(path); got != path {
			t.Errorf("FindConfigFile() = %q, want %q", got, path)
		}
	})

	t.Run("explicit path missing", func(t *testing.T) {
		if got := FindConfigFile(filepath.Join(t.TempDir(), "nope.yaml")); got != "" {
			t.Errorf("FindConfigFile() = %q, want empty", got)
		}
	})

	t.Run("current directory", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, DefaultConfigFile)
		if err := os.WriteFile(path, []byte("backend: table\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		t.Chdir(dir)

		got := FindConfigFile("")
		// Resolve symlinks: t.TempDir may live behind /private on darwin.
		gotResolved, err := filepath.EvalSymlinks(got)
		if err != nil {
			t.Fatal(err)
		}
		wantResolved, err := filepath.EvalSymlinks(path)
		if err != nil {
			t.Fatal(err)
		}
		if gotResolved != wantResolved {
			t.Errorf("FindConfigFile() = %q, want %q", gotResolved, wantResolved)
		}
	})
}

func TestXDGDirs(t *testing.T) {
	t.Parallel()

	if dir := XDGDataDir(); filepath.Base(dir) != AppName {
		t.Errorf("XDGDataDir() = %q, want leaf %q", dir, AppName)
	}
	if dir := XDGConfigDir(); filepath.Base(dir) != AppName {
		t.Errorf("XDGConfigDir() = %q, want leaf %q", dir, AppName)
	}
}
