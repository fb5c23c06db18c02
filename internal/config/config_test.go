package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return configPath
}

// TestDefaultConfig verifies default configuration values
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.BufferCapacity != 1024 {
		t.Errorf("BufferCapacity = %d, want 1024", cfg.BufferCapacity)
	}
	if cfg.InitialBuffers != 64 {
		t.Errorf("InitialBuffers = %d, want 64", cfg.InitialBuffers)
	}
	if cfg.DumpInterval != 5*time.Second {
		t.Errorf("DumpInterval = %v, want 5s", cfg.DumpInterval)
	}
	if cfg.Timeout != 0 {
		t.Errorf("Timeout = %v, want 0", cfg.Timeout)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.LogDir != ".file-finder/logs" {
		t.Errorf("LogDir = %q, want %q", cfg.LogDir, ".file-finder/logs")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid, got %v", err)
	}
}

// TestLoadConfigValidFile tests loading a valid YAML config file
func TestLoadConfigValidFile(t *testing.T) {
	configPath := writeConfig(t, `buffer_capacity: 256
initial_buffers: 8
dump_interval: 2s
timeout: 30m
log_level: debug
log_dir: /tmp/logs
report_file: matches.yaml
metrics_file: finder.prom
exclude_dirs: [.git, node_modules]
max_depth: 3
`)

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.BufferCapacity != 256 {
		t.Errorf("BufferCapacity = %d, want 256", cfg.BufferCapacity)
	}
	if cfg.InitialBuffers != 8 {
		t.Errorf("InitialBuffers = %d, want 8", cfg.InitialBuffers)
	}
	if cfg.DumpInterval != 2*time.Second {
		t.Errorf("DumpInterval = %v, want 2s", cfg.DumpInterval)
	}
	if cfg.Timeout != 30*time.Minute {
		t.Errorf("Timeout = %v, want 30m", cfg.Timeout)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.LogDir != "/tmp/logs" {
		t.Errorf("LogDir = %q, want %q", cfg.LogDir, "/tmp/logs")
	}
	if cfg.ReportFile != "matches.yaml" {
		t.Errorf("ReportFile = %q, want %q", cfg.ReportFile, "matches.yaml")
	}
	if cfg.MetricsFile != "finder.prom" {
		t.Errorf("MetricsFile = %q, want %q", cfg.MetricsFile, "finder.prom")
	}
	if len(cfg.ExcludeDirs) != 2 || cfg.ExcludeDirs[0] != ".git" || cfg.ExcludeDirs[1] != "node_modules" {
		t.Errorf("ExcludeDirs = %v, want [.git node_modules]", cfg.ExcludeDirs)
	}
	if cfg.MaxDepth != 3 {
		t.Errorf("MaxDepth = %d, want 3", cfg.MaxDepth)
	}
}

// TestLoadConfigFileNotExists tests fallback to defaults when file doesn't exist
func TestLoadConfigFileNotExists(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("LoadConfig() should not error on missing file, got: %v", err)
	}
	if cfg.BufferCapacity != 1024 {
		t.Errorf("BufferCapacity = %d, want 1024 (default)", cfg.BufferCapacity)
	}
}

// TestLoadConfigPartialFile keeps defaults for absent keys
func TestLoadConfigPartialFile(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "initial_buffers: 0\n"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.InitialBuffers != 0 {
		t.Errorf("InitialBuffers = %d, want explicit 0", cfg.InitialBuffers)
	}
	if cfg.BufferCapacity != 1024 {
		t.Errorf("BufferCapacity = %d, want default 1024", cfg.BufferCapacity)
	}
	if cfg.LogDir != ".file-finder/logs" {
		t.Errorf("LogDir = %q, want default", cfg.LogDir)
	}
}

// TestLoadConfigEmptyLogDir disables file logging
func TestLoadConfigEmptyLogDir(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "log_dir: \"\"\n"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.LogDir != "" {
		t.Errorf("LogDir = %q, want empty", cfg.LogDir)
	}
}

// TestLoadConfigErrors tests malformed files
func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"malformed yaml", "buffer_capacity: [unclosed\n", "failed to parse config file"},
		{"bad timeout", "timeout: soon\n", "invalid timeout format"},
		{"bad interval", "dump_interval: often\n", "invalid dump_interval format"},
		{"wrong type", "buffer_capacity: lots\n", "failed to parse config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("LoadConfig() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

// TestLoadConfigFromDir reads .file-finder/config.yaml
func TestLoadConfigFromDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, DirName), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, DirName, "config.yaml"), []byte("log_level: warn\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFromDir(dir)
	if err != nil {
		t.Fatalf("LoadConfigFromDir() error = %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "warn")
	}

	cfg, err = LoadConfigFromDir(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfigFromDir() on empty dir error = %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want default", cfg.LogLevel)
	}
}

// TestMergeWithFlags tests that only set flags override
func TestMergeWithFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ReportFile = "from-file.yaml"

	capacity := 16
	timeout := time.Minute
	logDir := ""
	exclude := []string{"vendor"}
	cfg.MergeWithFlags(Flags{
		BufferCapacity: &capacity,
		Timeout:        &timeout,
		LogDir:         &logDir,
		ExcludeDirs:    &exclude,
	})

	if cfg.BufferCapacity != 16 {
		t.Errorf("BufferCapacity = %d, want 16", cfg.BufferCapacity)
	}
	if cfg.Timeout != time.Minute {
		t.Errorf("Timeout = %v, want 1m", cfg.Timeout)
	}
	if cfg.LogDir != "" {
		t.Errorf("LogDir = %q, want empty", cfg.LogDir)
	}
	if len(cfg.ExcludeDirs) != 1 || cfg.ExcludeDirs[0] != "vendor" {
		t.Errorf("ExcludeDirs = %v, want [vendor]", cfg.ExcludeDirs)
	}
	if cfg.ReportFile != "from-file.yaml" {
		t.Errorf("ReportFile = %q, unset flag must not override", cfg.ReportFile)
	}
	if cfg.InitialBuffers != 64 {
		t.Errorf("InitialBuffers = %d, unset flag must not override", cfg.InitialBuffers)
	}
}

// TestValidate tests invalid values
func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"zero capacity", func(c *Config) { c.BufferCapacity = 0 }, "buffer_capacity"},
		{"negative initial", func(c *Config) { c.InitialBuffers = -1 }, "initial_buffers"},
		{"zero interval", func(c *Config) { c.DumpInterval = 0 }, "dump_interval"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, "timeout"},
		{"negative depth", func(c *Config) { c.MaxDepth = -2 }, "max_depth"},
		{"path in exclude", func(c *Config) { c.ExcludeDirs = []string{"a/b"} }, "exclude_dirs"},
		{"empty exclude", func(c *Config) { c.ExcludeDirs = []string{""} }, "exclude_dirs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want mention of %q", err.Error(), tt.want)
			}
		})
	}
}

func TestFinderOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BufferCapacity = 10
	cfg.ExcludeDirs = []string{".git"}
	cfg.MaxDepth = 2

	opts := cfg.FinderOptions()
	if opts.BufferCapacity != 10 || opts.InitialBuffers != 64 || opts.DumpInterval != 5*time.Second {
		t.Errorf("FinderOptions() = %+v", opts)
	}
	if opts.Walk.MaxDepth != 2 || len(opts.Walk.ExcludeDirs) != 1 {
		t.Errorf("Walk = %+v", opts.Walk)
	}
}

// TestMarshalRoundTrip checks the printed config loads back unchanged
func TestMarshalRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timeout = 90 * time.Second
	cfg.ExcludeDirs = []string{"vendor"}

	data, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	if raw["timeout"] != "1m30s" {
		t.Errorf("timeout = %v, want 1m30s", raw["timeout"])
	}

	loaded, err := LoadConfig(writeConfig(t, string(data)))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if loaded.Timeout != cfg.Timeout || loaded.DumpInterval != cfg.DumpInterval || loaded.ExcludeDirs[0] != "vendor" {
		t.Errorf("round trip = %+v, want %+v", loaded, cfg)
	}
}
