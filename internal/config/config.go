package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/harrison/filefinder/internal/fileutil"
	"github.com/harrison/filefinder/internal/finder"
	"gopkg.in/yaml.v3"
)

// DirName is the per-project directory holding config and logs.
const DirName = ".file-finder"

// Config represents file-finder configuration options
type Config struct {
	// BufferCapacity is the number of filenames per buffer
	BufferCapacity int `yaml:"buffer_capacity"`

	// InitialBuffers is how many buffers the pool is primed with
	InitialBuffers int `yaml:"initial_buffers"`

	// DumpInterval is how often found matches are printed when idle
	DumpInterval time.Duration `yaml:"dump_interval"`

	// Timeout stops the search early after this long (0 = no timeout)
	Timeout time.Duration `yaml:"timeout"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory where run logs are written (empty disables file logging)
	LogDir string `yaml:"log_dir"`

	// ReportFile receives a YAML export of all matches when set
	ReportFile string `yaml:"report_file"`

	// MetricsFile receives Prometheus text-format pipeline counters when set
	MetricsFile string `yaml:"metrics_file"`

	// ExcludeDirs lists directory names that are not descended into
	ExcludeDirs []string `yaml:"exclude_dirs"`

	// MaxDepth limits how deep the walk goes below the root (0 = unlimited)
	MaxDepth int `yaml:"max_depth"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		BufferCapacity: finder.DefaultBufferCapacity,
		InitialBuffers: finder.DefaultInitialBuffers,
		DumpInterval:   finder.DefaultDumpInterval,
		Timeout:        0,
		LogLevel:       "info",
		LogDir:         filepath.Join(DirName, "logs"),
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Durations are strings in the file; pointers tell "absent" from "zero".
	type yamlConfig struct {
		BufferCapacity *int     `yaml:"buffer_capacity"`
		InitialBuffers *int     `yaml:"initial_buffers"`
		DumpInterval   string   `yaml:"dump_interval"`
		Timeout        string   `yaml:"timeout"`
		LogLevel       string   `yaml:"log_level"`
		LogDir         *string  `yaml:"log_dir"`
		ReportFile     string   `yaml:"report_file"`
		MetricsFile    string   `yaml:"metrics_file"`
		ExcludeDirs    []string `yaml:"exclude_dirs"`
		MaxDepth       *int     `yaml:"max_depth"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlCfg.BufferCapacity != nil {
		cfg.BufferCapacity = *yamlCfg.BufferCapacity
	}
	if yamlCfg.InitialBuffers != nil {
		cfg.InitialBuffers = *yamlCfg.InitialBuffers
	}
	if yamlCfg.DumpInterval != "" {
		interval, err := time.ParseDuration(yamlCfg.DumpInterval)
		if err != nil {
			return nil, fmt.Errorf("invalid dump_interval format %q: %w", yamlCfg.DumpInterval, err)
		}
		cfg.DumpInterval = interval
	}
	if yamlCfg.Timeout != "" {
		timeout, err := time.ParseDuration(yamlCfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout format %q: %w", yamlCfg.Timeout, err)
		}
		cfg.Timeout = timeout
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	// An explicit empty log_dir turns file logging off
	if yamlCfg.LogDir != nil {
		cfg.LogDir = *yamlCfg.LogDir
	}
	if yamlCfg.ReportFile != "" {
		cfg.ReportFile = yamlCfg.ReportFile
	}
	if yamlCfg.MetricsFile != "" {
		cfg.MetricsFile = yamlCfg.MetricsFile
	}
	if len(yamlCfg.ExcludeDirs) > 0 {
		cfg.ExcludeDirs = yamlCfg.ExcludeDirs
	}
	if yamlCfg.MaxDepth != nil {
		cfg.MaxDepth = *yamlCfg.MaxDepth
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .file-finder/config.yaml in the specified directory
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, DirName, "config.yaml"))
}

// Flags carries CLI overrides. Nil fields were not set on the command line.
type Flags struct {
	BufferCapacity *int
	InitialBuffers *int
	DumpInterval   *time.Duration
	Timeout        *time.Duration
	LogLevel       *string
	LogDir         *string
	ReportFile     *string
	MetricsFile    *string
	ExcludeDirs    *[]string
	MaxDepth       *int
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(flags Flags) {
	if flags.BufferCapacity != nil {
		c.BufferCapacity = *flags.BufferCapacity
	}
	if flags.InitialBuffers != nil {
		c.InitialBuffers = *flags.InitialBuffers
	}
	if flags.DumpInterval != nil {
		c.DumpInterval = *flags.DumpInterval
	}
	if flags.Timeout != nil {
		c.Timeout = *flags.Timeout
	}
	if flags.LogLevel != nil {
		c.LogLevel = *flags.LogLevel
	}
	if flags.LogDir != nil {
		c.LogDir = *flags.LogDir
	}
	if flags.ReportFile != nil {
		c.ReportFile = *flags.ReportFile
	}
	if flags.MetricsFile != nil {
		c.MetricsFile = *flags.MetricsFile
	}
	if flags.ExcludeDirs != nil {
		c.ExcludeDirs = *flags.ExcludeDirs
	}
	if flags.MaxDepth != nil {
		c.MaxDepth = *flags.MaxDepth
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	if c.BufferCapacity <= 0 {
		return fmt.Errorf("buffer_capacity must be > 0, got %d", c.BufferCapacity)
	}
	if c.InitialBuffers < 0 {
		return fmt.Errorf("initial_buffers must be >= 0, got %d", c.InitialBuffers)
	}
	if c.DumpInterval <= 0 {
		return fmt.Errorf("dump_interval must be > 0, got %v", c.DumpInterval)
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	// Timeout can be 0 (no timeout) or positive, negative is invalid
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %v", c.Timeout)
	}

	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must be >= 0, got %d", c.MaxDepth)
	}
	for _, dir := range c.ExcludeDirs {
		if dir == "" || filepath.Base(dir) != dir {
			return fmt.Errorf("exclude_dirs entries must be plain directory names, got %q", dir)
		}
	}

	return nil
}

// FinderOptions converts the pipeline settings for the coordinator.
func (c *Config) FinderOptions() finder.Options {
	return finder.Options{
		BufferCapacity: c.BufferCapacity,
		InitialBuffers: c.InitialBuffers,
		DumpInterval:   c.DumpInterval,
		Walk: fileutil.WalkOptions{
			ExcludeDirs: c.ExcludeDirs,
			MaxDepth:    c.MaxDepth,
		},
	}
}

// Marshal renders the configuration as YAML with durations in their string form.
func (c *Config) Marshal() ([]byte, error) {
	out := struct {
		BufferCapacity int      `yaml:"buffer_capacity"`
		InitialBuffers int      `yaml:"initial_buffers"`
		DumpInterval   string   `yaml:"dump_interval"`
		Timeout        string   `yaml:"timeout"`
		LogLevel       string   `yaml:"log_level"`
		LogDir         string   `yaml:"log_dir"`
		ReportFile     string   `yaml:"report_file,omitempty"`
		MetricsFile    string   `yaml:"metrics_file,omitempty"`
		ExcludeDirs    []string `yaml:"exclude_dirs,omitempty"`
		MaxDepth       int      `yaml:"max_depth"`
	}{
		BufferCapacity: c.BufferCapacity,
		InitialBuffers: c.InitialBuffers,
		DumpInterval:   c.DumpInterval.String(),
		Timeout:        c.Timeout.String(),
		LogLevel:       c.LogLevel,
		LogDir:         c.LogDir,
		ReportFile:     c.ReportFile,
		MetricsFile:    c.MetricsFile,
		ExcludeDirs:    c.ExcludeDirs,
		MaxDepth:       c.MaxDepth,
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}
