package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harrison/filefinder/internal/config"
	"github.com/spf13/cobra"
)

// NewConfigCommand creates the config command
func NewConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration a search would use: defaults, overridden by the
config file, overridden by flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

// loadConfig loads the config file, applies changed flags and validates the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromDir(".")
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	var overrides config.Flags

	// Only flags the user actually set override the file.
	if flags.Changed("buffer-size") {
		v, _ := flags.GetInt("buffer-size")
		overrides.BufferCapacity = &v
	}
	if flags.Changed("initial-buffers") {
		v, _ := flags.GetInt("initial-buffers")
		overrides.InitialBuffers = &v
	}
	if flags.Changed("dump-interval") {
		v, _ := flags.GetDuration("dump-interval")
		overrides.DumpInterval = &v
	}
	if flags.Changed("timeout") {
		v, _ := flags.GetDuration("timeout")
		overrides.Timeout = &v
	}
	if flags.Changed("log-level") {
		v, _ := flags.GetString("log-level")
		overrides.LogLevel = &v
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		debug := "debug"
		overrides.LogLevel = &debug
	}
	if flags.Changed("log-dir") {
		v, _ := flags.GetString("log-dir")
		overrides.LogDir = &v
	}
	if flags.Changed("report-file") {
		v, _ := flags.GetString("report-file")
		overrides.ReportFile = &v
	}
	if flags.Changed("metrics-file") {
		v, _ := flags.GetString("metrics-file")
		overrides.MetricsFile = &v
	}
	if flags.Changed("exclude") {
		v, _ := flags.GetStringSlice("exclude")
		overrides.ExcludeDirs = &v
	}
	if flags.Changed("max-depth") {
		v, _ := flags.GetInt("max-depth")
		overrides.MaxDepth = &v
	}

	cfg.MergeWithFlags(overrides)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if noColor, _ := flags.GetBool("no-color"); noColor {
		color.NoColor = true
	}

	return cfg, nil
}
