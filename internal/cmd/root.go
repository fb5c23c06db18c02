package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// usageLine is shown with every argument error.
const usageLine = "file-finder <path> <substring1> [<substring2> ...]"

// NewRootCommand creates and returns the root cobra command for file-finder
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   usageLine,
		Short: "Concurrently search a directory tree for filenames containing substrings",
		Long: `file-finder walks a directory tree once and searches every filename for
each of the given substrings concurrently, one worker per substring.

Matches print every dump interval (default 5s). While the search runs,
press Enter to print the matches found so far, or type q and Enter to quit.
Ctrl+C and --timeout also stop the search early.

Configuration is loaded from .file-finder/config.yaml if present.
CLI flags override configuration file settings.

Examples:
  file-finder /var/log error warn
  file-finder --exclude .git --exclude node_modules ~/src main_test
  file-finder --timeout 30s --report-file matches.yaml / .pem
  file-finder config --buffer-size 4096   # show the effective configuration`,
		Version:       Version,
		Args:          validateSearchArgs,
		RunE:          runSearch,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.String("config", "", "Path to config file (default: .file-finder/config.yaml)")
	flags.Int("buffer-size", 0, "Filenames per buffer (default from config: 1024)")
	flags.Int("initial-buffers", 0, "Buffers the pool is primed with (default from config: 64)")
	flags.Duration("dump-interval", 0, "How often matches are printed (e.g. 5s, 1m)")
	flags.Duration("timeout", 0, "Stop the search early after this long (0 = no timeout)")
	flags.String("log-level", "", "Log level: trace, debug, info, warn, error")
	flags.String("log-dir", "", "Directory for run logs (empty string disables file logging)")
	flags.Bool("verbose", false, "Shorthand for --log-level debug")
	flags.String("report-file", "", "Write all matches to this YAML file when the search ends")
	flags.String("metrics-file", "", "Write pipeline metrics in Prometheus text format to this file")
	flags.StringSlice("exclude", nil, "Directory name not to descend into (repeatable)")
	flags.Int("max-depth", 0, "Maximum directory depth below the root (0 = unlimited)")
	flags.Bool("no-color", false, "Disable colored output")

	cmd.AddCommand(NewConfigCommand())

	return cmd
}
