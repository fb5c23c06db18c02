package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/harrison/filefinder/internal/config"
	"github.com/harrison/filefinder/internal/control"
	"github.com/harrison/filefinder/internal/display"
	"github.com/harrison/filefinder/internal/finder"
	"github.com/harrison/filefinder/internal/logger"
	"github.com/harrison/filefinder/internal/metrics"
	"github.com/harrison/filefinder/internal/models"
	"github.com/harrison/filefinder/internal/report"
	"github.com/spf13/cobra"
)

// outputLockTimeout bounds the wait for another run's lock on the report file.
var outputLockTimeout = 10 * time.Second

// validateSearchArgs checks the path and needles before anything starts.
func validateSearchArgs(cmd *cobra.Command, args []string) error {
	if len(args) < 2 {
		return &ArgumentError{Reason: "a path and at least one substring are required"}
	}

	root := args[0]
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return &ArgumentError{Reason: fmt.Sprintf("path %q does not exist", root)}
		}
		return &ArgumentError{Reason: fmt.Sprintf("cannot access path %q: %v", root, err)}
	}
	if !info.IsDir() {
		return &ArgumentError{Reason: fmt.Sprintf("path %q is not a directory", root)}
	}

	for i, needle := range args[1:] {
		if needle == "" {
			return &ArgumentError{Reason: fmt.Sprintf("substring %d is empty", i+1)}
		}
	}
	return nil
}

// runSearch implements the root command
func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	search := models.Search{Root: args[0], Needles: args[1:]}
	runID := uuid.NewString()
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	consoleLog := logger.NewConsoleLogger(stderr, cfg.LogLevel)
	runLog := &multiLogger{loggers: []runLogger{consoleLog}}

	if cfg.LogDir != "" {
		fileLog, err := logger.NewFileLoggerWithDirAndLevel(cfg.LogDir, cfg.LogLevel, runID)
		if err != nil {
			return fmt.Errorf("failed to create file logger: %w", err)
		}
		defer fileLog.Close()
		runLog.loggers = append(runLog.loggers, fileLog)
		runLog.Debugf("run %s logging to %s", fileLog.RunID(), fileLog.Path())
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	recorder := metrics.New()
	reporter := report.NewConsole(stdout, search.Needles)

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok {
		control.PrintHint(stderr, f, cfg.DumpInterval)
	}

	coordinator, err := finder.NewCoordinator(finder.CoordinatorConfig{
		Search:   search,
		Options:  cfg.FinderOptions(),
		Reporter: reporter,
		Logger:   runLog,
		Recorder: recorder,
		Commands: control.Commands(ctx, in),
	})
	if err != nil {
		return fmt.Errorf("failed to set up search: %w", err)
	}

	runLog.LogRunStart(search)
	result, runErr := coordinator.Run(ctx)
	runLog.LogSummary(result)

	report.Summary(stdout, result)
	if result.TraversalErrors > 0 {
		display.WarnSkippedPaths(result.TraversalErrors, result.SkippedPaths).Display(stderr)
	}

	if err := writeOutputs(cmd.Context(), cfg, runID, result, reporter, recorder, runLog); err != nil {
		return err
	}

	if runErr != nil {
		runLog.Errorf("search failed: %v", runErr)
		return fmt.Errorf("search failed: %w", runErr)
	}
	return nil
}

// writeOutputs writes the optional report and metrics files.
func writeOutputs(ctx context.Context, cfg *config.Config, runID string, result models.Result,
	reporter *report.Console, recorder *metrics.Metrics, log runLogger) error {
	if cfg.ReportFile != "" {
		lockCtx, cancel := context.WithTimeout(ctx, outputLockTimeout)
		defer cancel()

		export := report.NewExport(runID, result, reporter.Matches())
		if err := report.WriteExport(lockCtx, cfg.ReportFile, export); err != nil {
			return err
		}
		log.Infof("report written to %s", cfg.ReportFile)
	}

	if cfg.MetricsFile != "" {
		recorder.ObserveResult(result)
		if err := recorder.WriteTextfile(cfg.MetricsFile); err != nil {
			return err
		}
		log.Debugf("metrics written to %s", cfg.MetricsFile)
	}
	return nil
}

// runLogger is implemented by both console and file loggers.
type runLogger interface {
	finder.Logger
	Errorf(format string, args ...interface{})
	LogRunStart(search models.Search)
	LogSummary(result models.Result)
}

// multiLogger forwards every call to each of its loggers
type multiLogger struct {
	loggers []runLogger
}

func (ml *multiLogger) Debugf(format string, args ...interface{}) {
	for _, l := range ml.loggers {
		l.Debugf(format, args...)
	}
}

func (ml *multiLogger) Infof(format string, args ...interface{}) {
	for _, l := range ml.loggers {
		l.Infof(format, args...)
	}
}

func (ml *multiLogger) Warnf(format string, args ...interface{}) {
	for _, l := range ml.loggers {
		l.Warnf(format, args...)
	}
}

func (ml *multiLogger) Errorf(format string, args ...interface{}) {
	for _, l := range ml.loggers {
		l.Errorf(format, args...)
	}
}

func (ml *multiLogger) LogRunStart(search models.Search) {
	for _, l := range ml.loggers {
		l.LogRunStart(search)
	}
}

func (ml *multiLogger) LogSummary(result models.Result) {
	for _, l := range ml.loggers {
		l.LogSummary(result)
	}
}
