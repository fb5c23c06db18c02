package logger

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harrison/filefinder/internal/models"
)

// colorScheme defines consistent colors for summary metrics.
// Green: matches found
// Red: faults and early termination
// Yellow: skipped entries
// Cyan: labels
type colorScheme struct {
	success *color.Color
	fail    *color.Color
	warn    *color.Color
	label   *color.Color
	value   *color.Color
}

// newColorScheme creates the standard color scheme for metrics.
func newColorScheme() *colorScheme {
	return &colorScheme{
		success: color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		warn:    color.New(color.FgYellow),
		label:   color.New(color.FgCyan),
		value:   color.New(color.FgWhite),
	}
}

// formatColorizedMetric formats a single metric with colorized label and value.
// Format: "label: value"
func formatColorizedMetric(label string, value interface{}, scheme *colorScheme) string {
	labelColored := scheme.label.Sprint(label)
	valueColored := scheme.value.Sprintf("%v", value)
	return fmt.Sprintf("%s: %s", labelColored, valueColored)
}

// summaryMetrics renders one line per run statistic. A nil scheme yields
// plain text, which is what the file logger writes.
func summaryMetrics(result models.Result, scheme *colorScheme) []string {
	plain := func(label string, value interface{}) string {
		return fmt.Sprintf("%s: %v", label, value)
	}

	metric := plain
	if scheme != nil {
		metric = func(label string, value interface{}) string {
			return formatColorizedMetric(label, value, scheme)
		}
	}

	matches := metric("Matches", formatCount(result.TotalMatches))
	if scheme != nil && result.TotalMatches > 0 {
		matches = fmt.Sprintf("%s: %s", scheme.success.Sprint("Matches"), scheme.value.Sprint(formatCount(result.TotalMatches)))
	}

	lines := []string{
		matches,
		metric("Names scanned", formatCount(result.NamesScanned)),
		metric("Buffers created", formatCount(result.BuffersCreated)),
	}

	if result.TraversalErrors > 0 {
		line := plain("Skipped entries", formatCount(result.TraversalErrors))
		if scheme != nil {
			line = scheme.warn.Sprint(line)
		}
		lines = append(lines, line)
	}

	lines = append(lines, metric("Duration", formatDuration(result.Duration)))

	if result.TerminatedEarly {
		line := "Terminated early: true"
		if scheme != nil {
			line = scheme.fail.Sprint(line)
		}
		lines = append(lines, line)
	}

	return lines
}
