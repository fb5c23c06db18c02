package logger

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/harrison/filefinder/internal/models"
)

func withColor(t *testing.T, enabled bool) {
	t.Helper()
	old := color.NoColor
	color.NoColor = !enabled
	t.Cleanup(func() { color.NoColor = old })
}

func TestNewColorScheme(t *testing.T) {
	scheme := newColorScheme()

	if scheme.success == nil || scheme.fail == nil || scheme.warn == nil || scheme.label == nil || scheme.value == nil {
		t.Fatalf("expected every color to be initialized, got %+v", scheme)
	}
}

func TestFormatColorizedMetric(t *testing.T) {
	withColor(t, true)

	result := formatColorizedMetric("Matches", 5, newColorScheme())

	if !strings.Contains(result, "Matches") || !strings.Contains(result, "5") {
		t.Errorf("expected label and value in %q", result)
	}
	// Cyan ANSI code is \x1b[36m
	if !strings.Contains(result, "\x1b[36m") {
		t.Errorf("expected cyan label, got %q", result)
	}
}

func TestSummaryMetrics_Plain(t *testing.T) {
	lines := summaryMetrics(models.Result{TotalMatches: 2, NamesScanned: 10, BuffersCreated: 1}, nil)

	want := []string{"Matches: 2", "Names scanned: 10", "Buffers created: 1", "Duration: 0ms"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestSummaryMetrics_Colors(t *testing.T) {
	withColor(t, true)

	lines := summaryMetrics(models.Result{TotalMatches: 1, TraversalErrors: 1, TerminatedEarly: true}, newColorScheme())
	joined := strings.Join(lines, "\n")

	for _, code := range []string{"\x1b[32m", "\x1b[33m", "\x1b[31m"} {
		if !strings.Contains(joined, code) {
			t.Errorf("expected ANSI code %q in %q", code, joined)
		}
	}
}

func TestSummaryMetrics_DisabledWhenNoColor(t *testing.T) {
	withColor(t, false)

	lines := summaryMetrics(models.Result{TotalMatches: 1, TerminatedEarly: true}, newColorScheme())
	joined := strings.Join(lines, "\n")

	if strings.Contains(joined, "\x1b[") {
		t.Errorf("expected no ANSI codes when NoColor=true, got %q", joined)
	}
	if !strings.Contains(joined, "Terminated early: true") {
		t.Errorf("expected content without colors, got %q", joined)
	}
}
