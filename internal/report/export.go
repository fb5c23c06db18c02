package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/harrison/filefinder/internal/filelock"
	"github.com/harrison/filefinder/internal/models"
	"gopkg.in/yaml.v3"
)

// Export is the YAML document written to the report file.
type Export struct {
	RunID           string        `yaml:"run_id"`
	GeneratedAt     time.Time     `yaml:"generated_at"`
	Root            string        `yaml:"root"`
	TerminatedEarly bool          `yaml:"terminated_early"`
	TotalMatches    int64         `yaml:"total_matches"`
	NamesScanned    int64         `yaml:"names_scanned"`
	SkippedEntries  int64         `yaml:"skipped_entries"`
	Duration        string        `yaml:"duration"`
	Needles         []NeedleMatch `yaml:"needles"`
}

// NeedleMatch lists the names found for one needle, sorted.
type NeedleMatch struct {
	Needle string   `yaml:"needle"`
	Count  int      `yaml:"count"`
	Names  []string `yaml:"names"`
}

// NewExport assembles the export document. Every searched needle appears,
// including those without matches.
func NewExport(runID string, result models.Result, matches map[string][]string) Export {
	export := Export{
		RunID:           runID,
		GeneratedAt:     time.Now().UTC().Truncate(time.Second),
		Root:            result.Root,
		TerminatedEarly: result.TerminatedEarly,
		TotalMatches:    result.TotalMatches,
		NamesScanned:    result.NamesScanned,
		SkippedEntries:  result.TraversalErrors,
		Duration:        result.Duration.Round(time.Millisecond).String(),
	}

	for _, needle := range result.Needles {
		names := append([]string{}, matches[needle]...)
		sort.Strings(names)
		export.Needles = append(export.Needles, NeedleMatch{
			Needle: needle,
			Count:  len(names),
			Names:  names,
		})
	}
	return export
}

// WriteExport writes the export to path under a cross-process lock,
// replacing any previous report atomically.
func WriteExport(ctx context.Context, path string, export Export) error {
	data, err := yaml.Marshal(export)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := filelock.LockAndWrite(ctx, path, data); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}
