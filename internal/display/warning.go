package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Paths      []string // Related paths (optional)
	Suggestion string   // Action to take (optional)
}

// Display writes the warning block to out.
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Paths) > 0 {
		if len(w.Paths) == 1 {
			b.WriteString("    Affected path:\n")
		} else {
			b.WriteString("    Affected paths:\n")
		}
		for i, path := range w.Paths {
			fmt.Fprintf(&b, "      %d. %s\n", i+1, path)
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	color.New(color.FgYellow).Fprint(out, b.String())
}

// WarnSkippedPaths builds the end-of-run warning for entries the walk could
// not read. paths holds the first few of total skipped entries.
func WarnSkippedPaths(total int64, paths []string) Warning {
	noun := "entries"
	if total == 1 {
		noun = "entry"
	}

	w := Warning{
		Title:      fmt.Sprintf("%s %s could not be read and were skipped", humanize.Comma(total), noun),
		Paths:      paths,
		Suggestion: "Check permissions on the listed paths; every skipped entry is in the run log.",
	}
	if total == 1 {
		w.Title = "1 entry could not be read and was skipped"
	}
	if int64(len(paths)) < total {
		w.Message = fmt.Sprintf("Showing the first %d.", len(paths))
	}
	return w
}
