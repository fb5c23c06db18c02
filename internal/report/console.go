// Package report prints matches as the search drains them and writes the
// end-of-run summary and optional YAML export.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/harrison/filefinder/internal/models"
	"github.com/mattn/go-isatty"
)

// Console prints each drained batch grouped by needle. It implements
// finder.Reporter and keeps every match it printed for the export.
type Console struct {
	out     io.Writer
	needles []string
	header  *color.Color
	name    *color.Color

	mu      sync.Mutex
	matches map[string][]string
	total   int64
}

// NewConsole creates a reporter writing to out. Groups are printed in the
// order of needles. Colour is used only when out is a terminal and color
// output is not globally disabled.
func NewConsole(out io.Writer, needles []string) *Console {
	c := &Console{
		out:     out,
		needles: append([]string(nil), needles...),
		header:  color.New(color.FgGreen, color.Bold),
		name:    color.New(color.FgWhite),
		matches: make(map[string][]string),
	}
	if !IsTerminal(out) || color.NoColor {
		c.header.DisableColor()
		c.name.DisableColor()
	} else {
		c.header.EnableColor()
		c.name.EnableColor()
	}
	return c
}

// IsTerminal reports whether w is a terminal file.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ReportMatches prints one batch.
func (c *Console) ReportMatches(batch []models.Match) {
	if len(batch) == 0 {
		return
	}

	grouped := make(map[string][]string)
	for _, m := range batch {
		grouped[m.Needle] = append(grouped[m.Needle], m.Name)
	}

	var b strings.Builder
	for _, needle := range c.order(grouped) {
		names := grouped[needle]
		b.WriteString(c.header.Sprintf("%q (%d)", needle, len(names)))
		b.WriteString("\n")
		for _, name := range names {
			b.WriteString("  ")
			b.WriteString(c.name.Sprint(name))
			b.WriteString("\n")
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for needle, names := range grouped {
		c.matches[needle] = append(c.matches[needle], names...)
	}
	c.total += int64(len(batch))
	fmt.Fprint(c.out, b.String())
}

// order lists the needles present in grouped, configured needles first.
func (c *Console) order(grouped map[string][]string) []string {
	var out []string
	seen := make(map[string]bool, len(grouped))
	for _, needle := range c.needles {
		if _, ok := grouped[needle]; ok && !seen[needle] {
			out = append(out, needle)
			seen[needle] = true
		}
	}
	for needle := range grouped {
		if !seen[needle] {
			out = append(out, needle)
			seen[needle] = true
		}
	}
	return out
}

// Matches returns a copy of every printed match, keyed by needle.
func (c *Console) Matches() map[string][]string {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string][]string, len(c.matches))
	for needle, names := range c.matches {
		out[needle] = append([]string(nil), names...)
	}
	return out
}

// Total returns how many matches have been printed.
func (c *Console) Total() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}
