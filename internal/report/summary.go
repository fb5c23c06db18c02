package report

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/harrison/filefinder/internal/models"
)

// Summary prints the final match count and whether the run was cut short.
func Summary(out io.Writer, result models.Result) {
	bold := color.New(color.Bold)
	if !IsTerminal(out) || color.NoColor {
		bold.DisableColor()
	}

	noun := "matches"
	if result.TotalMatches == 1 {
		noun = "match"
	}
	fmt.Fprintf(out, "%s %s for %d needle(s) in %s\n",
		bold.Sprint(humanize.Comma(result.TotalMatches)), noun, len(result.Needles), result.Root)

	if result.TerminatedEarly {
		warn := color.New(color.FgYellow)
		if !IsTerminal(out) || color.NoColor {
			warn.DisableColor()
		}
		fmt.Fprintln(out, warn.Sprint("Search terminated early; results are partial."))
	}
}
