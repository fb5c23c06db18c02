// Package control turns interactive input into commands for a running search.
package control

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/harrison/filefinder/internal/models"
	"github.com/mattn/go-isatty"
)

// Commands reads r line by line and delivers one command per line until r is
// exhausted or ctx ends; the channel is then closed. "q" and "quit" stop the
// search, any other line requests a dump.
//
// A blocked read on r cannot be interrupted, so when r is stdin the reading
// goroutine lives until the next line or process exit.
func Commands(ctx context.Context, r io.Reader) <-chan models.Command {
	out := make(chan models.Command)

	go func() {
		defer close(out)

		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			cmd := models.ParseCommand(scanner.Text())
			select {
			case out <- cmd:
			case <-ctx.Done():
				return
			}
			if cmd == models.CommandQuit {
				return
			}
		}
	}()

	return out
}

// Interactive reports whether f is attached to a terminal.
func Interactive(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PrintHint tells the user how to control the search. Nothing is printed
// when in is not a terminal, since nobody is there to type.
func PrintHint(out io.Writer, in *os.File, interval time.Duration) {
	if !Interactive(in) {
		return
	}
	fmt.Fprintf(out, "Matches print every %s. Press Enter to print now, or type q and Enter to quit.\n", interval)
}
