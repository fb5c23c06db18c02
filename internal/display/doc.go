// Package display formats user-facing warning blocks for the terminal.
//
// A Warning has a title and optional message, affected paths and suggestion:
//
//	warning := display.WarnSkippedPaths(result.TraversalErrors, result.SkippedPaths)
//	warning.Display(os.Stderr)
//
// Output is yellow when fatih/color decides the terminal supports it
// (TTY and no NO_COLOR), and plain text otherwise. All functions accept an
// io.Writer for testability.
package display
