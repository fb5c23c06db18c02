package models

import "strings"

// Search describes a validated search request: an existing directory and one
// or more non-empty needles.
type Search struct {
	Root    string
	Needles []string
}

// Command is a runtime instruction delivered to a running search.
type Command int

const (
	// CommandDump drains and prints the matches found so far.
	CommandDump Command = iota
	// CommandQuit stops the search early.
	CommandQuit
)

// String returns the string representation of Command.
func (c Command) String() string {
	switch c {
	case CommandDump:
		return "dump"
	case CommandQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// ParseCommand maps a line of user input to a Command, case-insensitively.
// "quit" and "q" stop the search; anything else, including an empty line,
// requests a dump.
func ParseCommand(input string) Command {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "quit", "q":
		return CommandQuit
	default:
		return CommandDump
	}
}
