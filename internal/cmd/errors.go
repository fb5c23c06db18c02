package cmd

import "fmt"

// ArgumentError reports invalid command-line arguments. The search never
// starts when one is returned.
type ArgumentError struct {
	Reason string
}

// Error implements the error interface for ArgumentError.
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s\nusage: %s", e.Reason, usageLine)
}
