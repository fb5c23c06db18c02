package models

import "time"

// Match is a filename found to contain a needle.
// Name is the bare filename as enumerated, without its directory.
type Match struct {
	Needle string `yaml:"needle"`
	Name   string `yaml:"name"`
}

// Result represents the aggregate outcome of one search run
type Result struct {
	Root            string        // Directory that was searched
	Needles         []string      // Substrings searched for, in argument order
	TotalMatches    int64         // Matches drained to the reporter
	TerminatedEarly bool          // True when the run was stopped before quiescence
	NamesScanned    int64         // Filesystem entries enumerated by the producer
	TraversalErrors int64         // Entries skipped because they could not be read
	SkippedPaths    []string      // First few skipped paths, for the warning block
	BuffersCreated  int64         // Buffers primed or minted during the run
	Duration        time.Duration // Wall time from start to stop
}
