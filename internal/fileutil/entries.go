package fileutil

import (
	"io/fs"
	"iter"
	"path/filepath"
	"strings"
)

// Entry is one filesystem entry below the walk root.
type Entry struct {
	// Path is the full path of the entry, rooted at the walk root
	Path string
	// Name is the final path element (the filename)
	Name string
	// IsDir reports whether the entry is a directory
	IsDir bool
}

// WalkOptions configures which parts of the tree Entries visits
type WalkOptions struct {
	// ExcludeDirs is a list of directory names whose contents are skipped
	// (e.g., ".git", "node_modules"). The directory entry itself is still yielded.
	ExcludeDirs []string
	// MaxDepth limits recursion depth (0 = unlimited, 1 = direct children only)
	MaxDepth int
}

// Entries returns a sequence over every entry below root, files and
// directories alike, in lexical walk order. The root itself is not yielded.
//
// An entry that cannot be read is yielded as (Entry, err) with Path set to the
// failing path; the walk then continues with the next entry. A directory whose
// listing fails is yielded once normally and once with the error, and its
// contents are skipped. Breaking out of the range loop stops the walk.
func Entries(root string, opts WalkOptions) iter.Seq2[Entry, error] {
	excludeMap := make(map[string]bool, len(opts.ExcludeDirs))
	for _, dir := range opts.ExcludeDirs {
		excludeMap[dir] = true
	}

	return func(yield func(Entry, error) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				entry := Entry{Path: path, Name: filepath.Base(path), IsDir: d != nil && d.IsDir()}
				if !yield(entry, err) {
					return filepath.SkipAll
				}
				// Returning nil after a directory read error skips that
				// directory's contents and carries on with its siblings.
				return nil
			}

			if path == root {
				return nil
			}

			entry := Entry{Path: path, Name: d.Name(), IsDir: d.IsDir()}
			if !yield(entry, nil) {
				return filepath.SkipAll
			}

			if d.IsDir() {
				if excludeMap[d.Name()] {
					return filepath.SkipDir
				}
				if opts.MaxDepth > 0 && depth(root, path) >= opts.MaxDepth {
					return filepath.SkipDir
				}
			}
			return nil
		})
	}
}

// depth returns how many path elements path lies below root.
func depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}
