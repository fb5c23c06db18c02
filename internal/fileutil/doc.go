// Package fileutil provides the filesystem enumeration used by the search pipeline.
//
// Entries exposes a recursive walk as an iter.Seq2 so callers can range over
// it and stop at any point:
//
//	for entry, err := range fileutil.Entries(root, fileutil.WalkOptions{}) {
//	    if err != nil {
//	        log.Printf("skipping %s: %v", entry.Path, err)
//	        continue
//	    }
//	    fmt.Println(entry.Name)
//	}
//
// # Error Tolerance
//
// Per-entry failures (permission denied on a subdirectory, an entry removed
// between listing and stat) are yielded as errors alongside the entry path and
// never end the walk. Only the consumer decides to stop, by breaking out of
// the loop.
//
// # Filtering
//
// WalkOptions can prune directories by name (ExcludeDirs) and bound recursion
// (MaxDepth). Pruned directories are still yielded themselves; only their
// contents are skipped. With zero options every entry below the root is
// yielded.
//
// # Ordering
//
// Entries within a directory are visited in lexical order, depth first, which
// is the order filepath.WalkDir guarantees.
package fileutil
