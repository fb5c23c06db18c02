// Package finder implements the concurrent filename search pipeline.
//
// A single Producer walks the directory tree and packs filenames into
// fixed-capacity buffers drawn from a BufferPool. Every full (or final)
// buffer is submitted to the Coordinator, which fans the same buffer out to
// one Worker per needle. Workers only read dispatched buffers; each reports
// when it has finished with a buffer, and once every worker has done so the
// Coordinator returns the buffer to the pool for reuse.
//
// The run is complete when the producer has exhausted the tree and every
// buffer ever created is back in the pool. At that point, or when a quit
// command, a parent context cancellation or a fault stops the run early, the
// Coordinator cancels the run context and wakes every worker blocked on its
// inbox with a nil sentinel buffer.
//
// Matches flow into a shared sink that the Coordinator's monitor drains to a
// Reporter on a fixed interval or on a dump command.
package finder
