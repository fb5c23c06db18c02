package finder

import (
	"context"
	"iter"
	"sync"
	"sync/atomic"

	"github.com/harrison/filefinder/internal/fileutil"
)

// maxSkippedPaths bounds how many unreadable paths are kept for reporting.
const maxSkippedPaths = 10

// Dispatcher accepts buffers filled by the Producer.
type Dispatcher interface {
	// Submit hands a filled buffer over; the producer no longer owns it.
	Submit(buf *Buffer)
	// Finish is called once, after the producer has exhausted the tree and
	// submitted or released every buffer it held.
	Finish()
}

// Producer walks the directory tree on a single goroutine and streams
// filenames into buffers drawn from the pool.
type Producer struct {
	entries    iter.Seq2[fileutil.Entry, error]
	pool       *BufferPool
	dispatcher Dispatcher
	logger     Logger
	recorder   Recorder

	finished        atomic.Bool
	scanned         atomic.Int64
	traversalErrors atomic.Int64

	mu      sync.Mutex
	skipped []string
}

// NewProducer creates a producer that reads entries and submits buffers to
// dispatcher. logger and recorder may be nil.
func NewProducer(entries iter.Seq2[fileutil.Entry, error], pool *BufferPool, dispatcher Dispatcher, logger Logger, recorder Recorder) *Producer {
	return &Producer{
		entries:    entries,
		pool:       pool,
		dispatcher: dispatcher,
		logger:     loggerOrNop(logger),
		recorder:   recorderOrNop(recorder),
	}
}

// Run walks the tree until it is exhausted or ctx is cancelled. A buffer is
// submitted as soon as it fills; the last partial buffer is submitted when
// the walk ends. On cancellation nothing further is submitted. The buffer
// held when Run returns, on any path, goes back to the pool unless it was
// submitted.
func (p *Producer) Run(ctx context.Context) {
	buf := p.pool.Acquire()
	defer func() {
		if buf != nil {
			p.pool.Release(buf)
		}
	}()

	done := ctx.Done()
	for entry, err := range p.entries {
		select {
		case <-done:
			p.logger.Debugf("producer stopped after %d names", p.scanned.Load())
			return
		default:
		}

		if err != nil {
			p.skip(&TraversalError{Path: entry.Path, Err: err})
			continue
		}

		p.scanned.Add(1)
		p.recorder.NameEnumerated()
		buf.Names = append(buf.Names, entry.Name)
		if buf.Full() {
			full := buf
			buf = nil
			p.dispatcher.Submit(full)
			buf = p.pool.Acquire()
		}
	}

	if ctx.Err() != nil {
		return
	}

	if buf.Len() > 0 {
		last := buf
		buf = nil
		p.dispatcher.Submit(last)
	} else {
		p.pool.Release(buf)
		buf = nil
	}

	p.finished.Store(true)
	p.logger.Debugf("producer finished: %d names, %d buffers created", p.scanned.Load(), p.pool.TotalCreated())
	p.dispatcher.Finish()
}

// Finished reports whether the walk has been exhausted and every name handed
// over.
func (p *Producer) Finished() bool {
	return p.finished.Load()
}

// Scanned returns the number of names enumerated so far.
func (p *Producer) Scanned() int64 {
	return p.scanned.Load()
}

// TraversalErrors returns the number of entries skipped so far.
func (p *Producer) TraversalErrors() int64 {
	return p.traversalErrors.Load()
}

// SkippedPaths returns up to the first ten paths that could not be read.
func (p *Producer) SkippedPaths() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.skipped...)
}

func (p *Producer) skip(err *TraversalError) {
	p.traversalErrors.Add(1)
	p.recorder.TraversalFailed()
	p.logger.Warnf("skipping entry: %v", err)

	p.mu.Lock()
	if len(p.skipped) < maxSkippedPaths {
		p.skipped = append(p.skipped, err.Path)
	}
	p.mu.Unlock()
}
