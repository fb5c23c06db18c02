package finder

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/harrison/filefinder/internal/models"
	"github.com/harrison/filefinder/internal/queue"
)

// Collector receives a worker's output.
type Collector interface {
	// ReportMatch is called for every name containing the worker's needle.
	ReportMatch(match models.Match)
	// ReportFinished is called exactly once for every buffer the worker
	// takes, after it stops reading the buffer.
	ReportFinished(buf *Buffer)
}

// Worker searches every dispatched buffer for one needle.
type Worker struct {
	id        int
	needle    string
	inbox     *queue.Queue[*Buffer]
	collector Collector
	matches   atomic.Int64
}

// NewWorker creates a worker for needle that reports to collector.
func NewWorker(id int, needle string, collector Collector) *Worker {
	return &Worker{
		id:        id,
		needle:    needle,
		inbox:     queue.New[*Buffer](),
		collector: collector,
	}
}

// Name identifies the worker in logs and fault reports.
func (w *Worker) Name() string {
	return fmt.Sprintf("worker %d (%q)", w.id, w.needle)
}

// Needle returns the substring this worker searches for.
func (w *Worker) Needle() string {
	return w.needle
}

// Matches returns how many matches the worker has reported.
func (w *Worker) Matches() int64 {
	return w.matches.Load()
}

// Enqueue adds a dispatched buffer to the worker's inbox.
func (w *Worker) Enqueue(buf *Buffer) {
	w.inbox.Put(buf)
}

// Wake pushes the nil sentinel so a worker blocked on an empty inbox returns.
func (w *Worker) Wake() {
	w.inbox.Put(nil)
}

// Run consumes the inbox until it takes the nil sentinel or finishes a buffer
// after ctx has been cancelled.
func (w *Worker) Run(ctx context.Context) {
	for {
		buf := w.inbox.Take()
		if buf == nil {
			return
		}
		w.scan(ctx, buf)
		if ctx.Err() != nil {
			return
		}
	}
}

// scan reports matches in buf. Cancellation abandons the remaining names;
// either way the buffer is reported finished.
func (w *Worker) scan(ctx context.Context, buf *Buffer) {
	defer w.collector.ReportFinished(buf)

	done := ctx.Done()
	for _, name := range buf.Names {
		select {
		case <-done:
			return
		default:
		}

		if strings.Contains(name, w.needle) {
			w.matches.Add(1)
			w.collector.ReportMatch(models.Match{Needle: w.needle, Name: name})
		}
	}
}
