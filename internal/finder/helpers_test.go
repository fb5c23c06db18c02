package finder

import (
	"fmt"
	"iter"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/harrison/filefinder/internal/fileutil"
	"github.com/harrison/filefinder/internal/models"
)

// sliceEntries yields one entry per name, in order.
func sliceEntries(names ...string) iter.Seq2[fileutil.Entry, error] {
	return func(yield func(fileutil.Entry, error) bool) {
		for _, name := range names {
			if !yield(fileutil.Entry{Path: "/tree/" + name, Name: name}, nil) {
				return
			}
		}
	}
}

// endlessEntries yields "file-N" entries until the consumer stops.
func endlessEntries() iter.Seq2[fileutil.Entry, error] {
	return func(yield func(fileutil.Entry, error) bool) {
		for i := 0; ; i++ {
			name := fmt.Sprintf("file-%d", i)
			if !yield(fileutil.Entry{Path: "/tree/" + name, Name: name}, nil) {
				return
			}
		}
	}
}

// recordingReporter collects drained matches and signals every call.
type recordingReporter struct {
	mu      sync.Mutex
	matches []models.Match
	calls   int
	called  chan struct{}
}

func newRecordingReporter() *recordingReporter {
	return &recordingReporter{called: make(chan struct{}, 1024)}
}

func (r *recordingReporter) ReportMatches(matches []models.Match) {
	r.mu.Lock()
	r.matches = append(r.matches, matches...)
	r.calls++
	r.mu.Unlock()

	select {
	case r.called <- struct{}{}:
	default:
	}
}

// byNeedle returns the sorted names reported for each needle.
func (r *recordingReporter) byNeedle() map[string][]string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string][]string)
	for _, m := range r.matches {
		out[m.Needle] = append(out[m.Needle], m.Name)
	}
	for needle := range out {
		sort.Strings(out[needle])
	}
	return out
}

func (r *recordingReporter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.matches)
}

// countingRecorder counts dispatches and recycles.
type countingRecorder struct {
	nopRecorder
	dispatched atomic.Int64
	recycled   atomic.Int64
}

func (r *countingRecorder) BufferDispatched() { r.dispatched.Add(1) }
func (r *countingRecorder) BufferRecycled()   { r.recycled.Add(1) }

// waitFor fails the test if ch does not yield within d.
func waitFor[T any](t *testing.T, ch <-chan T, d time.Duration, what string) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(d):
		t.Fatalf("timed out after %s waiting for %s", d, what)
		var zero T
		return zero
	}
}
