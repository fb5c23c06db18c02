package finder

import (
	"context"
	"fmt"
	"iter"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/harrison/filefinder/internal/fileutil"
	"github.com/harrison/filefinder/internal/models"
	"github.com/harrison/filefinder/internal/queue"
)

// DefaultDumpInterval is how often the monitor drains matches when no
// command arrives.
const DefaultDumpInterval = 5 * time.Second

// State is the lifecycle stage of a Coordinator.
type State int

const (
	// StateIdle means Run has not been called.
	StateIdle State = iota
	// StateRunning means the producer, workers and monitor are active.
	StateRunning
	// StateStopping means Stop has been called and goroutines are winding down.
	StateStopping
	// StateStopped means every goroutine has been joined. It is terminal.
	StateStopped
)

// String returns the string representation of State.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Reporter receives drained matches. Calls are never concurrent.
type Reporter interface {
	ReportMatches(matches []models.Match)
}

// Options tunes the pipeline.
type Options struct {
	// BufferCapacity is the number of names per buffer
	BufferCapacity int
	// InitialBuffers is how many buffers the pool is primed with
	InitialBuffers int
	// DumpInterval is the idle time after which matches are drained
	DumpInterval time.Duration
	// Walk filters the directory walk
	Walk fileutil.WalkOptions
}

// DefaultOptions returns Options with the standard pool sizing and interval.
func DefaultOptions() Options {
	return Options{
		BufferCapacity: DefaultBufferCapacity,
		InitialBuffers: DefaultInitialBuffers,
		DumpInterval:   DefaultDumpInterval,
	}
}

// CoordinatorConfig holds everything a Coordinator is built from.
type CoordinatorConfig struct {
	Search   models.Search
	Options  Options
	Reporter Reporter
	Logger   Logger   // optional
	Recorder Recorder // optional
	// Commands delivers runtime dump and quit requests. Optional; a closed
	// channel is treated as "no more commands".
	Commands <-chan models.Command
	// Entries overrides the filesystem walk. Defaults to
	// fileutil.Entries(Search.Root, Options.Walk).
	Entries iter.Seq2[fileutil.Entry, error]
}

// Coordinator owns the buffer pool, the producer, one worker per needle and
// the match sink. It fans buffers out, recycles them once every worker is
// done, detects completion and runs the monitor loop.
type Coordinator struct {
	search   models.Search
	opts     Options
	reporter Reporter
	logger   Logger
	recorder Recorder
	commands <-chan models.Command

	pool     *BufferPool
	producer *Producer
	workers  []*Worker
	matches  *queue.Queue[models.Match]

	// mu serializes recycle decisions and the completion check.
	mu sync.Mutex

	// dispatchMu orders Submit against Stop so no buffer is fanned out
	// behind the wake sentinels.
	dispatchMu sync.Mutex
	stopping   atomic.Bool

	stateMu sync.Mutex
	state   State
	cancel  context.CancelFunc

	stopOnce        sync.Once
	done            chan struct{}
	terminatedEarly atomic.Bool
	totalMatches    atomic.Int64

	faultMu sync.Mutex
	fault   error
}

// NewCoordinator wires the pipeline for one search. It validates the needles
// and primes the buffer pool; nothing runs until Run is called.
func NewCoordinator(cfg CoordinatorConfig) (*Coordinator, error) {
	if len(cfg.Search.Needles) == 0 {
		return nil, ErrNoNeedles
	}
	for i, needle := range cfg.Search.Needles {
		if needle == "" {
			return nil, fmt.Errorf("needle %d: %w", i+1, ErrEmptyNeedle)
		}
	}
	if cfg.Reporter == nil {
		return nil, ErrNoReporter
	}

	opts := cfg.Options
	defaults := DefaultOptions()
	if opts.BufferCapacity <= 0 {
		opts.BufferCapacity = defaults.BufferCapacity
	}
	if opts.InitialBuffers < 0 {
		opts.InitialBuffers = defaults.InitialBuffers
	}
	if opts.DumpInterval <= 0 {
		opts.DumpInterval = defaults.DumpInterval
	}

	c := &Coordinator{
		search:   cfg.Search,
		opts:     opts,
		reporter: cfg.Reporter,
		logger:   loggerOrNop(cfg.Logger),
		recorder: recorderOrNop(cfg.Recorder),
		commands: cfg.Commands,
		matches:  queue.New[models.Match](),
		done:     make(chan struct{}),
	}

	c.pool = NewBufferPool(opts.InitialBuffers, opts.BufferCapacity, c.recorder)

	for i, needle := range cfg.Search.Needles {
		c.workers = append(c.workers, NewWorker(i+1, needle, c))
	}

	entries := cfg.Entries
	if entries == nil {
		entries = fileutil.Entries(cfg.Search.Root, opts.Walk)
	}
	c.producer = NewProducer(entries, c.pool, c, c.logger, c.recorder)

	return c, nil
}

// Run executes the search and blocks until every goroutine has been joined.
// Cancelling ctx stops the run early. Run may only be called once.
//
// The returned error is non-nil only when a pipeline goroutine panicked; the
// Result is still populated in that case.
func (c *Coordinator) Run(ctx context.Context) (models.Result, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.stateMu.Lock()
	if c.state != StateIdle {
		c.stateMu.Unlock()
		return models.Result{}, ErrAlreadyStarted
	}
	c.state = StateRunning
	c.cancel = cancel
	c.stateMu.Unlock()

	if c.stopping.Load() {
		// Stop was called before Run.
		cancel()
	}

	start := time.Now()
	c.logger.Infof("searching %s for %d needle(s) with %d buffers of %d names",
		c.search.Root, len(c.workers), c.opts.InitialBuffers, c.opts.BufferCapacity)

	go c.watchParent(ctx)

	var wg sync.WaitGroup
	for _, w := range c.workers {
		c.spawn(&wg, w.Name(), func() { w.Run(runCtx) })
	}
	c.spawn(&wg, "producer", func() { c.producer.Run(runCtx) })
	c.spawn(&wg, "monitor", c.monitor)

	wg.Wait()

	// Every worker has exited, so the sink holds everything that was found
	// before the stop.
	c.finalDrain()

	c.stateMu.Lock()
	c.state = StateStopped
	c.stateMu.Unlock()

	result := models.Result{
		Root:            c.search.Root,
		Needles:         append([]string(nil), c.search.Needles...),
		TotalMatches:    c.totalMatches.Load(),
		TerminatedEarly: c.terminatedEarly.Load(),
		NamesScanned:    c.producer.Scanned(),
		TraversalErrors: c.producer.TraversalErrors(),
		SkippedPaths:    c.producer.SkippedPaths(),
		BuffersCreated:  int64(c.pool.TotalCreated()),
		Duration:        time.Since(start),
	}

	c.faultMu.Lock()
	defer c.faultMu.Unlock()
	return result, c.fault
}

// Stop halts the run: it cancels the run context, wakes every worker with a
// sentinel and releases the monitor. Stopping before the producer has
// exhausted the tree marks the run as terminated early. It is safe to call
// more than once and from any goroutine, including from inside ReportFinished.
func (c *Coordinator) Stop() {
	c.stopOnce.Do(func() {
		if !c.producer.Finished() {
			c.terminatedEarly.Store(true)
		}

		c.dispatchMu.Lock()
		c.stopping.Store(true)
		for _, w := range c.workers {
			w.Wake()
		}
		c.dispatchMu.Unlock()

		c.stateMu.Lock()
		if c.cancel != nil {
			c.cancel()
		}
		if c.state == StateRunning {
			c.state = StateStopping
		}
		c.stateMu.Unlock()

		close(c.done)
	})
}

// Done is closed once Stop has been called.
func (c *Coordinator) Done() <-chan struct{} {
	return c.done
}

// State returns the current lifecycle stage.
func (c *Coordinator) State() State {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.state
}

// TotalMatches returns the number of matches drained to the reporter so far.
func (c *Coordinator) TotalMatches() int64 {
	return c.totalMatches.Load()
}

// TerminatedEarly reports whether the run was stopped before the tree was
// exhausted and every buffer returned, whether by Stop, a quit command, parent
// cancellation or a fault.
func (c *Coordinator) TerminatedEarly() bool {
	return c.terminatedEarly.Load()
}

// Pool exposes the buffer pool for inspection.
func (c *Coordinator) Pool() *BufferPool {
	return c.pool
}

// Submit fans buf out to every worker. Once the run is stopping the buffer is
// returned to the pool instead.
func (c *Coordinator) Submit(buf *Buffer) {
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()

	if c.stopping.Load() {
		c.pool.Release(buf)
		return
	}

	c.recorder.BufferDispatched()
	for _, w := range c.workers {
		w.Enqueue(buf)
	}
}

// Finish re-checks completion after the producer is done.
func (c *Coordinator) Finish() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checkCompletionLocked()
}

// ReportMatch pushes a match to the shared sink.
func (c *Coordinator) ReportMatch(match models.Match) {
	c.recorder.MatchFound(match.Needle)
	c.matches.Put(match)
}

// ReportFinished records that one worker is done with buf. The last worker
// to finish returns the buffer to the pool.
func (c *Coordinator) ReportFinished(buf *Buffer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if buf.markProcessed() < len(c.workers) {
		return
	}

	c.pool.Release(buf)
	c.recorder.BufferRecycled()
	c.checkCompletionLocked()
}

// checkCompletionLocked must be called with mu held.
func (c *Coordinator) checkCompletionLocked() {
	if !c.producer.Finished() {
		return
	}
	if c.pool.Size() != c.pool.TotalCreated() {
		return
	}
	c.logger.Debugf("all %d buffers returned, search complete", c.pool.TotalCreated())
	c.Stop()
}

// monitor drains the sink on every interval tick and on dump commands, and
// stops the run on a quit command. It returns once Stop has been called.
func (c *Coordinator) monitor() {
	timer := time.NewTimer(c.opts.DumpInterval)
	defer timer.Stop()

	commands := c.commands
	for {
		select {
		case <-c.done:
			return

		case cmd, ok := <-commands:
			if !ok {
				commands = nil
				continue
			}
			switch cmd {
			case models.CommandQuit:
				c.logger.Infof("quit requested, stopping search")
				c.terminatedEarly.Store(true)
				c.Stop()
			default:
				c.drain()
			}
			timer.Reset(c.opts.DumpInterval)

		case <-timer.C:
			c.drain()
			timer.Reset(c.opts.DumpInterval)
		}
	}
}

// drain hands every queued match to the reporter. Only the monitor and, after
// it has exited, Run call drain, so the reporter never sees concurrent calls.
func (c *Coordinator) drain() {
	batch := c.matches.Drain()
	if len(batch) == 0 {
		return
	}
	c.reporter.ReportMatches(batch)
	c.totalMatches.Add(int64(len(batch)))
}

// finalDrain runs the last drain on the caller's goroutine, converting a
// reporter panic into a fault like any other pipeline goroutine.
func (c *Coordinator) finalDrain() {
	defer func() {
		if r := recover(); r != nil {
			c.recordFault(&FaultError{Role: "reporter", Value: r, Stack: debug.Stack()})
			c.terminatedEarly.Store(true)
		}
	}()
	c.drain()
}

// watchParent stops the run early when the caller's context ends first.
func (c *Coordinator) watchParent(ctx context.Context) {
	select {
	case <-ctx.Done():
		c.stopEarly(fmt.Sprintf("search interrupted: %v", ctx.Err()))
	case <-c.done:
	}
}

func (c *Coordinator) stopEarly(reason string) {
	select {
	case <-c.done:
		return
	default:
	}
	c.logger.Warnf("%s", reason)
	c.terminatedEarly.Store(true)
	c.Stop()
}

// spawn runs fn on its own goroutine. A panic is recorded as a FaultError and
// stops the run.
func (c *Coordinator) spawn(wg *sync.WaitGroup, role string, fn func()) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				fault := &FaultError{Role: role, Value: r, Stack: debug.Stack()}
				c.recordFault(fault)
				c.stopEarly(fault.Error())
			}
		}()
		fn()
	}()
}

// recordFault keeps the first fault of the run.
func (c *Coordinator) recordFault(fault *FaultError) {
	c.faultMu.Lock()
	defer c.faultMu.Unlock()
	if c.fault == nil {
		c.fault = fault
	}
}
