package finder

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/harrison/filefinder/internal/queue"
)

// Default pool sizing.
const (
	DefaultBufferCapacity = 1024
	DefaultInitialBuffers = 64
)

// Buffer is a capacity-bounded batch of filenames moving through the pipeline.
//
// While filling, the producer owns a buffer exclusively. Once submitted it is
// shared read-only by every worker and only the processed count changes,
// atomically. The pool clears it when all workers are done.
type Buffer struct {
	// ID is the buffer's slot index in its pool
	ID int
	// Names holds the filenames in traversal order
	Names []string

	processed atomic.Int32
	free      atomic.Bool
}

// Len returns the number of names in the buffer.
func (b *Buffer) Len() int {
	return len(b.Names)
}

// Full reports whether the buffer has reached its capacity.
func (b *Buffer) Full() bool {
	return len(b.Names) >= cap(b.Names)
}

// Processed returns how many workers have finished with the buffer.
func (b *Buffer) Processed() int {
	return int(b.processed.Load())
}

func (b *Buffer) markProcessed() int {
	return int(b.processed.Add(1))
}

func (b *Buffer) reset() {
	clear(b.Names)
	b.Names = b.Names[:0]
	b.processed.Store(0)
}

// BufferPool is the single authority over every buffer of a run. Buffers are
// created when the pool is primed or, one at a time, when Acquire finds the
// pool empty; they are never destroyed, only recycled through Release.
type BufferPool struct {
	capacity int
	free     *queue.Queue[*Buffer]
	recorder Recorder

	mu    sync.Mutex
	slots []*Buffer // every buffer ever created, indexed by ID
}

// NewBufferPool creates a pool primed with initial buffers, each holding up
// to capacity names.
func NewBufferPool(initial, capacity int, recorder Recorder) *BufferPool {
	if capacity < 1 {
		capacity = DefaultBufferCapacity
	}
	p := &BufferPool{
		capacity: capacity,
		free:     queue.New[*Buffer](),
		recorder: recorderOrNop(recorder),
	}
	for i := 0; i < initial; i++ {
		p.Release(p.mint())
	}
	return p
}

// Acquire returns an empty buffer for exclusive use, taking a free one when
// available and otherwise minting exactly one new buffer. It never blocks.
func (p *BufferPool) Acquire() *Buffer {
	buf, ok := p.free.TryTake()
	if !ok {
		buf = p.mint()
	}
	buf.free.Store(false)
	return buf
}

// Release clears buf and returns it to the pool. Releasing a buffer that is
// already in the pool is a bookkeeping bug and panics.
func (p *BufferPool) Release(buf *Buffer) {
	if !buf.free.CompareAndSwap(false, true) {
		panic(fmt.Sprintf("finder: buffer %d released twice", buf.ID))
	}
	buf.reset()
	p.free.Put(buf)
}

// Size returns the number of buffers currently free in the pool.
func (p *BufferPool) Size() int {
	return p.free.Size()
}

// TotalCreated returns how many buffers the pool has ever created.
func (p *BufferPool) TotalCreated() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.slots)
}

// Capacity returns the number of names each buffer holds.
func (p *BufferPool) Capacity() int {
	return p.capacity
}

func (p *BufferPool) mint() *Buffer {
	p.mu.Lock()
	buf := &Buffer{
		ID:    len(p.slots),
		Names: make([]string, 0, p.capacity),
	}
	p.slots = append(p.slots, buf)
	p.mu.Unlock()

	p.recorder.BufferMinted()
	return buf
}
